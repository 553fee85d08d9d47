// AngelaMos | 2026
// rules.go

package contact

import (
	"strings"
	"time"
)

// priorityRank orders priorities for floor comparisons. Escalation only
// ever raises a priority, never lowers one a staff member set higher.
var priorityRank = map[string]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// categoryFloor is the minimum priority per category.
var categoryFloor = map[string]string{
	CategoryComplaint:  PriorityHigh,
	CategoryEnrollment: PriorityMedium,
}

// subjectKeywords maps subject keywords to auto-applied tags. Matching
// is case-insensitive on whole substrings of the subject line.
var subjectKeywords = []struct {
	keyword string
	tag     string
}{
	{"join", "enrollment"},
	{"admission", "enrollment"},
	{"enroll", "enrollment"},
	{"fee", "fees"},
	{"price", "fees"},
	{"cost", "fees"},
	{"payment", "fees"},
	{"coach", "coaching"},
	{"training", "coaching"},
	{"trial", "trial"},
	{"refund", "billing"},
	{"urgent", "urgent"},
	{"asap", "urgent"},
}

// applyTriage derives priority, tags, follow-up date, and status from
// the enquiry's own content and response log. Safe to call on every
// write; re-running it on an unchanged contact changes nothing.
func applyTriage(c *Contact, now time.Time) {
	escalatePriority(c)
	c.Tags = deriveTags(c)

	if needsFollowUp(c.Priority) && c.FollowUpDate == nil {
		next := now.AddDate(0, 0, 1)
		c.FollowUpDate = &next
	}

	if c.Status == StatusNew && c.HasExternalResponse() {
		c.Status = StatusInProgress
	}
}

func escalatePriority(c *Contact) {
	floor, ok := categoryFloor[c.Category]
	if !ok {
		return
	}
	if priorityRank[c.Priority] < priorityRank[floor] {
		c.Priority = floor
	}
}

func deriveTags(c *Contact) TagList {
	seen := make(map[string]struct{})
	tags := TagList{}

	add := func(tag string) {
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	add(c.Category)

	subject := strings.ToLower(c.Subject)
	for _, kw := range subjectKeywords {
		if strings.Contains(subject, kw.keyword) {
			add(kw.tag)
		}
	}

	return tags
}

func needsFollowUp(priority string) bool {
	return priority == PriorityHigh || priority == PriorityUrgent
}
