// AngelaMos | 2026
// rules_test.go

package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var triageNow = time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)

func TestEscalatePriority(t *testing.T) {
	tests := []struct {
		name     string
		category string
		priority string
		want     string
	}{
		{"complaint floors at high", CategoryComplaint, PriorityLow, PriorityHigh},
		{"complaint keeps urgent", CategoryComplaint, PriorityUrgent, PriorityUrgent},
		{"enrollment floors at medium", CategoryEnrollment, PriorityLow, PriorityMedium},
		{"enrollment keeps high", CategoryEnrollment, PriorityHigh, PriorityHigh},
		{"inquiry untouched", CategoryInquiry, PriorityLow, PriorityLow},
		{"suggestion untouched", CategorySuggestion, PriorityLow, PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contact{Category: tt.category, Priority: tt.priority}
			escalatePriority(&c)
			assert.Equal(t, tt.want, c.Priority)
		})
	}
}

func TestDeriveTags(t *testing.T) {
	c := Contact{
		Category: CategoryInquiry,
		Subject:  "Fee structure and admission process",
	}

	tags := deriveTags(&c)
	assert.Equal(t, TagList{"inquiry", "enrollment", "fees"}, tags)
}

func TestDeriveTagsDeduplicates(t *testing.T) {
	c := Contact{
		Category: CategoryEnrollment,
		Subject:  "enroll enroll join admission",
	}

	tags := deriveTags(&c)
	assert.Equal(t, TagList{"enrollment"}, tags)
}

func TestDeriveTagsCaseInsensitive(t *testing.T) {
	c := Contact{
		Category: CategoryInquiry,
		Subject:  "URGENT: Coach availability",
	}

	tags := deriveTags(&c)
	assert.Contains(t, tags, "urgent")
	assert.Contains(t, tags, "coaching")
}

func TestApplyTriageFollowUpDate(t *testing.T) {
	t.Run("high priority gets next-day follow-up", func(t *testing.T) {
		c := Contact{
			Category: CategoryComplaint,
			Priority: PriorityLow,
			Status:   StatusNew,
		}
		applyTriage(&c, triageNow)

		if assert.NotNil(t, c.FollowUpDate) {
			assert.Equal(t, triageNow.AddDate(0, 0, 1), *c.FollowUpDate)
		}
	})

	t.Run("existing follow-up date preserved", func(t *testing.T) {
		existing := triageNow.AddDate(0, 0, 5)
		c := Contact{
			Category:     CategoryComplaint,
			Priority:     PriorityLow,
			Status:       StatusNew,
			FollowUpDate: &existing,
		}
		applyTriage(&c, triageNow)
		assert.Equal(t, existing, *c.FollowUpDate)
	})

	t.Run("low priority gets none", func(t *testing.T) {
		c := Contact{
			Category: CategoryInquiry,
			Priority: PriorityLow,
			Status:   StatusNew,
		}
		applyTriage(&c, triageNow)
		assert.Nil(t, c.FollowUpDate)
	})
}

func TestApplyTriageStatusAdvance(t *testing.T) {
	t.Run("external response advances new to in-progress", func(t *testing.T) {
		c := Contact{
			Category: CategoryInquiry,
			Priority: PriorityLow,
			Status:   StatusNew,
			Responses: ResponseList{
				{Message: "Thanks for reaching out", Internal: false},
			},
		}
		applyTriage(&c, triageNow)
		assert.Equal(t, StatusInProgress, c.Status)
	})

	t.Run("internal note does not advance status", func(t *testing.T) {
		c := Contact{
			Category: CategoryInquiry,
			Priority: PriorityLow,
			Status:   StatusNew,
			Responses: ResponseList{
				{Message: "looks like spam?", Internal: true},
			},
		}
		applyTriage(&c, triageNow)
		assert.Equal(t, StatusNew, c.Status)
	})

	t.Run("resolved status not reopened", func(t *testing.T) {
		c := Contact{
			Category: CategoryInquiry,
			Priority: PriorityLow,
			Status:   StatusResolved,
			Responses: ResponseList{
				{Message: "done", Internal: false},
			},
		}
		applyTriage(&c, triageNow)
		assert.Equal(t, StatusResolved, c.Status)
	})
}

func TestApplyTriageIdempotent(t *testing.T) {
	c := Contact{
		Category: CategoryComplaint,
		Priority: PriorityLow,
		Status:   StatusNew,
		Subject:  "Refund for cancelled trial session",
		Responses: ResponseList{
			{Message: "We are looking into this", Internal: false},
		},
	}

	applyTriage(&c, triageNow)
	snapshot := c

	applyTriage(&c, triageNow.Add(48*time.Hour))
	assert.Equal(t, snapshot.Priority, c.Priority)
	assert.Equal(t, snapshot.Status, c.Status)
	assert.Equal(t, snapshot.Tags, c.Tags)
	assert.Equal(t, snapshot.FollowUpDate, c.FollowUpDate)
}
