// AngelaMos | 2026
// rules.go

package student

// overdueThreshold is the number of overdue payment periods a student
// may carry before being deactivated.
const overdueThreshold = 2

// applyPaymentStanding deactivates a student who has fallen more than
// overdueThreshold periods behind, whatever their current status. The
// transition is one-way here: reactivation is an explicit administrative
// update, not a derived one. Idempotent.
func applyPaymentStanding(s *Student) {
	if s.OverdueCount() > overdueThreshold {
		s.Status = StatusInactive
	}
}
