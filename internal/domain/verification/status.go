package verification

// ===============================
// Business Verification Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus validates a raw status string from a request.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, IsValidStatus(s)
}

// Reviewers may move a profile between any of the valid statuses: rejected
// businesses resubmit back to pending/in_review, and the direct override to
// approved is a deliberate reviewer privilege. The only one-way invariant is
// enforced elsewhere: final approval on the checklist forces approved here.
func CanTransition(from, to Status) bool {
	return IsValidStatus(to)
}
