package models

// Role defines the user role type
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleMentor     Role = "MENTOR"
	RoleTeamMember Role = "TEAM_MEMBER"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleMentor, RoleTeamMember:
		return true
	}
	return false
}

// ProgressStatus tracks a user's advancement through the mentorship
// onboarding funnel. The funnel only moves forward.
type ProgressStatus string

const (
	ProgressPaymentPending           ProgressStatus = "PAYMENT_PENDING"
	ProgressPersonalDiscoveryPending ProgressStatus = "PERSONAL_DISCOVERY_PENDING"
	ProgressCVAlignmentPending       ProgressStatus = "CV_ALIGNMENT_PENDING"
	ProgressScholarshipMatrixPending ProgressStatus = "SCHOLARSHIP_MATRIX_PENDING"
	ProgressEssaysPending            ProgressStatus = "ESSAYS_PENDING"
	ProgressCompleted                ProgressStatus = "COMPLETED"
)

// progressOrder gives each funnel stage its position
var progressOrder = map[ProgressStatus]int{
	ProgressPaymentPending:           0,
	ProgressPersonalDiscoveryPending: 1,
	ProgressCVAlignmentPending:       2,
	ProgressScholarshipMatrixPending: 3,
	ProgressEssaysPending:            4,
	ProgressCompleted:                5,
}

// IsValid reports whether the status is a known funnel stage
func (s ProgressStatus) IsValid() bool {
	_, ok := progressOrder[s]
	return ok
}

// CanAdvanceTo reports whether the funnel may move from s to target.
// Backward moves and moves to unknown stages are rejected.
func (s ProgressStatus) CanAdvanceTo(target ProgressStatus) bool {
	from, ok := progressOrder[s]
	if !ok {
		return false
	}
	to, ok := progressOrder[target]
	if !ok {
		return false
	}
	return to > from
}
