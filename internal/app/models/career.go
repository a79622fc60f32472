package models

import "time"

// AssessmentStatus is the lifecycle state of a guided career assessment
type AssessmentStatus string

const (
	AssessmentInProgress AssessmentStatus = "IN_PROGRESS"
	AssessmentCompleted  AssessmentStatus = "COMPLETED"
	AssessmentAbandoned  AssessmentStatus = "ABANDONED"
)

// CanTransitionTo reports whether an assessment may move from s to target.
// COMPLETED and ABANDONED are terminal.
func (s AssessmentStatus) CanTransitionTo(target AssessmentStatus) bool {
	if s != AssessmentInProgress {
		return false
	}
	return target == AssessmentCompleted || target == AssessmentAbandoned
}

// CareerUser is an identity in the guest assessment flow, decoupled from the
// authenticated users table and linked to it only optionally.
type CareerUser struct {
	ID           int64     `json:"id" db:"id"`
	SessionToken string    `json:"sessionToken" db:"session_token"`
	AuthUserID   *int64    `json:"authUserId,omitempty" db:"auth_user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CareerAssessment is one guided assessment run for a career user
type CareerAssessment struct {
	ID              int64            `json:"id" db:"id"`
	CareerUserID    int64            `json:"careerUserId" db:"career_user_id"`
	Status          AssessmentStatus `json:"status" db:"status"`
	Answers         string           `json:"answers" db:"answers"`
	SuggestedPath   *string          `json:"suggestedPath,omitempty" db:"suggested_path"`
	ConfidenceScore *float64         `json:"confidenceScore,omitempty" db:"confidence_score"`
	MatchingFactors []string         `json:"matchingFactors,omitempty" db:"matching_factors"`
	ShareCode       *string          `json:"shareCode,omitempty" db:"share_code"`
	IsShared        bool             `json:"isShared" db:"is_shared"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
}

// CareerFeedback holds exactly one feedback record per assessment
type CareerFeedback struct {
	ID             int64     `json:"id" db:"id"`
	AssessmentID   int64     `json:"assessmentId" db:"assessment_id"`
	Rating         int       `json:"rating" db:"rating"`
	IsRelevant     bool      `json:"isRelevant" db:"is_relevant"`
	WouldRecommend bool      `json:"wouldRecommend" db:"would_recommend"`
	Comments       string    `json:"comments" db:"comments"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// CareerAnalytics aggregates completed assessments per career path
type CareerAnalytics struct {
	CareerPath        string    `json:"careerPath" db:"career_path"`
	TotalSuggestions  int64     `json:"totalSuggestions" db:"total_suggestions"`
	AverageConfidence float64   `json:"averageConfidence" db:"average_confidence"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}
