package dto

// StartAssessmentRequest opens a guest assessment. sessionToken is optional:
// absent means a brand new career user, present resumes an existing one.
type StartAssessmentRequest struct {
	SessionToken string `json:"sessionToken"`
	AuthUserID   *int64 `json:"authUserId"`
	Answers      string `json:"answers"`
}

// StartAssessmentResponse returns the assessment id plus the session token
// the guest must present on subsequent calls.
type StartAssessmentResponse struct {
	AssessmentID int64  `json:"assessmentId"`
	SessionToken string `json:"sessionToken"`
}

// CompleteAssessmentRequest closes an assessment with its outcome
type CompleteAssessmentRequest struct {
	SuggestedPath   string   `json:"suggestedPath" binding:"required"`
	ConfidenceScore float64  `json:"confidenceScore" binding:"gte=0,lte=100"`
	MatchingFactors []string `json:"matchingFactors"`
}

// ShareAssessmentResponse returns the public share code
type ShareAssessmentResponse struct {
	ShareCode string `json:"shareCode"`
}

// SubmitFeedbackRequest carries feedback for a completed assessment
type SubmitFeedbackRequest struct {
	Rating         int    `json:"rating" binding:"required,gte=1,lte=5"`
	IsRelevant     bool   `json:"isRelevant"`
	WouldRecommend bool   `json:"wouldRecommend"`
	Comments       string `json:"comments"`
}
