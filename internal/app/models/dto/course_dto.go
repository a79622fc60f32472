package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required"`
}

// CreateLessonRequest represents lesson creation data
type CreateLessonRequest struct {
	Title      string `json:"title" binding:"required,min=2,max=200"`
	Content    string `json:"content" binding:"required"`
	OrderIndex int    `json:"orderIndex" binding:"required,gte=1"`
}
