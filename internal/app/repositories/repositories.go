package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	PlanRepository         *PlanRepository
	SubscriptionRepository *SubscriptionRepository
	CourseRepository       *CourseRepository
	EnrollmentRepository   *EnrollmentRepository
	EventRepository        *EventRepository
	ProfileRepository      *ProfileRepository
	CareerRepository       *CareerRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		PlanRepository:         NewPlanRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		CourseRepository:       NewCourseRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		EventRepository:        NewEventRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		CareerRepository:       NewCareerRepository(db),
	}
}
