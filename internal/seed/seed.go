// Package seed creates default data on a fresh database.
package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/mentorhub/mentorhub/internal/app/models"
	appRepos "github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
)

const defaultAdminEmail = "admin@mentorhub.app"

// CreateDefaultData creates the default admin account and starter plans if
// they don't exist. Errors are collected so a partial seed does not stop
// startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	planRepo := appRepos.NewPlanRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, starter plans)...")
	var finalErr error

	// --- Default admin --- //
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		finalErr = errors.Join(finalErr, err)
	} else {
		admin := &appModels.User{
			Email:          defaultAdminEmail,
			Password:       hashed,
			FirstName:      "MentorHub",
			LastName:       "Admin",
			Role:           appModels.RoleAdmin,
			ProgressStatus: appModels.ProgressCompleted,
			IsActive:       true,
		}
		if _, err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Starter plans --- //
	// Plan names are not unique, so only seed on an empty catalog.
	existing, total, err := planRepo.List(ctx, 1, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing plans")
		return errors.Join(finalErr, err)
	}
	if total > 0 || len(existing) > 0 {
		return finalErr
	}

	starterPlans := []appModels.Plan{
		{
			Name:         "Starter Mentorship",
			Description:  "Three months of guided mentorship for early-stage applicants.",
			Price:        149.00,
			DurationDays: 90,
			Services:     []string{"monthly 1:1 session", "cv review"},
			Features:     []string{"course library access", "community events"},
		},
		{
			Name:         "Full Mentorship",
			Description:  "A year of end-to-end mentorship through the whole scholarship funnel.",
			Price:        449.00,
			DurationDays: 365,
			Services:     []string{"weekly 1:1 session", "cv review", "essay review", "scholarship matrix"},
			Features:     []string{"course library access", "community events", "priority support"},
		},
	}

	for i := range starterPlans {
		if _, err := planRepo.Create(ctx, &starterPlans[i]); err != nil {
			lgr.Error().Err(err).Str("plan", starterPlans[i].Name).Msg("Error creating starter plan")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
