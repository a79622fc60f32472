package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
)

// PlanRepository handles database operations for subscription plans
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts a new plan and returns its generated ID
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) (int64, error) {
	query := `
		INSERT INTO plans (name, description, price, duration_days, services, features)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		plan.Name, plan.Description, plan.Price, plan.DurationDays,
		plan.Services, plan.Features).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error executing create plan query: %w", err)
	}

	return plan.ID, nil
}

// GetByID retrieves a plan by ID
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	query := `
		SELECT id, name, description, price, duration_days, services, features, created_at, updated_at
		FROM plans
		WHERE id = $1
	`

	var plan models.Plan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.Price,
		&plan.DurationDays,
		&plan.Services,
		&plan.Features,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error executing get plan query: %w", err)
	}

	return &plan, nil
}

// List retrieves a page of plans ordered by creation time descending,
// together with the total count.
func (r *PlanRepository) List(ctx context.Context, page, pageSize int) ([]models.Plan, int64, error) {
	offset := (page - 1) * pageSize

	builder := squirrel.Select(
		"id", "name", "description", "price", "duration_days",
		"services", "features", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("plans").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing list plans query: %w", err)
	}
	defer rows.Close()

	plans := []models.Plan{}
	var total int64
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.Price,
			&plan.DurationDays,
			&plan.Services,
			&plan.Features,
			&plan.CreatedAt,
			&plan.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating plan rows: %w", err)
	}

	// Empty page beyond the data still needs the real total
	if total == 0 && len(plans) == 0 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM plans`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("error counting plans: %w", err)
		}
	}

	return plans, total, nil
}

// Update replaces the mutable fields of an existing plan
func (r *PlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	query := `
		UPDATE plans
		SET name = $1, description = $2, price = $3, duration_days = $4,
		    services = $5, features = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		plan.Name, plan.Description, plan.Price, plan.DurationDays,
		plan.Services, plan.Features, plan.ID)
	if err != nil {
		return fmt.Errorf("error executing update plan query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

// Delete removes a plan. Plans referenced by subscriptions are protected by a
// restrict foreign key and surface as ErrPlanInUse.
func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPlanInUse
		}
		return fmt.Errorf("error executing delete plan query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}
