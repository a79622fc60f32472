package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// SubscriptionRepository handles database operations for subscriptions and
// their payment proofs
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// CreateWithProof inserts a pending subscription together with its pending
// payment proof in one transaction.
func (r *SubscriptionRepository) CreateWithProof(ctx context.Context, sub *models.Subscription, proof *models.PaymentProof) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO subscriptions (user_id, plan_id, status, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`,
			sub.UserID, sub.PlanID, sub.Status, sub.StartDate, sub.EndDate,
		).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error inserting subscription: %w", err)
		}

		proof.SubscriptionID = sub.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO payment_proofs (subscription_id, file_url, status)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			proof.SubscriptionID, proof.FileURL, proof.Status,
		).Scan(&proof.ID, &proof.CreatedAt, &proof.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error inserting payment proof: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a subscription by ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	query := `
		SELECT id, user_id, plan_id, status, start_date, end_date, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`

	var sub models.Subscription
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status,
		&sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("error executing get subscription query: %w", err)
	}

	return &sub, nil
}

// GetByUser retrieves all subscriptions of a user with their plans attached,
// newest first.
func (r *SubscriptionRepository) GetByUser(ctx context.Context, userID int64) ([]models.Subscription, error) {
	query := `
		SELECT s.id, s.user_id, s.plan_id, s.status, s.start_date, s.end_date, s.created_at, s.updated_at,
		       p.id, p.name, p.description, p.price, p.duration_days, p.services, p.features, p.created_at, p.updated_at
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing get user subscriptions query: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var sub models.Subscription
		var plan models.Plan
		if err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status,
			&sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt,
			&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.DurationDays,
			&plan.Services, &plan.Features, &plan.CreatedAt, &plan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning subscription row: %w", err)
		}
		sub.Plan = &plan
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}

	return subs, nil
}

// GetProofByID retrieves a payment proof by ID
func (r *SubscriptionRepository) GetProofByID(ctx context.Context, id int64) (*models.PaymentProof, error) {
	query := `
		SELECT id, subscription_id, file_url, status, reviewed_by, reviewed_at, created_at, updated_at
		FROM payment_proofs
		WHERE id = $1
	`

	var proof models.PaymentProof
	err := r.db.QueryRow(ctx, query, id).Scan(
		&proof.ID, &proof.SubscriptionID, &proof.FileURL, &proof.Status,
		&proof.ReviewedBy, &proof.ReviewedAt, &proof.CreatedAt, &proof.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentProofNotFound
		}
		return nil, fmt.Errorf("error executing get payment proof query: %w", err)
	}

	return &proof, nil
}

// ListProofs retrieves a page of payment proofs, optionally filtered by status,
// newest first.
func (r *SubscriptionRepository) ListProofs(ctx context.Context, status *models.PaymentProofStatus, page, pageSize int) ([]models.PaymentProof, int64, error) {
	offset := (page - 1) * pageSize

	builder := squirrel.Select(
		"id", "subscription_id", "file_url", "status",
		"reviewed_by", "reviewed_at", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("payment_proofs").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		builder = builder.Where("status = ?", *status)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing list payment proofs query: %w", err)
	}
	defer rows.Close()

	proofs := []models.PaymentProof{}
	var total int64
	for rows.Next() {
		var proof models.PaymentProof
		if err := rows.Scan(
			&proof.ID, &proof.SubscriptionID, &proof.FileURL, &proof.Status,
			&proof.ReviewedBy, &proof.ReviewedAt, &proof.CreatedAt, &proof.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning payment proof row: %w", err)
		}
		proofs = append(proofs, proof)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating payment proof rows: %w", err)
	}

	return proofs, total, nil
}

// ReviewProof applies an admin decision to a pending proof and moves the
// owning subscription accordingly, all in one transaction. Both updates are
// guarded on the PENDING state so a concurrent review loses cleanly.
func (r *SubscriptionRepository) ReviewProof(ctx context.Context, proofID int64, decision models.PaymentProofStatus, reviewerID int64, subscriptionStatus models.SubscriptionStatus) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var subscriptionID int64
		err := tx.QueryRow(ctx, `
			UPDATE payment_proofs
			SET status = $1, reviewed_by = $2, reviewed_at = $3, updated_at = NOW()
			WHERE id = $4 AND status = $5
			RETURNING subscription_id`,
			decision, reviewerID, time.Now(), proofID, models.PaymentProofPending,
		).Scan(&subscriptionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Either the proof is gone or it was already reviewed
				return apperrors.ErrInvalidTransition
			}
			return fmt.Errorf("error updating payment proof: %w", err)
		}

		result, err := tx.Exec(ctx, `
			UPDATE subscriptions
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3`,
			subscriptionStatus, subscriptionID, models.SubscriptionPending)
		if err != nil {
			return fmt.Errorf("error updating subscription status: %w", err)
		}

		if result.RowsAffected() == 0 {
			return apperrors.ErrInvalidTransition
		}

		return nil
	})
}
