package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BlockedDateRepository interface {
	Create(ctx context.Context, blocked *entity.BlockedDate) error
	Delete(ctx context.Context, id uuid.UUID) error
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
	FindRange(ctx context.Context, from, to time.Time) ([]*entity.BlockedDate, error)
	FindAll(ctx context.Context) ([]*entity.BlockedDate, error)
}

type blockedDateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBlockedDateRepository(db database.PgxIface, log *zap.Logger) BlockedDateRepository {
	return &blockedDateRepository{
		db:  db,
		log: log.With(zap.String("repository", "blocked_date")),
	}
}

func (r *blockedDateRepository) Create(ctx context.Context, blocked *entity.BlockedDate) error {
	query := `
		INSERT INTO blocked_dates (id, blocked_date, reason, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (blocked_date) DO UPDATE SET reason = EXCLUDED.reason
	`

	_, err := r.db.Exec(ctx, query,
		blocked.ID,
		blocked.Date,
		blocked.Reason,
		blocked.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to block date",
			zap.Error(err),
			zap.Time("date", blocked.Date))
		return fmt.Errorf("block date %s: %w", blocked.Date.Format("2006-01-02"), err)
	}

	return nil
}

func (r *blockedDateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM blocked_dates WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to unblock date",
			zap.Error(err),
			zap.String("blocked_date_id", id.String()))
		return fmt.Errorf("unblock date %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("unblock date %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *blockedDateRepository) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blocked_dates WHERE blocked_date = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		r.log.Error("Failed to check blocked date",
			zap.Error(err),
			zap.Time("date", date))
		return false, fmt.Errorf("check blocked date %s: %w", date.Format("2006-01-02"), err)
	}

	return exists, nil
}

func (r *blockedDateRepository) FindRange(ctx context.Context, from, to time.Time) ([]*entity.BlockedDate, error) {
	query := `
		SELECT id, blocked_date, reason, created_at
		FROM blocked_dates
		WHERE blocked_date BETWEEN $1 AND $2
		ORDER BY blocked_date
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find blocked dates", zap.Error(err))
		return nil, fmt.Errorf("find blocked dates: %w", err)
	}
	defer rows.Close()

	return scanBlockedDates(rows)
}

func (r *blockedDateRepository) FindAll(ctx context.Context) ([]*entity.BlockedDate, error) {
	query := `
		SELECT id, blocked_date, reason, created_at
		FROM blocked_dates
		ORDER BY blocked_date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list blocked dates", zap.Error(err))
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	defer rows.Close()

	return scanBlockedDates(rows)
}

func scanBlockedDates(rows pgx.Rows) ([]*entity.BlockedDate, error) {
	var blocked []*entity.BlockedDate
	for rows.Next() {
		var b entity.BlockedDate
		if err := rows.Scan(&b.ID, &b.Date, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blocked date row: %w", err)
		}
		blocked = append(blocked, &b)
	}
	return blocked, nil
}
