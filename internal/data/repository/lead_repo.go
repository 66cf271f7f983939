package repository

import (
	"context"
	"fmt"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/database"

	"go.uber.org/zap"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Lead, error)
	Count(ctx context.Context) (int64, error)
}

type leadRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLeadRepository(db database.PgxIface, log *zap.Logger) LeadRepository {
	return &leadRepository{
		db:  db,
		log: log.With(zap.String("repository", "lead")),
	}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, source, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Source,
		lead.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create lead", zap.Error(err), zap.String("email", lead.Email))
		return fmt.Errorf("create lead %s: %w", lead.Email, err)
	}

	return nil
}

func (r *leadRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, email, source, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list leads", zap.Error(err))
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Source, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, &l)
	}

	return leads, nil
}

func (r *leadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count leads", zap.Error(err))
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}
