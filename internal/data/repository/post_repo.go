package repository

import (
	"context"
	"fmt"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindBySlug(ctx context.Context, slug string) (*entity.Post, error)
	FindPublished(ctx context.Context, limit, offset int) ([]*entity.Post, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostRepository(db database.PgxIface, log *zap.Logger) PostRepository {
	return &postRepository{
		db:  db,
		log: log.With(zap.String("repository", "post")),
	}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, title, slug, excerpt, content, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Published,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create post", zap.Error(err), zap.String("slug", post.Slug))
		return fmt.Errorf("create post %s: %w", post.Slug, err)
	}

	return nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, published, created_at, updated_at
		FROM posts
		WHERE slug = $1
	`

	var p entity.Post
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find post by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find post by slug %s: %w", slug, err)
	}

	return &p, nil
}

func (r *postRepository) FindPublished(ctx context.Context, limit, offset int) ([]*entity.Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, published, created_at, updated_at
		FROM posts
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryPosts(ctx, query, limit, offset)
}

func (r *postRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, published, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryPosts(ctx, query, limit, offset)
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	query := `
		UPDATE posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, published = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Published,
	)
	if err != nil {
		r.log.Error("Failed to update post", zap.Error(err), zap.String("post_id", post.ID.String()))
		return fmt.Errorf("update post %s: %w", post.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update post %s: %w", post.ID.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete post", zap.Error(err), zap.String("post_id", id.String()))
		return fmt.Errorf("delete post %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete post %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*entity.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query posts", zap.Error(err))
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		var p entity.Post
		err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, &p)
	}

	return posts, nil
}
