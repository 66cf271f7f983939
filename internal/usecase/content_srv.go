package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/response"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentService covers the blog, lead capture and site settings. Plain
// CRUD around the booking core.
type ContentService interface {
	ListPublishedPosts(ctx context.Context, req *request.PaginatedRequest) ([]response.PostResponse, error)
	GetPostBySlug(ctx context.Context, slug string) (*response.PostResponse, error)
	ListAllPosts(ctx context.Context, req *request.PaginatedRequest) ([]response.PostResponse, error)
	CreatePost(ctx context.Context, req *request.PostRequest) (*response.PostResponse, error)
	UpdatePost(ctx context.Context, postID string, req *request.PostRequest) (*response.PostResponse, error)
	DeletePost(ctx context.Context, postID string) error

	Subscribe(ctx context.Context, req *request.SubscribeRequest) error
	ListLeads(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LeadResponse], error)

	GetSettings(ctx context.Context) ([]response.SettingResponse, error)
	SetSetting(ctx context.Context, req *request.SettingRequest) error
}

type contentService struct {
	posts    repository.PostRepository
	leads    repository.LeadRepository
	settings repository.SettingRepository
	log      *zap.Logger
}

func NewContentService(
	posts repository.PostRepository,
	leads repository.LeadRepository,
	settings repository.SettingRepository,
	log *zap.Logger,
) ContentService {
	return &contentService{
		posts:    posts,
		leads:    leads,
		settings: settings,
		log:      log.With(zap.String("service", "content")),
	}
}

// ==================== POSTS ====================

func (s *contentService) ListPublishedPosts(ctx context.Context, req *request.PaginatedRequest) ([]response.PostResponse, error) {
	posts, err := s.posts.FindPublished(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts, false), nil
}

func (s *contentService) GetPostBySlug(ctx context.Context, slug string) (*response.PostResponse, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.Published {
		return nil, fmt.Errorf("post %s: %w", slug, entity.ErrNotFound)
	}

	resp := response.PostToResponse(post, true)
	return &resp, nil
}

func (s *contentService) ListAllPosts(ctx context.Context, req *request.PaginatedRequest) ([]response.PostResponse, error) {
	posts, err := s.posts.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts, false), nil
}

func (s *contentService) CreatePost(ctx context.Context, req *request.PostRequest) (*response.PostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	post := &entity.Post{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Published: req.Published,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("slug", post.Slug))

	resp := response.PostToResponse(post, true)
	return &resp, nil
}

func (s *contentService) UpdatePost(ctx context.Context, postID string, req *request.PostRequest) (*response.PostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format %s: %w", postID, err)
	}

	post, err := s.posts.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if post == nil || post.ID != id {
		// Slug may have changed; update by ID through a fresh entity.
		post = &entity.Post{Base: entity.Base{ID: id}}
	}

	post.Title = req.Title
	post.Slug = req.Slug
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.Published = req.Published

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info("Post updated", zap.String("post_id", postID))

	resp := response.PostToResponse(post, true)
	return &resp, nil
}

func (s *contentService) DeletePost(ctx context.Context, postID string) error {
	id, err := uuid.Parse(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format %s: %w", postID, err)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Post deleted", zap.String("post_id", postID))
	return nil
}

// ==================== LEADS ====================

func (s *contentService) Subscribe(ctx context.Context, req *request.SubscribeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lead := &entity.Lead{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:   req.Name,
		Email:  req.Email,
		Source: req.Source,
	}

	// Duplicate emails are silently absorbed by the repository, so a
	// repeat subscriber always gets a success.
	if err := s.leads.Create(ctx, lead); err != nil {
		return err
	}

	s.log.Info("Lead captured", zap.String("source", req.Source))
	return nil
}

func (s *contentService) ListLeads(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LeadResponse], error) {
	leads, err := s.leads.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.leads.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.LeadResponse, len(leads))
	for i, l := range leads {
		responses[i] = response.LeadToResponse(l)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

// ==================== SETTINGS ====================

func (s *contentService) GetSettings(ctx context.Context) ([]response.SettingResponse, error) {
	settings, err := s.settings.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.SettingResponse, len(settings))
	for i, st := range settings {
		responses[i] = response.SettingToResponse(st)
	}
	return responses, nil
}

func (s *contentService) SetSetting(ctx context.Context, req *request.SettingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.settings.Upsert(ctx, req.Key, req.Value); err != nil {
		return err
	}

	s.log.Info("Setting updated", zap.String("key", req.Key))
	return nil
}

func toPostResponses(posts []*entity.Post, includeContent bool) []response.PostResponse {
	responses := make([]response.PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = response.PostToResponse(p, includeContent)
	}
	return responses
}
