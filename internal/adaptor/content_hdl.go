package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContentHandler struct {
	service usecase.ContentService
	log     *zap.Logger
}

func NewContentHandler(service usecase.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		log:     log.With(zap.String("handler", "content")),
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// ==================== BLOG (public) ====================

// ListPosts handles GET /api/posts
func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPublishedPosts(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list posts")
		return
	}

	utils.ResponseSuccess(w, "success", posts)
}

// GetPost handles GET /api/posts/{slug}
func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Slug is required", nil)
		return
	}

	post, err := h.service.GetPostBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get post")
		return
	}

	utils.ResponseSuccess(w, "success", post)
}

// Subscribe handles POST /api/subscribe
func (h *ContentHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req request.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Subscribe(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "subscribe")
		return
	}

	utils.ResponseCreated(w, "success", nil)
}

// ==================== BLOG (admin) ====================

// ListAllPosts handles GET /api/admin/posts
func (h *ContentHandler) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAllPosts(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list all posts")
		return
	}

	utils.ResponseSuccess(w, "success", posts)
}

// CreatePost handles POST /api/admin/posts
func (h *ContentHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req request.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	post, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create post")
		return
	}

	utils.ResponseCreated(w, "success", post)
}

// UpdatePost handles PUT /api/admin/posts/{id}
func (h *ContentHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	if postID == "" {
		utils.ResponseBadRequest(w, "Post ID is required", nil)
		return
	}

	var req request.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), postID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update post")
		return
	}

	utils.ResponseSuccess(w, "success", post)
}

// DeletePost handles DELETE /api/admin/posts/{id}
func (h *ContentHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	if postID == "" {
		utils.ResponseBadRequest(w, "Post ID is required", nil)
		return
	}

	if err := h.service.DeletePost(r.Context(), postID); err != nil {
		handleServiceError(w, h.log, err, "delete post")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== LEADS / SETTINGS (admin) ====================

// ListLeads handles GET /api/admin/leads
func (h *ContentHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.service.ListLeads(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list leads")
		return
	}

	utils.ResponseSuccess(w, "success", leads)
}

// GetSettings handles GET /api/admin/settings
func (h *ContentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// SetSetting handles PUT /api/admin/settings
func (h *ContentHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	var req request.SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SetSetting(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "set setting")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
