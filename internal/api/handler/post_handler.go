package handler

import (
	"encoding/json"
	"net/http"
	"social_feed/internal/api/middleware"
	"social_feed/internal/app/service"
	"social_feed/internal/common"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(ps *service.PostService) *PostHandler {
	return &PostHandler{postService: ps}
}

// RegisterRoutes expects to be mounted behind middleware.Authenticator.
func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPosts)   // GET /api/posts?skip=0&limit=100
	r.Post("/", h.createPost) // POST /api/posts
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	skip, err := parseNonNegativeInt(r.URL.Query().Get("skip"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}
	limit, err := parseNonNegativeInt(r.URL.Query().Get("limit"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}

	posts, err := h.postService.ListPosts(r.Context(), skip, limit)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(r.Context(), req.Content, user)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

// parseNonNegativeInt treats an empty string as zero.
func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
