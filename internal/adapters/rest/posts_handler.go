package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/philly/postboard/internal/adapters/api"
	"github.com/philly/postboard/internal/posts/application"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
)

// PostsHandler handles HTTP requests for posts
type PostsHandler struct {
	*BaseHandler
	service *application.PostsService
	html    *bluemonday.Policy
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(base *BaseHandler, service *application.PostsService) *PostsHandler {
	return &PostsHandler{
		BaseHandler: base,
		service:     service,
		html:        bluemonday.UGCPolicy(),
	}
}

// CreatePost creates a new post authored by the caller
// NOTE: the auth chain runs before this method; the identity is guaranteed
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	var req api.CreatePostRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, application.CreatePostParams{
		Title:   *req.Title,
		Content: *req.Content,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, h.domainPostToAPI(post, ""), http.StatusCreated)
}

// ListPosts returns every post with its author's username
// NOTE: Public endpoint
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	response := make([]api.Post, len(posts))
	for i, post := range posts {
		response[i] = h.authoredPostToAPI(post)
	}
	h.WriteJSONResponse(w, r, response, http.StatusOK)
}

// GetPost retrieves a single post by ID
// NOTE: Public endpoint
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	post, err := h.service.GetPost(r.Context(), uuid.UUID(id))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, h.authoredPostToAPI(post), http.StatusOK)
}

// UpdatePost replaces the title and content of a post owned by the caller
func (h *PostsHandler) UpdatePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	userID := h.GetUserIDFromContext(r)

	var req api.UpdatePostRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), userID, uuid.UUID(id), application.UpdatePostParams{
		Title:   *req.Title,
		Content: *req.Content,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, h.domainPostToAPI(post, ""), http.StatusOK)
}

// DeletePost removes a post owned by the caller
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	userID := h.GetUserIDFromContext(r)

	if err := h.service.DeletePost(r.Context(), userID, uuid.UUID(id)); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, api.DeleteConfirmation{Message: "post removed"}, http.StatusOK)
}

// Helper functions

// Stored content is never altered; ContentHtml is derived per response.
func (h *PostsHandler) domainPostToAPI(post *domain.Post, username string) api.Post {
	author := api.PostAuthor{Id: post.AuthorID.String()}
	if username != "" {
		author.Username = &username
	}

	return api.Post{
		Id:          openapi_types.UUID(post.ID),
		Title:       post.Title,
		Content:     post.Content,
		ContentHtml: h.html.Sanitize(post.Content),
		Author:      author,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func (h *PostsHandler) authoredPostToAPI(post *ports.AuthoredPost) api.Post {
	return h.domainPostToAPI(post.Post, post.AuthorUsername)
}
