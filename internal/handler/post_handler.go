package handler

import (
	"net/http"

	"forum-api/internal/middleware"
	"forum-api/internal/model"
	"forum-api/internal/query"
	"forum-api/internal/service"
)

type PostHandler struct {
	service *service.PostService
	paging  query.Paging
}

func NewPostHandler(service *service.PostService, paging query.Paging) *PostHandler {
	return &PostHandler{service: service, paging: paging}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	writePosts(w, posts, err)
}

func (h *PostHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListByEmail(r.Context(), middleware.URLParam(r, "email"))
	writePosts(w, posts, err)
}

func (h *PostHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListByTag(r.Context(), middleware.URLParam(r, "tag"))
	writePosts(w, posts, err)
}

// ListPage serves ?sort=&page=&size= listings ordered by post time.
func (h *PostHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	lq, err := h.paging.Parse(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	posts, err := h.service.ListPage(r.Context(), lq)
	writePosts(w, posts, err)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetByID(r.Context(), middleware.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if post == nil {
		writeSuccess(w, http.StatusOK, nil, nil)
		return
	}
	writeSuccess(w, http.StatusOK, post, nil)
}

func (h *PostHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.CountData{Count: count}, nil)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.Post
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result, nil)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), middleware.URLParam(r, "email"), middleware.URLParam(r, "id"), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func writePosts(w http.ResponseWriter, posts []model.Post, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}

	writeSuccess(w, http.StatusOK, posts, nil)
}
