package handler

import (
	"net/http"

	"forum-api/internal/middleware"
	"forum-api/internal/model"
	"forum-api/internal/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, users, nil)
}

// Get answers with null data when the email is unknown.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByEmail(r.Context(), middleware.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}

	if user == nil {
		writeSuccess(w, http.StatusOK, nil, nil)
		return
	}
	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.AdminStatus(r.Context(), middleware.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, status, nil)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.User
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Register(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.InsertedID == nil {
		status = http.StatusOK
	}
	writeSuccess(w, status, result, nil)
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PromoteToAdmin(r.Context(), middleware.URLParam(r, "id"), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}
