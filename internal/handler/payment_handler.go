package handler

import (
	"net/http"

	"forum-api/internal/middleware"
	"forum-api/internal/model"
	"forum-api/internal/service"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var payload model.PaymentIntentRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), payload.SubscriptionFee)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, intent, nil)
}

func (h *PaymentHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListByEmail(r.Context(), middleware.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}

	writeSuccess(w, http.StatusOK, payments, nil)
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var payload model.Payment
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	result, err := h.service.Record(r.Context(), principal, payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result, nil)
}
