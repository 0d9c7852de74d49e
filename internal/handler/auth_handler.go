package handler

import (
	"net/http"

	"forum-api/internal/middleware"
	"forum-api/internal/model"
	"forum-api/internal/service"
)

type AuthHandler struct {
	tokens *service.TokenService
	policy service.IssuePolicy
	audit  *service.AuditService
}

func NewAuthHandler(tokens *service.TokenService, policy service.IssuePolicy, audit *service.AuditService) *AuthHandler {
	return &AuthHandler{tokens: tokens, policy: policy, audit: audit}
}

// Issue signs the submitted claim set once the configured issue policy
// accepts the caller.
func (h *AuthHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	if err := decodeJSON(r, &claims); err != nil {
		writeError(w, err)
		return
	}
	if claims == nil {
		claims = map[string]any{}
	}

	actor := actorFromRequest(r)
	if email, ok := claims["email"].(string); ok {
		actor.Email = email
	}

	if err := h.policy.Allow(r.Context(), claims, middleware.ClientSecret(r)); err != nil {
		h.audit.Log(r.Context(), model.AuditActionTokenIssue, actor, "", map[string]any{"policy": h.policy.Name()}, err)
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		writeError(w, err)
		return
	}

	h.audit.Log(r.Context(), model.AuditActionTokenIssue, actor, "", map[string]any{"policy": h.policy.Name()}, nil)
	writeSuccess(w, http.StatusOK, model.TokenResponse{Token: token}, nil)
}
