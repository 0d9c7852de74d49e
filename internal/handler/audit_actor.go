package handler

import (
	"net/http"

	"forum-api/internal/middleware"
	"forum-api/internal/model"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: middleware.ClientIP(r)}

	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		actor.Email = principal.Email
	}

	return actor
}
