package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"forum-api/internal/model"
)

type tokenVerifier interface {
	Verify(header string) (*model.Principal, error)
}

type roleResolver interface {
	ResolveRole(ctx context.Context, email string) (model.Role, error)
}

type contextKey string

const principalContextKey contextKey = "principal"

type PolicyKind int

const (
	PolicyPublic PolicyKind = iota
	PolicyRequiresAuth
	PolicyRequiresSelf
	PolicyRequiresAdmin
)

// Policy is the access rule attached to a route. Field names the path
// parameter compared against the principal for PolicyRequiresSelf.
type Policy struct {
	Kind  PolicyKind
	Field string
}

func Public() Policy { return Policy{Kind: PolicyPublic} }
func RequiresAuth() Policy { return Policy{Kind: PolicyRequiresAuth} }
func RequiresSelf(field string) Policy { return Policy{Kind: PolicyRequiresSelf, Field: field} }
func RequiresAdmin() Policy { return Policy{Kind: PolicyRequiresAdmin} }

type AuthMiddleware struct {
	verifier tokenVerifier
	roles    roleResolver
}

func NewAuthMiddleware(verifier tokenVerifier, roles roleResolver) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, roles: roles}
}

// Authorize evaluates one policy. Anything other than a satisfied policy is
// an error; unknown kinds are refused.
func (m *AuthMiddleware) Authorize(ctx context.Context, policy Policy, principal *model.Principal, param func(string) string) error {
	if policy.Kind == PolicyPublic {
		return nil
	}
	if principal == nil {
		return model.ErrUnauthorized
	}

	switch policy.Kind {
	case PolicyRequiresAuth:
		return nil
	case PolicyRequiresSelf:
		if param == nil || policy.Field == "" || param(policy.Field) != principal.Email {
			return model.ErrForbidden
		}
		return nil
	case PolicyRequiresAdmin:
		if principal.Role == "" {
			role, err := m.roles.ResolveRole(ctx, principal.Email)
			if err != nil {
				return err
			}
			principal.Role = role
		}
		if principal.Role != model.RoleAdmin {
			return model.ErrForbidden
		}
		return nil
	default:
		return model.ErrForbidden
	}
}

// Require authenticates the request once and then checks every policy in
// order. The first failing policy decides the response.
func (m *AuthMiddleware) Require(policies ...Policy) func(http.Handler) http.Handler {
	needsPrincipal := false
	for _, p := range policies {
		if p.Kind != PolicyPublic {
			needsPrincipal = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			principal, ok := PrincipalFromContext(ctx)
			if !ok && needsPrincipal {
				verified, err := m.verifier.Verify(r.Header.Get("Authorization"))
				if err != nil {
					writeGateError(w, err)
					return
				}
				principal = verified
				ctx = context.WithValue(ctx, principalContextKey, principal)
				notePrincipal(ctx, principal.Email)
			}

			param := func(name string) string { return URLParam(r, name) }
			for _, policy := range policies {
				if err := m.Authorize(ctx, policy, principal, param); err != nil {
					writeGateError(w, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.Require(RequiresAuth())(next)
}

// RequireSelf always authenticates first; the path parameter is only
// meaningful against a verified principal.
func (m *AuthMiddleware) RequireSelf(field string) func(http.Handler) http.Handler {
	return m.Require(RequiresAuth(), RequiresSelf(field))
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Require(RequiresAuth(), RequiresAdmin())(next)
}

func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*model.Principal)
	return principal, ok && principal != nil
}

// WithPrincipal is used by tests and internal callers that already hold a
// verified principal.
func WithPrincipal(ctx context.Context, principal *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func writeGateError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	body := &model.APIError{Code: "UNAUTHORIZED", Message: "unauthorized access"}

	switch {
	case errors.Is(err, model.ErrMissingCredential),
		errors.Is(err, model.ErrInvalidCredential),
		errors.Is(err, model.ErrUnauthorized):
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body = &model.APIError{Code: "FORBIDDEN", Message: "forbidden access"}
	case errors.Is(err, model.ErrUpstreamFailure):
		slog.Error("role lookup failed", "error", err)
		status = http.StatusBadGateway
		body = &model.APIError{Code: "UPSTREAM_FAILURE", Message: "store unavailable"}
	default:
		slog.Error("authorization failed", "error", err)
		status = http.StatusInternalServerError
		body = &model.APIError{Code: "INTERNAL_ERROR", Message: "Unexpected server error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
