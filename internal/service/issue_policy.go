package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"forum-api/internal/config"
	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

// IssuePolicy is the credential check that runs before a token is signed.
// credential is whatever the caller presented alongside the claims.
type IssuePolicy interface {
	Allow(ctx context.Context, claims map[string]any, credential string) error
	Name() string
}

// OpenIssuePolicy signs any submitted claim set.
type OpenIssuePolicy struct{}

func (OpenIssuePolicy) Allow(context.Context, map[string]any, string) error { return nil }
func (OpenIssuePolicy) Name() string { return config.IssuePolicyOpen }

// RegisteredUserIssuePolicy requires the email claim to belong to a
// registered user.
type RegisteredUserIssuePolicy struct {
	users userFinder
}

func NewRegisteredUserIssuePolicy(users userFinder) *RegisteredUserIssuePolicy {
	return &RegisteredUserIssuePolicy{users: users}
}

func (p *RegisteredUserIssuePolicy) Allow(ctx context.Context, claims map[string]any, _ string) error {
	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "email claim is required", "email", http.StatusBadRequest)
	}

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apierror.Wrap(model.ErrUnauthorized, "UNAUTHORIZED", "unknown user", email, http.StatusUnauthorized)
	}
	return nil
}

func (p *RegisteredUserIssuePolicy) Name() string { return config.IssuePolicyRegistered }

// ClientSecretIssuePolicy compares the presented credential with a bcrypt hash.
type ClientSecretIssuePolicy struct {
	hash []byte
}

func NewClientSecretIssuePolicy(hash string) (*ClientSecretIssuePolicy, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid client secret hash: %w", err)
	}
	return &ClientSecretIssuePolicy{hash: []byte(hash)}, nil
}

func (p *ClientSecretIssuePolicy) Allow(_ context.Context, _ map[string]any, credential string) error {
	if credential == "" {
		return apierror.Wrap(model.ErrMissingCredential, "UNAUTHORIZED", "unauthorized access", "missing client secret", http.StatusUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(credential)); err != nil {
		return apierror.Wrap(model.ErrInvalidCredential, "UNAUTHORIZED", "unauthorized access", "invalid client secret", http.StatusUnauthorized)
	}
	return nil
}

func (p *ClientSecretIssuePolicy) Name() string { return config.IssuePolicyClientSecret }

// NewIssuePolicy builds the policy named by configuration.
func NewIssuePolicy(cfg *config.Config, users userFinder) (IssuePolicy, error) {
	switch cfg.TokenIssuePolicy {
	case config.IssuePolicyOpen:
		return OpenIssuePolicy{}, nil
	case config.IssuePolicyRegistered:
		return NewRegisteredUserIssuePolicy(users), nil
	case config.IssuePolicyClientSecret:
		return NewClientSecretIssuePolicy(cfg.TokenClientSecretHash)
	default:
		return nil, fmt.Errorf("unknown token issue policy %q", cfg.TokenIssuePolicy)
	}
}
