package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

// TokenService signs and verifies HS256 access tokens with one process-wide
// secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs the claim set as given, adding iat and exp. Deciding who may
// obtain a token is left to the caller's IssuePolicy.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	now := s.now().UTC()

	mapClaims := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["iat"] = now.Unix()
	if s.ttl > 0 {
		mapClaims["exp"] = now.Add(s.ttl).Unix()
	} else {
		delete(mapClaims, "exp")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(s.secret)
}

// Verify reads the token from the second segment of an Authorization header
// value and returns the principal it carries.
func (s *TokenService) Verify(header string) (*model.Principal, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, apierror.Wrap(model.ErrMissingCredential, "UNAUTHORIZED", "unauthorized access", "missing authorization header", http.StatusUnauthorized)
	}

	parts := strings.Fields(header)
	if len(parts) < 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, invalidCredential("malformed authorization header")
	}

	parsed, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, invalidCredential("invalid token signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, invalidCredential("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, invalidCredential("invalid token claims")
	}

	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return nil, invalidCredential("token has no email claim")
	}

	return &model.Principal{Email: email, Claims: claims}, nil
}

func invalidCredential(details string) error {
	return apierror.Wrap(model.ErrInvalidCredential, "UNAUTHORIZED", "unauthorized access", details, http.StatusUnauthorized)
}
