package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Health(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	up := checkerFunc(func(context.Context) error { return nil })
	down := checkerFunc(func(context.Context) error { return errors.New("no route to host") })

	rec := httptest.NewRecorder()
	NewHealthHandler(map[string]HealthChecker{"mongo": up}).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","checks":{"mongo":"up"}}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewHealthHandler(map[string]HealthChecker{"mongo": up, "postgres": down}).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"degraded","checks":{"mongo":"up","postgres":"down"}}}`, rec.Body.String())
}
