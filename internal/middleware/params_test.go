package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestURLParam(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Get("/users/{email}", func(w http.ResponseWriter, r *http.Request) {
		got = URLParam(r, "email")
	})

	tests := []struct {
		path string
		want string
	}{
		{"/users/a@x.com", "a@x.com"},
		{"/users/a%40x.com", "a@x.com"},
		{"/users/%23tech", "#tech"},
		{"/users/100%25", "100%"},
		{"/users/a%2540x.com", "a%40x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got = ""
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}
