package middleware

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// URLParam returns the decoded value of a route parameter. chi matches on
// RawPath when the request carries one, leaving escapes such as %40 in the
// captured value.
func URLParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}

	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}
