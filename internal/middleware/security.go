package middleware

import "net/http"

// clientSecretHeader carries the credential checked by the client_secret
// token issue policy.
const clientSecretHeader = "X-Client-Secret"

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// ClientSecret returns the credential presented for token issuance.
func ClientSecret(r *http.Request) string {
	return r.Header.Get(clientSecretHeader)
}
