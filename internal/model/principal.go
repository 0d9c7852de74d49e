package model

// Principal is the caller identity rebuilt from a verified token. Role stays
// empty until an admin check resolves it against the user store.
type Principal struct {
	Email  string         `json:"email"`
	Claims map[string]any `json:"-"`
	Role   Role           `json:"role,omitempty"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
