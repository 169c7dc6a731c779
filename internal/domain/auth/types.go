package auth

import "time"

// Config drives bearer token validation.
type Config struct {
	// Secret is the HS256 signing key. Empty disables authentication.
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// Claims are extracted from the JWT token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}
