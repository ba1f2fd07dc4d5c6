package domain

import "time"

// Session is the server-side record behind an issued access token.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Token is what a successful login hands back to the caller.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
