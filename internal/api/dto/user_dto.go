package dto

// LoginRequest is the form-encoded login payload.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// MeResponse describes the authenticated account.
type MeResponse struct {
	Username string `json:"username"`
	Disabled bool   `json:"disabled"`
}

// OKResponse acknowledges an operation without a body of its own.
type OKResponse struct {
	OK bool `json:"ok"`
}
