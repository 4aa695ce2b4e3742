package dto

// LoginRequest carries the credentials for validation. The identifier may
// be a bare username or a full email address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// SignUpRequest carries the credentials for account creation.
type SignUpRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// UserResponse mirrors the authenticated UI state for one user.
type UserResponse struct {
	Username        string `json:"username"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// LoginResponse is returned from a successful credential validation.
type LoginResponse struct {
	Authenticated bool          `json:"authenticated"`
	Token         string        `json:"token,omitempty"`
	User          *UserResponse `json:"user,omitempty"`
}

// SignUpResponse reports one of three sign-up outcomes: an active session
// (token and user set), success pending email verification (message set,
// no token), or failure (success false, message set).
type SignUpResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}

// SessionResponse is the session bootstrap result; Session is null when no
// session exists or retrieval failed.
type SessionResponse struct {
	Session *UserResponse `json:"session"`
}

// UpdateAPIKeyRequest carries a user-supplied Gemini credential.
type UpdateAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}
