package dto

// ErrorResponse represents a generic error response body. Code carries a
// machine-readable kind for failures the client reacts to specifically,
// such as a missing API credential.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	// ErrCodeAPIKeyMissing signals that no Gemini credential is configured;
	// clients should open the key-entry prompt instead of showing a generic
	// failure.
	ErrCodeAPIKeyMissing = "api_key_missing"
)
