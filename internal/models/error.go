package models

// ErrorResponse is the error body shared by every endpoint: a short
// machine-readable tag, a human-readable message, and optional
// per-field details for validation failures.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WSMessage is the envelope pushed to connected WebSocket clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
