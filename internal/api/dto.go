package api

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogoutResponse is returned by POST /auth/logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// UploadResponse summarises a bulk import. Errors is omitted when empty,
// matching the wire format the client expects.
type UploadResponse struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors,omitempty"`
}

// MessageResponse is the root endpoint body.
type MessageResponse struct {
	Message string `json:"message"`
}
