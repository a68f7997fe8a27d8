package transport

import "github.com/taskhive/backend/domain"

// Response shapes mirror the public API contract exactly: each endpoint has
// its own envelope and the field sets differ between them, so they are
// modeled as distinct structs rather than one generic wrapper.

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageResponse is the minimal {message} envelope (registration failures,
// logout).
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the {status, message} envelope used by most task and
// login failures.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FailureResponse extends StatusResponse with the underlying error text for
// generic 500 responses.
type FailureResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RegisterResponse is returned with 201 on successful registration.
type RegisterResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterFailureResponse is the registration-specific 500 envelope; it has
// no status field.
type RegisterFailureResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type LoginResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type ProfileResponse struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// UploadResponse always carries toast:true so clients can surface the
// outcome as a notification.
type UploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
	Toast    bool   `json:"toast"`
}

type UploadFailureResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Toast   bool   `json:"toast"`
}

type TaskResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

func NewStatusError(message string) StatusResponse {
	return StatusResponse{Status: StatusError, Message: message}
}

func NewFailure(message string, err error) FailureResponse {
	return FailureResponse{Status: StatusError, Message: message, Error: errText(err)}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
