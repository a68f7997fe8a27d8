package transport

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskRequest carries create/update payloads. Dates travel as strings so the
// validation layer can report malformed inputs instead of a decode error.
// is_completed is accepted but never honored on create.
type TaskRequest struct {
	Name           string `json:"name"`
	CreatedDate    string `json:"created_date"`
	CompletionDate string `json:"completion_date"`
	IsCompleted    bool   `json:"is_completed"`
}
