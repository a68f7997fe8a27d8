package domain

import "time"

// Task represents a user-owned activity item.
type Task struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	CreatedDate    time.Time  `json:"created_date"`
	CompletionDate *time.Time `json:"completion_date"`
	IsCompleted    bool       `json:"is_completed"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Task) IsOwnedBy(userID string) bool {
	return t != nil && userID != "" && t.UserID == userID
}
