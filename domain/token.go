package domain

import "time"

// Token represents an opaque bearer credential stored in Redis.
// A user may hold any number of live tokens; each one resolves to
// exactly one user until it expires or is revoked.
type Token struct {
	Value     string    `json:"value"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (t *Token) IsExpired(reference time.Time) bool {
	if t == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !t.ExpiresAt.After(reference)
}
