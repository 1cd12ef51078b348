package domain

import "time"

// Notification is a user-addressed message emitted by the workflow engine.
// Notifications are append-only and never mutated after creation.
type Notification struct {
	ID        string    `json:"id"`
	ToUserID  string    `json:"to_user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
