package model

import "time"

const (
	RoleUser        = "user"
	RoleAssistant   = "assistant"
	RoleSystem      = "system"
	RoleInterviewer = "interviewer"
)

// Message is one entry in the append-only conversation log. Messages are
// immutable once written; ordering follows the auto-incremented ID.
type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
