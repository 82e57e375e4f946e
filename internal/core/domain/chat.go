package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one entry in the conversation log. Turns are immutable once
// appended; the session owns the ordered sequence.
type ChatTurn struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Text      string     `json:"text"`
	Evidence  []Evidence `json:"sources,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
