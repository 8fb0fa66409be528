package types

import "time"

// ChatSession is one independent conversation thread with its own message
// history. List order across sessions is meaningful: newest last.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Clone returns a deep copy so callers can hand sessions to the UI without
// sharing the message slice.
func (s *ChatSession) Clone() *ChatSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Messages = append([]Message(nil), s.Messages...)
	return &out
}
