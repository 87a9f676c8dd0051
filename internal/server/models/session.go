package models

import "time"

// Session is a signed-in client. Access tokens carry its id; deleting the
// row revokes them.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
