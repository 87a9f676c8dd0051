// Package models defines client-side data models shared by the session
// layer, the list synchronizer and the view stores.
package models

// User is the authenticated account for the current session. Username and
// Email mirror the remote identity and may be absent.
type User struct {
	ID       string
	Username *string
	Email    *string
}

// DisplayName returns the username, falling back to the email, or "" when
// the identity carries neither.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	if u.Email != nil {
		return *u.Email
	}
	return ""
}

// Credentials is the email/password pair kept in the local cache to resume
// a session without prompting.
type Credentials struct {
	Email    string
	Password string
}
