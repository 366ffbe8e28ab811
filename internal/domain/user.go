package domain

import "time"

// User represents a registered account. Email is the login identifier.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName returns the user's full name, composed from first and last names.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Follow is a subscription of UserID to the recipes of AuthorID.
// A user can never follow themselves.
type Follow struct {
	UserID    string    `json:"user_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsSelf reports whether the follow points back at its own follower.
func (f Follow) IsSelf() bool {
	return f.UserID == f.AuthorID
}
