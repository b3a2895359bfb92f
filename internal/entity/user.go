package entity

import "time"

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserLoginData is the identity carried by an access token.
type UserLoginData struct {
	ID        string
	Username  string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Label is the user-facing identifier used in report headers and file names.
func (u UserLoginData) Label() string {
	if u.Email != "" {
		return u.Email
	}
	if u.Username != "" {
		return u.Username
	}
	return "user"
}
