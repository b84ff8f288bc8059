package auth

import (
	"time"
)

// User is an account record. An account always keeps at least one way to
// sign in: a password hash, a linked Google subject id, or both.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	GoogleID     string `json:"googleId,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`

	ResetToken        string     `json:"resetToken,omitempty"`
	ResetTokenExpires *time.Time `json:"resetTokenExpires,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can sign in with a password.
// Accounts created through Google only cannot until a reset sets one.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Profile is the account as exposed over HTTP: no credentials, no reset
// token.
type Profile struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserRepository lookups return the zero User when nothing matches; callers
// check ID == 0. GetByResetToken does not check expiry, that is the
// service's job.
type UserRepository interface {
	Get(id int) (User, error)
	GetByEmail(email string) (User, error)
	GetByGoogleID(googleID string) (User, error)
	GetByResetToken(token string) (User, error)

	Upsert(user *User) error
	Delete(id int) error
}
