package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

// User layers the storefront profile fields onto the auth identity record.
// First/last name, username, phone and birth date are mandatory at signup;
// avatar is optional.
type User struct {
	ID            string    `json:"id"` // UUID
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Username      string    `json:"username"`
	PhoneNumber   string    `json:"phoneNumber"`
	BirthDate     string    `json:"birthDate"`
	Avatar        string    `json:"avatar"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, user *User) error
	SetAvatar(ctx context.Context, id, avatarURL string) error
	MarkEmailVerified(ctx context.Context, id string) error

	SaveVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	ConsumeVerificationToken(ctx context.Context, token string) (string, error)
}
