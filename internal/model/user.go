package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered identity. Sessions refer to it by ID.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"size:100" json:"display_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

// BeforeCreate assigns an ID to new users.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Session is the explicit session context handed to every workflow that
// needs identity. User is nil while the client is signed out.
type Session struct {
	ClientID string
	User     *User
}

// SignedIn reports whether the session is bound to a user.
func (s *Session) SignedIn() bool {
	return s != nil && s.User != nil
}

// UserID returns the owner identifier recorded on documents, or "".
func (s *Session) UserID() string {
	if !s.SignedIn() {
		return ""
	}
	return s.User.ID.String()
}

// AuthUser is the public part of a user carried in auth state events.
type AuthUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// AuthState is what subscribers to a client's authentication state receive.
type AuthState struct {
	SignedIn bool      `json:"signed_in"`
	User     *AuthUser `json:"user,omitempty"`
}

// SignedOutState is the state of a client with no user bound.
func SignedOutState() AuthState {
	return AuthState{}
}

// StateFor builds the signed-in state for u.
func StateFor(u *User) AuthState {
	if u == nil {
		return SignedOutState()
	}
	return AuthState{
		SignedIn: true,
		User: &AuthUser{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
		},
	}
}
