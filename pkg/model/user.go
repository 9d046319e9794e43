// Package model defines the core domain types for the smashmate client.
package model

import (
	"errors"
	"fmt"
)

const MaxUsernameLength = 32

var ErrUsernameEmpty = errors.New("username must not be empty")
var ErrUsernameTooLong = fmt.Errorf("username must not exceed %d characters", MaxUsernameLength)
var ErrUsernameInvalidChars = errors.New("username must contain only alphanumeric characters, underscores, or hyphens")

// User is the authenticated account record as returned by the backend.
// Optional fields are pointers so "absent" and "empty" stay distinguishable.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Main         *string `json:"main,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.ProfileImage = cloneString(u.ProfileImage)
	c.Main = cloneString(u.Main)
	c.Description = cloneString(u.Description)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// UserRef is a by-value reference to a user embedded in lobbies, messages,
// friend lists, and search results. The client keeps no cross-entity
// identity map; consumers resolve refs by scanning the containing entity.
type UserRef struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// ProfileUpdate is a partial profile mutation. Nil fields are omitted from
// the request and left unchanged by the server; any subset is acceptable,
// including a bare favorite-character (Main) change.
type ProfileUpdate struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Main         *string `json:"main,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.ProfileImage == nil &&
		p.Main == nil && p.Description == nil
}

// ValidateUsername checks that a username is 1-32 ASCII alphanumeric,
// underscore, or hyphen characters.
func ValidateUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' && r != '-' {
			return ErrUsernameInvalidChars
		}
	}
	return nil
}
