package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxLobbyNameLength = 64
	MaxLobbyDescLength = 256

	// Membership window enforced on lobby creation forms.
	MinLobbyMembers     = 2
	MaxLobbyMembers     = 8
	DefaultLobbyMembers = 8
)

// Lobby status values as reported by the backend.
const (
	LobbyStatusOpen = "open"
	LobbyStatusFull = "full"
)

var ErrLobbyNameEmpty = errors.New("lobby name must not be empty")
var ErrLobbyNameTooLong = errors.New("lobby name too long")
var ErrLobbyDescTooLong = errors.New("lobby description too long")
var ErrLobbyMaxMembers = errors.New("lobby max members out of range")

// Lobby is a bounded-membership chat room snapshot. Members are held by
// value; there is no separate membership index.
type Lobby struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       UserRef   `json:"owner"`
	Members     []UserRef `json:"members"`
	MaxMembers  int       `json:"maxMembers"`
	Status      string    `json:"status"`
}

// Member returns the member with the given user ID, or nil. Lookup is a
// linear scan of the snapshot, matching how message avatars are resolved.
func (l *Lobby) Member(userID string) *UserRef {
	for i := range l.Members {
		if l.Members[i].ID == userID {
			return &l.Members[i]
		}
	}
	return nil
}

// IsFull reports whether the lobby has reached its membership cap.
func (l *Lobby) IsFull() bool {
	return l.MaxMembers > 0 && len(l.Members) >= l.MaxMembers
}

// Clone returns a deep copy of the lobby snapshot.
func (l *Lobby) Clone() *Lobby {
	if l == nil {
		return nil
	}
	c := *l
	c.Members = make([]UserRef, len(l.Members))
	copy(c.Members, l.Members)
	return &c
}

// LobbyForm carries the fields of a lobby creation request.
type LobbyForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxMembers  int    `json:"maxMembers"`
}

// Validate checks the creation form before it is sent to the backend.
func (f *LobbyForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrLobbyNameEmpty
	}
	if utf8.RuneCountInString(f.Name) > MaxLobbyNameLength {
		return ErrLobbyNameTooLong
	}
	if utf8.RuneCountInString(f.Description) > MaxLobbyDescLength {
		return ErrLobbyDescTooLong
	}
	if f.MaxMembers < MinLobbyMembers || f.MaxMembers > MaxLobbyMembers {
		return ErrLobbyMaxMembers
	}
	return nil
}
