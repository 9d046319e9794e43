package session

import "errors"

// ErrNotAuthenticated is returned by operations that require a logged-in
// user when the manager holds no session.
var ErrNotAuthenticated = errors.New("session: not authenticated")
