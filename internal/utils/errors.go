package utils

import "errors"

// ErrUserInitiatedExit is returned when the user asks to quit, so that
// callers may exit cleanly instead of reporting a failure.
var ErrUserInitiatedExit = errors.New("user initiated exit")
