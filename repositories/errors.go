package repositories

import "errors"

// ErrNotFound is returned by every repository lookup that matches no row.
var ErrNotFound = errors.New("record not found")
