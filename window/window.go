// Package window brings the game window to the foreground before input is sent.
package window

import "github.com/cockroachdb/errors"

var (
	ErrNotFound    = errors.New("window not found")
	ErrUnsupported = errors.New("window focus is only supported on windows")
)
