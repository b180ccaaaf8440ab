package domain

import (
	"errors"
	"fmt"
)

// Domain errors. Check them with errors.Is.
var (
	// ErrFetch is returned when the source document cannot be retrieved.
	ErrFetch = errors.New("i2p: fetch source document")

	// ErrParse is returned when the source document is structurally invalid.
	ErrParse = errors.New("i2p: parse source document")

	// ErrInvalidIDFormat is returned when a packet id is not all decimal digits.
	ErrInvalidIDFormat = errors.New("i2p: invalid packet id")

	// ErrUnknownDirection is returned for a direction token other than c2s/s2c.
	ErrUnknownDirection = errors.New("i2p: unknown direction")

	// ErrPacketNotFound is returned when a well-formed id has no entry.
	ErrPacketNotFound = errors.New("i2p: no such packet")

	// ErrAlreadyLoaded is returned by a second registry load.
	ErrAlreadyLoaded = errors.New("i2p: registry already loaded")

	// ErrAlreadyRunning is returned when Start is called on a started app.
	ErrAlreadyRunning = errors.New("i2p: already running")

	// ErrNotRunning is returned when Stop is called on a stopped app.
	ErrNotRunning = errors.New("i2p: not running")

	// ErrNotReady is returned to readers before the registry has loaded.
	ErrNotReady = errors.New("i2p: registry not ready")
)

// FetchError describes a failed retrieval of the source document.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError describes a structurally invalid source document.
// Path locates the offending field, e.g. "clientBound[3].id".
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse source document: %v", e.Err)
	}
	return fmt.Sprintf("parse source document: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
