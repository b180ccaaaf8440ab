package domain

import (
	"fmt"
	"strings"
)

// Direction identifies which way a packet travels.
type Direction uint8

const (
	// ServerBound packets travel client -> server. Token "c2s".
	ServerBound Direction = iota + 1
	// ClientBound packets travel server -> client. Token "s2c".
	ClientBound
)

// Directions lists both directions in listing order.
var Directions = []Direction{ServerBound, ClientBound}

// ParseDirection maps a user token to a Direction. Matching is case-insensitive.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "c2s":
		return ServerBound, nil
	case "s2c":
		return ClientBound, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
	}
}

// Token returns the lower-case command token for d.
func (d Direction) Token() string {
	switch d {
	case ServerBound:
		return "c2s"
	case ClientBound:
		return "s2c"
	default:
		return ""
	}
}

// String returns the upper-case token, or "Unknown".
func (d Direction) String() string {
	if t := d.Token(); t != "" {
		return strings.ToUpper(t)
	}
	return "Unknown"
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == ServerBound || d == ClientBound
}
