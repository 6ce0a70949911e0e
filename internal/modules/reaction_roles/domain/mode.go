package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidMode is returned when a mode number is not one of the known modes.
var ErrInvalidMode = errors.New("invalid reaction role mode")

// Mode decides what reacting and un-reacting do for a reaction role.
type Mode int

const (
	ModeToggle     Mode = iota + 1 // Reacting adds the role, removing the reaction removes it
	ModeAddOnly                    // Reacting adds the role
	ModeRemoveOnly                 // Reacting removes the role
)

// ParseMode converts user input such as "1" into a Mode.
func ParseMode(s string) (Mode, error) {
	n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(s), "[]`"))
	if err != nil {
		return 0, ErrInvalidMode
	}

	m := Mode(n)
	if !m.Valid() {
		return 0, ErrInvalidMode
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeToggle && m <= ModeRemoveOnly
}

// String returns a short identifier for the mode.
func (m Mode) String() string {
	switch m {
	case ModeToggle:
		return "toggle"
	case ModeAddOnly:
		return "add"
	case ModeRemoveOnly:
		return "remove"
	default:
		return "unknown"
	}
}

// Description returns a human-readable explanation of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeToggle:
		return "React to add and remove"
	case ModeAddOnly:
		return "React to add only"
	case ModeRemoveOnly:
		return "React to remove only"
	default:
		return "Unknown"
	}
}
