package usecases

import "errors"

// Errors for the reaction roles module.
var (
	// ErrMissingReactPermission is returned when the bot cannot add reactions in the target channel.
	ErrMissingReactPermission = errors.New("missing permission to add reactions")

	// ErrReactFailed is returned when reacting to the target message fails.
	ErrReactFailed = errors.New("failed to react to message")

	// ErrAlreadyExists is returned when the message already grants the role for the emoji.
	ErrAlreadyExists = errors.New("reaction role already exists")

	// ErrReferenceExhausted is returned when no unused reference ID could be generated.
	ErrReferenceExhausted = errors.New("failed to generate an unused reference ID")
)
