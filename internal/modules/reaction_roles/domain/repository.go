package domain

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

// ErrDuplicateReference is returned when saving a reference ID already used in the guild.
var ErrDuplicateReference = errors.New("reference ID already in use")

// ReactionRoleRepository stores reaction roles.
type ReactionRoleRepository interface {
	// Save stores a new reaction role. Returns ErrDuplicateReference if the
	// reference ID is already used in the guild.
	Save(ctx context.Context, rr ReactionRole) error

	// ListByMessage returns the reaction roles attached to a message, oldest first.
	ListByMessage(ctx context.Context, guildID, messageID snowflake.ID) ([]ReactionRole, error)

	// ExistsReference reports whether the reference ID is used in the guild.
	ExistsReference(ctx context.Context, guildID snowflake.ID, referenceID string) (bool, error)
}
