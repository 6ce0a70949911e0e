package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ReactionRole maps a reaction on a message to a role.
type ReactionRole struct {
	ReferenceID string
	GuildID     snowflake.ID
	ChannelID   snowflake.ID
	MessageID   snowflake.ID
	RoleID      snowflake.ID
	CreatorID   snowflake.ID
	Emoji       Emoji
	Mode        Mode
	Uses        int
	CreatedAt   time.Time
}
