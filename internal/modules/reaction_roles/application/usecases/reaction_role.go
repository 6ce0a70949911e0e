package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/ports"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

// maxReferenceAttempts bounds how many reference IDs are tried per creation.
const maxReferenceAttempts = 10

// ReactionRoleService creates reaction roles.
type ReactionRoleService struct {
	repo        domain.ReactionRoleRepository
	permissions ports.ChannelPermissions
	reactions   ports.ReactionAdder
	nextID      func() string
	now         func() time.Time
}

// NewReactionRoleService creates a new ReactionRoleService.
func NewReactionRoleService(
	repo domain.ReactionRoleRepository,
	permissions ports.ChannelPermissions,
	reactions ports.ReactionAdder,
	ids *domain.ReferenceIDGenerator,
) *ReactionRoleService {
	if ids == nil {
		ids = domain.NewReferenceIDGenerator(nil, domain.DefaultReferenceIDLength)
	}
	return &ReactionRoleService{
		repo:        repo,
		permissions: permissions,
		reactions:   reactions,
		nextID:      ids.Next,
		now:         time.Now,
	}
}

// CreateInput contains the input for the Create use case.
type CreateInput struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	RoleID    snowflake.ID
	CreatorID snowflake.ID
	Emoji     domain.Emoji
	Mode      domain.Mode
}

// CreateOutput contains the result of the Create use case.
type CreateOutput struct {
	ReactionRole domain.ReactionRole
}

// Create reacts to the target message with the emoji and stores the reaction role.
func (s *ReactionRoleService) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if !input.Mode.Valid() {
		return nil, domain.ErrInvalidMode
	}

	existing, err := s.repo.ListByMessage(ctx, input.GuildID, input.MessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reaction roles: %w", err)
	}
	for _, rr := range existing {
		if rr.Emoji.Key() == input.Emoji.Key() && rr.RoleID == input.RoleID {
			return nil, fmt.Errorf("%w (reference ID %s)", ErrAlreadyExists, rr.ReferenceID)
		}
	}

	canReact, err := s.permissions.CanAddReactions(ctx, input.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to check channel permissions: %w", err)
	}
	if !canReact {
		return nil, ErrMissingReactPermission
	}

	if err := s.reactions.AddReaction(ctx, input.ChannelID, input.MessageID, input.Emoji); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReactFailed, err)
	}

	rr := domain.ReactionRole{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		MessageID: input.MessageID,
		RoleID:    input.RoleID,
		CreatorID: input.CreatorID,
		Emoji:     input.Emoji,
		Mode:      input.Mode,
		Uses:      0,
		CreatedAt: s.now().UTC(),
	}

	for range maxReferenceAttempts {
		rr.ReferenceID = s.nextID()

		exists, err := s.repo.ExistsReference(ctx, rr.GuildID, rr.ReferenceID)
		if err != nil {
			return nil, fmt.Errorf("failed to check reference ID: %w", err)
		}
		if exists {
			continue
		}

		err = s.repo.Save(ctx, rr)
		if errors.Is(err, domain.ErrDuplicateReference) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save reaction role: %w", err)
		}

		slog.Info("created reaction role",
			"guild_id", rr.GuildID,
			"message_id", rr.MessageID,
			"role_id", rr.RoleID,
			"reference_id", rr.ReferenceID,
			"emoji_kind", rr.Emoji.Kind(),
		)
		return &CreateOutput{ReactionRole: rr}, nil
	}

	return nil, ErrReferenceExhausted
}
