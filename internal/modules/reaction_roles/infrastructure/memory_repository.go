package infrastructure

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
)

type referenceKey struct {
	guildID     snowflake.ID
	referenceID string
}

// MemoryRepository is an in-memory implementation of ReactionRoleRepository.
type MemoryRepository struct {
	mu    sync.RWMutex
	roles map[referenceKey]domain.ReactionRole
	order []referenceKey // insertion order
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		roles: make(map[referenceKey]domain.ReactionRole),
	}
}

// Save stores the reaction role.
func (r *MemoryRepository) Save(_ context.Context, rr domain.ReactionRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := referenceKey{guildID: rr.GuildID, referenceID: rr.ReferenceID}
	if _, exists := r.roles[key]; exists {
		return domain.ErrDuplicateReference
	}

	r.roles[key] = rr
	r.order = append(r.order, key)
	return nil
}

// ListByMessage returns the reaction roles attached to a message, oldest first.
func (r *MemoryRepository) ListByMessage(
	_ context.Context,
	guildID, messageID snowflake.ID,
) ([]domain.ReactionRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.ReactionRole
	for _, key := range r.order {
		rr := r.roles[key]
		if rr.GuildID == guildID && rr.MessageID == messageID {
			result = append(result, rr)
		}
	}
	return result, nil
}

// ExistsReference reports whether the reference ID is used in the guild.
func (r *MemoryRepository) ExistsReference(
	_ context.Context,
	guildID snowflake.ID,
	referenceID string,
) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.roles[referenceKey{guildID: guildID, referenceID: referenceID}]
	return ok, nil
}

// Count returns the number of reaction roles (for testing/monitoring).
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.roles)
}

// Ensure MemoryRepository implements ReactionRoleRepository.
var _ domain.ReactionRoleRepository = (*MemoryRepository)(nil)
