// Package prompt collects command arguments by asking the invoking user for them
// one at a time and waiting for their replies in the channel.
package prompt

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ErrAlreadyWaiting is returned when a prompt is already waiting for the same
// user in the same channel.
var ErrAlreadyWaiting = errors.New("already waiting for a reply from this user")

// Input is a single answer to a prompt: typed text or a reaction on the prompt message.
type Input struct {
	Content  string
	Reaction *discordgo.Emoji
}

type waitKey struct {
	scope  string // channel ID for replies, message ID for reactions
	userID string
}

type waiter struct {
	ch          chan Input
	replyKey    waitKey
	reactionKey *waitKey
}

// Collector routes incoming messages and reactions to prompts waiting for them.
// Each waiting prompt receives at most one Input.
type Collector struct {
	mu        sync.Mutex
	replies   map[waitKey]*waiter
	reactions map[waitKey]*waiter
}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{
		replies:   make(map[waitKey]*waiter),
		reactions: make(map[waitKey]*waiter),
	}
}

// HandleMessage delivers m to the prompt waiting on its author in its channel.
// Reports whether the message was consumed.
func (c *Collector) HandleMessage(m *discordgo.MessageCreate) bool {
	if m == nil || m.Message == nil || m.Author == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.replies[waitKey{scope: m.ChannelID, userID: m.Author.ID}]
	if !ok {
		return false
	}
	c.removeLocked(w)
	w.ch <- Input{Content: m.Content}
	return true
}

// HandleReactionAdd delivers r to the prompt that accepts reactions on the reacted message.
// It matches discordgo's MessageReactionAdd handler signature.
func (c *Collector) HandleReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r == nil || r.MessageReaction == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.reactions[waitKey{scope: r.MessageID, userID: r.UserID}]
	if !ok {
		return
	}
	c.removeLocked(w)

	emoji := r.Emoji
	w.ch <- Input{Reaction: &emoji}
}

// Await blocks until userID replies in channelID, reacts to reactMessageID
// (when non-empty), or ctx is done.
func (c *Collector) Await(
	ctx context.Context,
	channelID, userID, reactMessageID string,
) (Input, error) {
	w := &waiter{
		ch:       make(chan Input, 1),
		replyKey: waitKey{scope: channelID, userID: userID},
	}
	if reactMessageID != "" {
		w.reactionKey = &waitKey{scope: reactMessageID, userID: userID}
	}

	if err := c.add(w); err != nil {
		return Input{}, err
	}

	select {
	case in := <-w.ch:
		return in, nil
	case <-ctx.Done():
		c.mu.Lock()
		c.removeLocked(w)
		c.mu.Unlock()

		// A delivery may have raced with cancellation.
		select {
		case in := <-w.ch:
			return in, nil
		default:
		}
		return Input{}, ctx.Err()
	}
}

// Waiting reports whether a prompt is waiting for userID in channelID.
func (c *Collector) Waiting(channelID, userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.replies[waitKey{scope: channelID, userID: userID}]
	return ok
}

func (c *Collector) add(w *waiter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.replies[w.replyKey]; ok {
		return ErrAlreadyWaiting
	}
	c.replies[w.replyKey] = w
	if w.reactionKey != nil {
		c.reactions[*w.reactionKey] = w
	}
	return nil
}

// removeLocked unregisters w if it is still registered. c.mu must be held.
func (c *Collector) removeLocked(w *waiter) {
	if c.replies[w.replyKey] == w {
		delete(c.replies, w.replyKey)
	}
	if w.reactionKey != nil && c.reactions[*w.reactionKey] == w {
		delete(c.reactions, *w.reactionKey)
	}
}
