package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/rolebot/internal/prompt"
)

// MessageRouter dispatches prefix commands from MessageCreate events.
type MessageRouter struct {
	prefix    string
	collector *prompt.Collector

	mu       sync.RWMutex
	commands map[string]*MessageCommand // keyed by lowercase name and aliases
}

// NewMessageRouter creates a new MessageRouter.
// Messages consumed by collector are never dispatched as commands.
func NewMessageRouter(prefix string, collector *prompt.Collector) *MessageRouter {
	return &MessageRouter{
		prefix:    prefix,
		collector: collector,
		commands:  make(map[string]*MessageCommand),
	}
}

// Register adds a command under its name and aliases.
func (r *MessageRouter) Register(cmd MessageCommand) error {
	if cmd.Handler == nil {
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{cmd.Name}, cmd.Aliases...)
	for _, key := range keys {
		if _, exists := r.commands[strings.ToLower(key)]; exists {
			return fmt.Errorf("command name %q is already registered", key)
		}
	}

	c := cmd
	for _, key := range keys {
		r.commands[strings.ToLower(key)] = &c
	}
	return nil
}

// Lookup parses content and returns the matching command and its arguments.
func (r *MessageRouter) Lookup(content string) (*MessageCommand, string, bool) {
	if r.prefix == "" || !strings.HasPrefix(content, r.prefix) {
		return nil, "", false
	}

	body := strings.TrimSpace(strings.TrimPrefix(content, r.prefix))
	name, args, _ := strings.Cut(body, " ")
	if name == "" {
		return nil, "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[strings.ToLower(name)]
	if !ok {
		return nil, "", false
	}
	return cmd, strings.TrimSpace(args), true
}

// HandleMessage is the discordgo event handler for MessageCreate events.
func (r *MessageRouter) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if r.collector != nil && r.collector.HandleMessage(m) {
		return
	}

	cmd, args, ok := r.Lookup(m.Content)
	if !ok {
		return
	}

	mc := &MessageContext{
		Session:   s,
		Message:   m,
		Args:      args,
		Responder: NewDiscordMessageResponder(s, m.Message),
	}
	r.dispatch(context.Background(), cmd, mc, s, s.State.User.ID)
}

// dispatch enforces the command's restrictions and runs its handler.
func (r *MessageRouter) dispatch(
	ctx context.Context,
	cmd *MessageCommand,
	mc *MessageContext,
	perms PermissionResolver,
	botID string,
) {
	m := mc.Message
	logger := slog.With(
		"command", cmd.Name,
		"guild_id", m.GuildID,
		"channel_id", m.ChannelID,
		"user_id", m.Author.ID,
	)

	if cmd.GuildOnly && m.GuildID == "" {
		r.reply(logger, mc, "This command can only be used in a server.")
		return
	}

	if m.GuildID != "" {
		if ok := r.checkPermissions(logger, mc, perms, m.Author.ID, cmd.UserPermissions,
			"You need the following permissions to use this command: %s."); !ok {
			return
		}
		if ok := r.checkPermissions(logger, mc, perms, botID, cmd.ClientPermissions,
			"I'm missing the following permissions to run this command: %s."); !ok {
			return
		}
	}

	logger.Debug("running command")
	if err := cmd.Handler(ctx, mc); err != nil {
		logger.Error("failed to handle command", "error", err)
		r.reply(logger, mc, "An error occurred while processing your command.")
	}
}

func (r *MessageRouter) checkPermissions(
	logger *slog.Logger,
	mc *MessageContext,
	perms PermissionResolver,
	userID string,
	required int64,
	format string,
) bool {
	if required == 0 {
		return true
	}

	have, err := perms.UserChannelPermissions(userID, mc.Message.ChannelID)
	if err != nil {
		logger.Error("failed to resolve permissions", "target_user_id", userID, "error", err)
		r.reply(logger, mc, "An error occurred while checking permissions.")
		return false
	}

	if missing := MissingPermissions(have, required); missing != 0 {
		r.reply(logger, mc, fmt.Sprintf(format, PermissionNames(missing)))
		return false
	}
	return true
}

func (r *MessageRouter) reply(logger *slog.Logger, mc *MessageContext, content string) {
	if err := mc.Responder.Reply(content); err != nil {
		logger.Error("failed to send reply", "error", err)
	}
}
