package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/rolebot/internal/prompt"
)

// InteractionHandler handles a Discord interaction and returns a response.
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// MessageHandler handles a prefix command invocation.
type MessageHandler func(ctx context.Context, mc *MessageContext) error

// MessageContext is what a prefix command handler receives.
type MessageContext struct {
	Session   *discordgo.Session
	Message   *discordgo.MessageCreate
	Args      string // text after the command name
	Responder MessageResponder
}

// MessageCommand describes a prefix command such as "!add".
type MessageCommand struct {
	Name        string
	Aliases     []string
	Category    string
	Description string
	Usage       string
	Examples    []string

	// GuildOnly rejects invocations from direct messages.
	GuildOnly bool
	// UserPermissions must all be held by the invoker in the invoking channel.
	UserPermissions int64
	// ClientPermissions must all be held by the bot in the invoking channel.
	ClientPermissions int64

	Handler MessageHandler
}

// EventHandler is a generic handler for any Discord event.
// It should be a function matching one of discordgo's handler signatures,
// e.g., func(s *discordgo.Session, m *discordgo.MessageCreate)
type EventHandler any

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Config    *Config
	Session   *discordgo.Session
	Collector *prompt.Collector
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the slash commands that this module provides.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers returns a map of command names to their handlers.
	CommandHandlers() map[string]InteractionHandler

	// MessageCommands returns the prefix commands that this module provides.
	MessageCommands() []MessageCommand

	// EventHandlers returns event handlers for this module.
	// Each handler should match a discordgo handler signature.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Called before Init() and before Discord connection is established.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
