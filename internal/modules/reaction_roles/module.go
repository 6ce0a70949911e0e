package reaction_roles

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/sglre6355/rolebot/internal/bot"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/application/usecases"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/infrastructure"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/presentation/discord"
	"github.com/sglre6355/rolebot/internal/prompt"
)

func init() {
	bot.Register(&ReactionRolesModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*ReactionRolesModule)(nil)

// ReactionRolesModule provides the commands that create reaction roles.
type ReactionRolesModule struct {
	config          *Config
	sqlite          *infrastructure.SQLiteRepository
	commandHandlers *discord.CommandHandlers
	messageHandler  *discord.MessageCommandHandler
}

// Name returns the module name.
func (m *ReactionRolesModule) Name() string {
	return "reaction_roles"
}

// Commands returns the slash commands for this module.
func (m *ReactionRolesModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *ReactionRolesModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"reactionrole": m.commandHandlers.HandleReactionRole,
	}
}

// MessageCommands returns the prefix commands for this module.
func (m *ReactionRolesModule) MessageCommands() []bot.MessageCommand {
	return []bot.MessageCommand{m.messageHandler.Command()}
}

// EventHandlers returns the event handlers for this module.
func (m *ReactionRolesModule) EventHandlers() []bot.EventHandler {
	return nil
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *ReactionRolesModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *ReactionRolesModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil {
		return errors.New("reaction_roles module requires a Discord session")
	}
	if deps.Collector == nil {
		return errors.New("reaction_roles module requires a prompt collector")
	}
	if m.config == nil {
		if err := m.LoadConfig(); err != nil {
			return err
		}
	}

	repo, err := m.openRepository()
	if err != nil {
		return err
	}

	// Create infrastructure
	gateway := infrastructure.NewDiscordGateway(deps.Session)
	prompter := prompt.NewPrompter(
		deps.Collector,
		deps.Session,
		prompt.WithTimeout(m.config.PromptTimeout),
		prompt.WithRetries(m.config.PromptRetries),
	)

	// Create services
	service := usecases.NewReactionRoleService(repo, gateway, gateway, nil)

	// Create presentation handlers
	color := int(m.config.EmbedColor)
	m.commandHandlers = discord.NewCommandHandlers(service, gateway, color)
	m.messageHandler = discord.NewMessageCommandHandler(service, gateway, prompter, color)

	slog.Info("reaction_roles module initialized", "store", m.config.Store)

	return nil
}

func (m *ReactionRolesModule) openRepository() (domain.ReactionRoleRepository, error) {
	if m.config.Store == StoreMemory {
		slog.Warn("reaction roles are kept in memory and will be lost on restart")
		return infrastructure.NewMemoryRepository(), nil
	}

	repo, err := infrastructure.OpenSQLiteRepository(m.config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open reaction roles database: %w", err)
	}
	m.sqlite = repo
	slog.Debug("opened reaction roles database", "path", m.config.DBPath)
	return repo, nil
}

// Shutdown cleans up module resources.
func (m *ReactionRolesModule) Shutdown() error {
	if m.sqlite == nil {
		return nil
	}
	err := m.sqlite.Close()
	m.sqlite = nil
	return err
}
