package reaction_roles

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Storage backends for reaction roles.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the reaction roles module configuration.
type Config struct {
	Store         string        `env:"REACTION_ROLES_STORE" envDefault:"sqlite"`
	DBPath        string        `env:"REACTION_ROLES_DB_PATH" envDefault:"data/reaction_roles.db"`
	EmbedColor    Color         `env:"REACTION_ROLES_EMBED_COLOR" envDefault:"0x08c404"`
	PromptTimeout time.Duration `env:"PROMPT_TIMEOUT" envDefault:"30s"`
	PromptRetries int           `env:"PROMPT_RETRIES" envDefault:"1"`
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("REACTION_ROLES_DB_PATH is required for the %s store", StoreSQLite)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown REACTION_ROLES_STORE %q (want %s or %s)", c.Store, StoreSQLite, StoreMemory)
	}
	if c.PromptTimeout <= 0 {
		return fmt.Errorf("PROMPT_TIMEOUT must be positive, got %s", c.PromptTimeout)
	}
	if c.PromptRetries < 0 {
		return fmt.Errorf("PROMPT_RETRIES must not be negative, got %d", c.PromptRetries)
	}
	return nil
}

// Color is an RGB embed color. It accepts hex ("0x08c404", "#08c404") or decimal text.
type Color int

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		s = "0x" + rest
	}

	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", text, err)
	}
	if v < 0 || v > 0xFFFFFF {
		return fmt.Errorf("color %q out of range", text)
	}

	*c = Color(v)
	return nil
}
