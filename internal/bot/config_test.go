package bot

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_WithValidToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token-123")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DiscordToken != "test-token-123" {
		t.Errorf("expected token %q, got %q", "test-token-123", cfg.DiscordToken)
	}
}

func TestLoadConfig_WithEmptyToken(t *testing.T) {
	// Clear the environment variable
	t.Setenv("DISCORD_TOKEN", "")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for missing token, got nil")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("COMMAND_PREFIX")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CommandPrefix != "!" {
		t.Errorf("expected prefix %q, got %q", "!", cfg.CommandPrefix)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected log level %v, got %v", slog.LevelInfo, cfg.LogLevel)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FILE", "/tmp/rolebot.log")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CommandPrefix != "?" {
		t.Errorf("expected prefix %q, got %q", "?", cfg.CommandPrefix)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected log level %v, got %v", slog.LevelDebug, cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/rolebot.log" {
		t.Errorf("expected log file %q, got %q", "/tmp/rolebot.log", cfg.LogFile)
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "ROLEBOT_TEST_SET=from-file\nROLEBOT_TEST_UNSET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	t.Setenv("ROLEBOT_TEST_SET", "from-env")
	t.Setenv("ROLEBOT_TEST_UNSET", "")
	os.Unsetenv("ROLEBOT_TEST_UNSET")
	t.Cleanup(func() { os.Unsetenv("ROLEBOT_TEST_UNSET") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("ROLEBOT_TEST_SET"); got != "from-env" {
		t.Errorf("expected existing variable to be kept, got %q", got)
	}
	if got := os.Getenv("ROLEBOT_TEST_UNSET"); got != "from-file" {
		t.Errorf("expected variable loaded from file, got %q", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.env")

	if err := LoadDotEnv(path); err != nil {
		t.Errorf("expected missing file to be ignored, got %v", err)
	}
}
