package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/rolebot/internal/modules/reaction_roles/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const createReactionRoles = `
CREATE TABLE IF NOT EXISTS reaction_roles (
  guild_id       TEXT    NOT NULL,
  reference_id   TEXT    NOT NULL,
  channel_id     TEXT    NOT NULL,
  message_id     TEXT    NOT NULL,
  user_id        TEXT    NOT NULL,
  role_id        TEXT    NOT NULL,
  emoji          TEXT    NOT NULL,
  emoji_name     TEXT    NOT NULL,
  emoji_animated INTEGER NOT NULL DEFAULT 0,
  emoji_type     TEXT    NOT NULL,
  uses           INTEGER NOT NULL DEFAULT 0,
  type           INTEGER NOT NULL,
  created_at     TIMESTAMP NOT NULL,
  PRIMARY KEY (guild_id, reference_id)
);
CREATE INDEX IF NOT EXISTS idx_reaction_roles_message ON reaction_roles(guild_id, message_id);`

// SQLiteRepository stores reaction roles in an embedded SQLite database.
// It uses modernc.org/sqlite for CGO-less builds.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLiteRepository opens (creating if needed) the database at dbPath,
// configures pragmas, and ensures the schema exists.
func OpenSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Pragmas for durability and concurrency
	pragmas := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA synchronous=NORMAL;`,
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(createReactionRoles); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create reaction_roles schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Save stores the reaction role.
func (r *SQLiteRepository) Save(ctx context.Context, rr domain.ReactionRole) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reaction_roles (
           guild_id, reference_id, channel_id, message_id, user_id, role_id,
           emoji, emoji_name, emoji_animated, emoji_type, uses, type, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rr.GuildID.String(),
		rr.ReferenceID,
		rr.ChannelID.String(),
		rr.MessageID.String(),
		rr.CreatorID.String(),
		rr.RoleID.String(),
		rr.Emoji.Key(),
		rr.Emoji.Name,
		rr.Emoji.Animated,
		string(rr.Emoji.Kind()),
		rr.Uses,
		int(rr.Mode),
		rr.CreatedAt.UTC(),
	)
	if isConstraintViolation(err) {
		return domain.ErrDuplicateReference
	}
	return err
}

// ListByMessage returns the reaction roles attached to a message, oldest first.
func (r *SQLiteRepository) ListByMessage(
	ctx context.Context,
	guildID, messageID snowflake.ID,
) ([]domain.ReactionRole, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT guild_id, reference_id, channel_id, message_id, user_id, role_id,
                emoji, emoji_name, emoji_animated, emoji_type, uses, type, created_at
         FROM reaction_roles
         WHERE guild_id=? AND message_id=?
         ORDER BY created_at, rowid`,
		guildID.String(), messageID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReactionRole
	for rows.Next() {
		rr, err := scanReactionRole(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rr)
	}
	return result, rows.Err()
}

// ExistsReference reports whether the reference ID is used in the guild.
func (r *SQLiteRepository) ExistsReference(
	ctx context.Context,
	guildID snowflake.ID,
	referenceID string,
) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reaction_roles WHERE guild_id=? AND reference_id=?)`,
		guildID.String(), referenceID,
	).Scan(&exists)
	return exists, err
}

func scanReactionRole(rows *sql.Rows) (domain.ReactionRole, error) {
	var (
		rr                                            domain.ReactionRole
		guildID, channelID, messageID, userID, roleID string
		emojiKey, emojiName, emojiKind                string
		animated                                      bool
		mode                                          int
		createdAt                                     time.Time
	)
	if err := rows.Scan(
		&guildID, &rr.ReferenceID, &channelID, &messageID, &userID, &roleID,
		&emojiKey, &emojiName, &animated, &emojiKind, &rr.Uses, &mode, &createdAt,
	); err != nil {
		return domain.ReactionRole{}, err
	}

	ids := []struct {
		dst *snowflake.ID
		src string
	}{
		{&rr.GuildID, guildID},
		{&rr.ChannelID, channelID},
		{&rr.MessageID, messageID},
		{&rr.CreatorID, userID},
		{&rr.RoleID, roleID},
	}
	for _, id := range ids {
		parsed, err := snowflake.Parse(id.src)
		if err != nil {
			return domain.ReactionRole{}, fmt.Errorf("invalid stored ID %q: %w", id.src, err)
		}
		*id.dst = parsed
	}

	if domain.EmojiKind(emojiKind) == domain.EmojiKindCustom {
		emojiID, err := strconv.ParseUint(emojiKey, 10, 64)
		if err != nil {
			return domain.ReactionRole{}, fmt.Errorf("invalid stored emoji ID %q: %w", emojiKey, err)
		}
		rr.Emoji = domain.NewCustomEmoji(snowflake.ID(emojiID), emojiName, animated)
	} else {
		rr.Emoji = domain.NewUnicodeEmoji(emojiKey)
	}

	rr.Mode = domain.Mode(mode)
	rr.CreatedAt = createdAt.UTC()
	return rr, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
		sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// Ensure SQLiteRepository implements ReactionRoleRepository.
var _ domain.ReactionRoleRepository = (*SQLiteRepository)(nil)
