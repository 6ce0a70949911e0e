package domain

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// EmojiKind distinguishes unicode emoji from custom guild emoji.
type EmojiKind string

const (
	EmojiKindUnicode EmojiKind = "unicode"
	EmojiKindCustom  EmojiKind = "custom"
)

// Emoji is the emoji users react with to get a role.
type Emoji struct {
	ID       snowflake.ID // zero for unicode emoji
	Name     string       // the character itself for unicode emoji
	Animated bool
}

// NewUnicodeEmoji creates an Emoji from a unicode character sequence.
func NewUnicodeEmoji(char string) Emoji {
	return Emoji{Name: char}
}

// NewCustomEmoji creates an Emoji for a custom guild emoji.
func NewCustomEmoji(id snowflake.ID, name string, animated bool) Emoji {
	return Emoji{ID: id, Name: name, Animated: animated}
}

// Kind classifies the emoji.
func (e Emoji) Kind() EmojiKind {
	if e.ID != 0 {
		return EmojiKindCustom
	}
	return EmojiKindUnicode
}

// Key is the stored identifier: the ID for custom emoji, the character otherwise.
func (e Emoji) Key() string {
	if e.Kind() == EmojiKindCustom {
		return e.ID.String()
	}
	return e.Name
}

// APIName is the form the reaction endpoints expect.
func (e Emoji) APIName() string {
	if e.Kind() == EmojiKindCustom {
		return fmt.Sprintf("%s:%s", e.Name, e.ID)
	}
	return e.Name
}

// Mention renders the emoji inside a message.
func (e Emoji) Mention() string {
	if e.Kind() == EmojiKindUnicode {
		return e.Name
	}
	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
	}
	return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
}

// Display renders the emoji for confirmation messages; custom emoji show their ID.
func (e Emoji) Display() string {
	if e.Kind() == EmojiKindUnicode {
		return e.Name
	}
	return fmt.Sprintf("%s `[%s]`", e.Mention(), e.ID)
}
