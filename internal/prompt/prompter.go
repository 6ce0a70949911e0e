package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Defaults used by NewPrompter.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetries    = 1
	DefaultCancelWord = "cancel"
)

// Outcomes that end a prompt flow without a value.
var (
	ErrCancelled      = errors.New("prompt cancelled")
	ErrTimeout        = errors.New("prompt timed out")
	ErrTooManyRetries = errors.New("too many retries")
)

// Values holds the arguments collected so far, keyed by Arg.ID.
type Values map[string]any

// Get returns the value stored under id, or the zero value of T.
func Get[T any](v Values, id string) T {
	val, _ := v[id].(T)
	return val
}

// ParseFunc converts an Input into an argument value.
// Any error marks the input as invalid and causes the argument to be asked again.
type ParseFunc func(ctx context.Context, values Values, in Input) (any, error)

// Arg describes one argument of a prompt flow.
type Arg struct {
	ID    string
	Start string // asked when the argument was not given inline
	Retry string // asked after an invalid answer
	// Rest makes the argument consume all remaining inline words.
	Rest bool
	// Reactions also accepts a reaction on the prompt message as the answer.
	Reactions bool
	Parse     ParseFunc
}

// Sender sends a plain text message to a channel.
type Sender interface {
	ChannelMessageSend(
		channelID, content string,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithTimeout sets how long each prompt waits for an answer.
func WithTimeout(d time.Duration) Option {
	return func(p *Prompter) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithRetries sets how many invalid answers are tolerated per argument.
func WithRetries(n int) Option {
	return func(p *Prompter) {
		if n >= 0 {
			p.retries = n
		}
	}
}

// Prompter runs argument flows against a Collector.
type Prompter struct {
	collector  *Collector
	sender     Sender
	timeout    time.Duration
	retries    int
	cancelWord string
}

// NewPrompter creates a new Prompter.
func NewPrompter(collector *Collector, sender Sender, opts ...Option) *Prompter {
	p := &Prompter{
		collector:  collector,
		sender:     sender,
		timeout:    DefaultTimeout,
		retries:    DefaultRetries,
		cancelWord: DefaultCancelWord,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run collects args in order for userID in channelID.
// The inline text is split on whitespace and consumed one word per argument
// before any prompting; missing words are asked for with Arg.Start and invalid
// ones with Arg.Retry.
func (p *Prompter) Run(
	ctx context.Context,
	channelID, userID string,
	args []Arg,
	inline string,
) (Values, error) {
	words := strings.Fields(inline)
	values := make(Values, len(args))

	for i, arg := range args {
		phrase, given := inlinePhrase(words, i, arg.Rest)

		invalid := false
		if given {
			v, err := arg.Parse(ctx, values, Input{Content: phrase})
			if err == nil {
				values[arg.ID] = v
				continue
			}
			slog.Debug("rejected inline argument", "arg", arg.ID, "error", err)
			invalid = true
		}

		v, err := p.ask(ctx, channelID, userID, arg, values, invalid)
		if err != nil {
			return nil, err
		}
		values[arg.ID] = v
	}

	return values, nil
}

func inlinePhrase(words []string, i int, rest bool) (string, bool) {
	if i >= len(words) {
		return "", false
	}
	if rest {
		return strings.Join(words[i:], " "), true
	}
	return words[i], true
}

func (p *Prompter) ask(
	ctx context.Context,
	channelID, userID string,
	arg Arg,
	values Values,
	invalidInline bool,
) (any, error) {
	attempts := 0
	text := arg.Start
	if invalidInline {
		attempts = 1
		text = arg.Retry
	}

	for {
		if attempts > p.retries {
			return nil, ErrTooManyRetries
		}

		msg, err := p.sender.ChannelMessageSend(channelID, p.decorate(text))
		if err != nil {
			return nil, fmt.Errorf("failed to send prompt: %w", err)
		}

		reactMessageID := ""
		if arg.Reactions && msg != nil {
			reactMessageID = msg.ID
		}

		in, err := p.await(ctx, channelID, userID, reactMessageID)
		if err != nil {
			return nil, err
		}

		if in.Reaction == nil && strings.EqualFold(strings.TrimSpace(in.Content), p.cancelWord) {
			return nil, ErrCancelled
		}

		v, err := arg.Parse(ctx, values, in)
		if err == nil {
			return v, nil
		}
		slog.Debug("rejected prompt answer", "arg", arg.ID, "error", err)

		attempts++
		text = arg.Retry
	}
}

func (p *Prompter) await(ctx context.Context, channelID, userID, reactMessageID string) (Input, error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	in, err := p.collector.Await(waitCtx, channelID, userID, reactMessageID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return Input{}, ErrTimeout
		}
		return Input{}, err
	}
	return in, nil
}

func (p *Prompter) decorate(text string) string {
	return fmt.Sprintf(
		"%s\n\nType `%s` to cancel the command. The command will automatically be cancelled in %s.",
		text, p.cancelWord, formatSeconds(p.timeout),
	)
}

func formatSeconds(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", secs)
}

// OutcomeMessage returns the text shown to the user when a flow ends with err.
// It reports false for errors that are not prompt outcomes.
func OutcomeMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrCancelled):
		return "The command has been cancelled.", true
	case errors.Is(err, ErrTimeout):
		return "Time ran out, command has been cancelled.", true
	case errors.Is(err, ErrTooManyRetries):
		return "Too many retries, command has been cancelled.", true
	case errors.Is(err, ErrAlreadyWaiting):
		return "Please answer the question you were already asked first.", true
	default:
		return "", false
	}
}
