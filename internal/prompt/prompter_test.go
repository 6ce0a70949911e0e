package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	testChannel = "channel-1"
	testUser    = "user-1"
)

// scriptedSender answers each prompt it sends with the next scripted Input.
type scriptedSender struct {
	t         *testing.T
	collector *Collector

	mu      sync.Mutex
	answers []Input
	sent    []string
	sendErr error
}

func (s *scriptedSender) ChannelMessageSend(
	channelID, content string,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendErr != nil {
		return nil, s.sendErr
	}

	s.sent = append(s.sent, content)
	id := fmt.Sprintf("prompt-%d", len(s.sent))

	if len(s.answers) > 0 {
		in := s.answers[0]
		s.answers = s.answers[1:]
		go s.deliver(channelID, id, in)
	}

	return &discordgo.Message{ID: id, ChannelID: channelID}, nil
}

func (s *scriptedSender) deliver(channelID, messageID string, in Input) {
	deadline := time.Now().Add(time.Second)
	for !s.collector.Waiting(channelID, testUser) {
		if time.Now().After(deadline) {
			s.t.Errorf("prompt never waited for answer %+v", in)
			return
		}
		time.Sleep(time.Millisecond)
	}

	if in.Reaction != nil {
		s.collector.HandleReactionAdd(nil, newReaction(messageID, testUser, *in.Reaction))
		return
	}
	s.collector.HandleMessage(newMessage(channelID, testUser, in.Content))
}

func (s *scriptedSender) prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func newScripted(t *testing.T, answers ...Input) (*Collector, *scriptedSender) {
	c := NewCollector()
	return c, &scriptedSender{t: t, collector: c, answers: answers}
}

func text(s string) Input { return Input{Content: s} }

func parseInt(_ context.Context, _ Values, in Input) (any, error) {
	return strconv.Atoi(strings.TrimSpace(in.Content))
}

func parseWord(_ context.Context, _ Values, in Input) (any, error) {
	if in.Content == "" {
		return nil, errors.New("empty")
	}
	return in.Content, nil
}

func numberArg(id string) Arg {
	return Arg{ID: id, Start: "start " + id, Retry: "retry " + id, Parse: parseInt}
}

func TestPrompter_Run_AllInline(t *testing.T) {
	c, sender := newScripted(t)
	p := NewPrompter(c, sender)

	values, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a"), numberArg("b")}, "1 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Get[int](values, "a") != 1 || Get[int](values, "b") != 2 {
		t.Errorf("unexpected values: %v", values)
	}
	if got := sender.prompts(); len(got) != 0 {
		t.Errorf("expected no prompts, got %v", got)
	}
}

func TestPrompter_Run_PromptsForMissing(t *testing.T) {
	c, sender := newScripted(t, text("7"))
	p := NewPrompter(c, sender)

	values, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a"), numberArg("b")}, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Get[int](values, "b") != 7 {
		t.Errorf("expected b=7, got %v", values["b"])
	}

	prompts := sender.prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(prompts))
	}
	if !strings.HasPrefix(prompts[0], "start b") {
		t.Errorf("expected start prompt, got %q", prompts[0])
	}
	if !strings.Contains(prompts[0], "Type `cancel` to cancel the command.") {
		t.Errorf("expected cancel hint, got %q", prompts[0])
	}
	if !strings.Contains(prompts[0], "30 seconds") {
		t.Errorf("expected timeout hint, got %q", prompts[0])
	}
}

func TestPrompter_Run_InvalidInlineAsksRetry(t *testing.T) {
	c, sender := newScripted(t, text("3"))
	p := NewPrompter(c, sender)

	values, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a")}, "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Get[int](values, "a") != 3 {
		t.Errorf("expected a=3, got %v", values["a"])
	}
	prompts := sender.prompts()
	if len(prompts) != 1 || !strings.HasPrefix(prompts[0], "retry a") {
		t.Errorf("expected a single retry prompt, got %v", prompts)
	}
}

func TestPrompter_Run_RetryAfterInvalidAnswer(t *testing.T) {
	c, sender := newScripted(t, text("x"), text("5"))
	p := NewPrompter(c, sender)

	values, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a")}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Get[int](values, "a") != 5 {
		t.Errorf("expected a=5, got %v", values["a"])
	}
	prompts := sender.prompts()
	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if !strings.HasPrefix(prompts[1], "retry a") {
		t.Errorf("expected second prompt to be the retry prompt, got %q", prompts[1])
	}
}

func TestPrompter_Run_TooManyRetries(t *testing.T) {
	tests := []struct {
		name        string
		inline      string
		answers     []Input
		wantPrompts int
	}{
		{
			name:        "missing inline gets start and one retry",
			inline:      "",
			answers:     []Input{text("x"), text("y")},
			wantPrompts: 2,
		},
		{
			name:        "invalid inline counts as the first attempt",
			inline:      "x",
			answers:     []Input{text("y")},
			wantPrompts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sender := newScripted(t, tt.answers...)
			p := NewPrompter(c, sender)

			_, err := p.Run(context.Background(), testChannel, testUser,
				[]Arg{numberArg("a")}, tt.inline)
			if !errors.Is(err, ErrTooManyRetries) {
				t.Fatalf("expected ErrTooManyRetries, got %v", err)
			}
			if got := len(sender.prompts()); got != tt.wantPrompts {
				t.Errorf("expected %d prompts, got %d", tt.wantPrompts, got)
			}
		})
	}
}

func TestPrompter_Run_Cancel(t *testing.T) {
	c, sender := newScripted(t, text("  CANCEL "))
	p := NewPrompter(c, sender)

	_, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a")}, "")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

func TestPrompter_Run_Timeout(t *testing.T) {
	c, sender := newScripted(t)
	p := NewPrompter(c, sender, WithTimeout(20*time.Millisecond))

	_, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a")}, "")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if c.Waiting(testChannel, testUser) {
		t.Error("expected no waiter after timeout")
	}
}

func TestPrompter_Run_ParentContextCancelled(t *testing.T) {
	c, sender := newScripted(t)
	p := NewPrompter(c, sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, testChannel, testUser, []Arg{numberArg("a")}, "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPrompter_Run_SendError(t *testing.T) {
	c, sender := newScripted(t)
	sender.sendErr = errors.New("missing access")
	p := NewPrompter(c, sender)

	_, err := p.Run(context.Background(), testChannel, testUser,
		[]Arg{numberArg("a")}, "")
	if err == nil || !strings.Contains(err.Error(), "missing access") {
		t.Errorf("expected send error, got %v", err)
	}
}

func TestPrompter_Run_RestConsumesRemainder(t *testing.T) {
	c, sender := newScripted(t)
	p := NewPrompter(c, sender)

	args := []Arg{
		numberArg("a"),
		{ID: "name", Start: "name?", Retry: "name!", Rest: true, Parse: parseWord},
	}

	values, err := p.Run(context.Background(), testChannel, testUser, args, "1 Blob  Enjoyers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Get[string](values, "name"); got != "Blob Enjoyers" {
		t.Errorf("expected %q, got %q", "Blob Enjoyers", got)
	}
}

func TestPrompter_Run_AcceptsReaction(t *testing.T) {
	c, sender := newScripted(t, Input{Reaction: &discordgo.Emoji{Name: "🍕"}})
	p := NewPrompter(c, sender)

	args := []Arg{{
		ID:        "emoji",
		Start:     "react please",
		Retry:     "react again",
		Reactions: true,
		Parse: func(_ context.Context, _ Values, in Input) (any, error) {
			if in.Reaction != nil {
				return in.Reaction.Name, nil
			}
			return nil, errors.New("no reaction")
		},
	}}

	values, err := p.Run(context.Background(), testChannel, testUser, args, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Get[string](values, "emoji"); got != "🍕" {
		t.Errorf("expected %q, got %q", "🍕", got)
	}
}

func TestPrompter_Run_LaterArgsSeeEarlierValues(t *testing.T) {
	c, sender := newScripted(t)
	p := NewPrompter(c, sender)

	var seen int
	args := []Arg{
		numberArg("a"),
		{
			ID: "b",
			Parse: func(_ context.Context, values Values, in Input) (any, error) {
				seen = Get[int](values, "a")
				return in.Content, nil
			},
		},
	}

	if _, err := p.Run(context.Background(), testChannel, testUser, args, "9 x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != 9 {
		t.Errorf("expected later parser to see a=9, got %d", seen)
	}
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   string
		wantOK bool
	}{
		{"cancelled", ErrCancelled, "The command has been cancelled.", true},
		{"timeout", fmt.Errorf("wrapped: %w", ErrTimeout), "Time ran out, command has been cancelled.", true},
		{"retries", ErrTooManyRetries, "Too many retries, command has been cancelled.", true},
		{"other", errors.New("boom"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OutcomeMessage(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("OutcomeMessage() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
