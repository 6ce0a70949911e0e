package bot

import "github.com/bwmarrin/discordgo"

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends a response to an interaction.
	Respond(response *discordgo.InteractionResponse) error
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends a response to the interaction via Discord API.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response)
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	Err          error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

// MessageResponder answers a prefix command in the channel it was invoked in.
type MessageResponder interface {
	// Reply sends content as a reply to the invoking message.
	Reply(content string) error

	// SendEmbed sends an embed to the invoking channel.
	SendEmbed(embed *discordgo.MessageEmbed) error
}

// DiscordMessageResponder implements MessageResponder using a live Discord session.
type DiscordMessageResponder struct {
	session *discordgo.Session
	message *discordgo.Message
}

// NewDiscordMessageResponder creates a new DiscordMessageResponder.
func NewDiscordMessageResponder(s *discordgo.Session, m *discordgo.Message) *DiscordMessageResponder {
	return &DiscordMessageResponder{
		session: s,
		message: m,
	}
}

// Reply sends content as a reply to the invoking message.
func (r *DiscordMessageResponder) Reply(content string) error {
	_, err := r.session.ChannelMessageSendComplex(r.message.ChannelID, &discordgo.MessageSend{
		Content:         content,
		Reference:       r.message.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{RepliedUser: true},
	})
	return err
}

// SendEmbed sends an embed to the invoking channel.
func (r *DiscordMessageResponder) SendEmbed(embed *discordgo.MessageEmbed) error {
	_, err := r.session.ChannelMessageSendEmbed(r.message.ChannelID, embed)
	return err
}

// MockMessageResponder is a test double for MessageResponder.
type MockMessageResponder struct {
	Replies []string
	Embeds  []*discordgo.MessageEmbed
	Err     error
}

// Reply records the reply for testing.
func (m *MockMessageResponder) Reply(content string) error {
	m.Replies = append(m.Replies, content)
	return m.Err
}

// SendEmbed records the embed for testing.
func (m *MockMessageResponder) SendEmbed(embed *discordgo.MessageEmbed) error {
	m.Embeds = append(m.Embeds, embed)
	return m.Err
}
