package gateway

import (
	"context"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"github.com/rahul/kaam/internal/agent"
	"github.com/rs/zerolog/log"
)

// discordMaxMessage is the Discord limit on message length.
const discordMaxMessage = 2000

type DiscordGateway struct {
	Session *discordgo.Session
	Worker  Worker

	ctx  context.Context
	send func(channelID, text string) error
}

func NewDiscordGateway(token string, worker Worker) (*DiscordGateway, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}
	s.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	d := &DiscordGateway{Session: s, Worker: worker, ctx: context.Background()}
	d.send = func(channelID, text string) error {
		_, err := d.Session.ChannelMessageSend(channelID, text)
		return err
	}
	return d, nil
}

func (d *DiscordGateway) Start(ctx context.Context) error {
	d.ctx = ctx
	d.Session.AddHandler(d.onMessage)

	if err := d.Session.Open(); err != nil {
		return errors.Wrap(err, "failed to open discord session")
	}
	log.Info().Msg("discord connected")

	<-ctx.Done()
	return d.Stop()
}

func (d *DiscordGateway) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Content == "" {
		return
	}
	log.Info().Str("channel_id", m.ChannelID).Str("user", m.Author.Username).Msg("discord message")

	reply := troubleReply
	res, err := d.Worker.Work(agent.WithSession(d.ctx, "discord:"+m.ChannelID), m.Content)
	if err != nil {
		log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("agent failed")
	} else if res.Output != "" {
		reply = res.Output
	}

	if err := d.Send(m.ChannelID, reply); err != nil {
		log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("failed to send discord reply")
	}
}

func (d *DiscordGateway) Send(chatID string, text string) error {
	return d.send(chatID, truncateRunes(text, discordMaxMessage))
}

// truncateRunes cuts text to at most limit characters, marking the cut with "...".
func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	r := []rune(text)
	return string(r[:limit-3]) + "..."
}

func (d *DiscordGateway) Stop() error {
	return d.Session.Close()
}
