package gateway

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID string
	text   string
}

func newTestDiscord(w Worker) (*DiscordGateway, *[]sentMessage) {
	var sent []sentMessage
	d := &DiscordGateway{Worker: w, ctx: context.Background()}
	d.send = func(channelID, text string) error {
		sent = append(sent, sentMessage{channelID, text})
		return nil
	}
	return d, &sent
}

func discordMessage(channelID, content string, bot bool) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{Username: "gopher", Bot: bot},
	}}
}

func TestDiscordGateway_OnMessage(t *testing.T) {
	w := &fakeWorker{}
	d, sent := newTestDiscord(w)

	d.onMessage(nil, discordMessage("c1", "hello", false))

	assert.Equal(t, []string{"hello"}, w.prompts)
	assert.Equal(t, []string{"discord:c1"}, w.sessions)
	assert.Equal(t, []sentMessage{{"c1", "answer to hello"}}, *sent)
}

func TestDiscordGateway_IgnoresBotsAndEmpty(t *testing.T) {
	w := &fakeWorker{}
	d, sent := newTestDiscord(w)

	d.onMessage(nil, discordMessage("c1", "from a bot", true))
	d.onMessage(nil, discordMessage("c1", "", false))
	d.onMessage(nil, &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "c1", Content: "no author"}})

	assert.Empty(t, w.prompts)
	assert.Empty(t, *sent)
}

func TestDiscordGateway_WorkerErrorRepliesTrouble(t *testing.T) {
	w := &fakeWorker{failOn: "bad"}
	d, sent := newTestDiscord(w)

	d.onMessage(nil, discordMessage("c2", "bad", false))
	require.Len(t, *sent, 1)
	assert.Equal(t, sentMessage{"c2", troubleReply}, (*sent)[0])
}

func TestDiscordGateway_SendTruncatesOnRunes(t *testing.T) {
	d, sent := newTestDiscord(&fakeWorker{})

	long := strings.Repeat("é", discordMaxMessage+10)
	require.NoError(t, d.Send("c3", long))
	require.Len(t, *sent, 1)

	got := (*sent)[0].text
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, discordMaxMessage, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	short := strings.Repeat("é", discordMaxMessage)
	require.NoError(t, d.Send("c3", short))
	assert.Equal(t, short, (*sent)[1].text)
}
