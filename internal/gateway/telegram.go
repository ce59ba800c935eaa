package gateway

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rahul/kaam/internal/agent"
	"github.com/rs/zerolog/log"
)

type TelegramGateway struct {
	Bot    *tgbotapi.BotAPI
	Worker Worker

	send func(chatID int64, text string) error
}

func NewTelegramGateway(token string, worker Worker) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to authorize telegram bot")
	}

	log.Info().Str("account", bot.Self.UserName).Msg("telegram authorized")

	tg := &TelegramGateway{Bot: bot, Worker: worker}
	tg.send = func(chatID int64, text string) error {
		_, err := tg.Bot.Send(tgbotapi.NewMessage(chatID, text))
		return err
	}
	return tg, nil
}

func (tg *TelegramGateway) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			tg.Bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			tg.handle(ctx, update.Message)
		}
	}
}

func (tg *TelegramGateway) handle(ctx context.Context, m *tgbotapi.Message) {
	chatID := strconv.FormatInt(m.Chat.ID, 10)
	user := ""
	if m.From != nil {
		user = m.From.UserName
	}
	log.Info().Str("chat_id", chatID).Str("user", user).Msg("telegram message")

	reply := troubleReply
	res, err := tg.Worker.Work(agent.WithSession(ctx, "telegram:"+chatID), m.Text)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("agent failed")
	} else if res.Output != "" {
		reply = res.Output
	}

	if err := tg.send(m.Chat.ID, reply); err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to send telegram reply")
	}
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil || id == 0 {
		return errors.Newf("invalid chat ID: %s", chatID)
	}

	return tg.send(id, text)
}

func (tg *TelegramGateway) Stop() error {
	tg.Bot.StopReceivingUpdates()
	return nil
}
