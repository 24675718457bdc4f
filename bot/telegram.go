package bot

import (
	"context"
	"errors"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/namebot/core/telegram/sender"
)

// teleSender implements flow.Sender over telebot, pushing sends through
// the async dispatcher so slow deliveries never block update handling.
type teleSender struct {
	bot        *tele.Bot
	dispatcher *sender.Dispatcher
}

func (s *teleSender) Send(ctx context.Context, userID int64, text string, markup *tele.ReplyMarkup) error {
	run := func() error {
		_, err := s.bot.Send(&tele.User{ID: userID}, text, &tele.SendOptions{
			ParseMode:           tele.ModeHTML,
			DisableNotification: true,
			ReplyMarkup:         markup,
		})
		return err
	}

	if s.dispatcher == nil {
		return run()
	}
	if err := s.dispatcher.Enqueue(ctx, "send.text", userID, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			return run()
		}
		return err
	}
	return nil
}
