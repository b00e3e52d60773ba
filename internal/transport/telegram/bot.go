package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	maxPhotoSize   = 20 << 20
)

type ChatService interface {
	Reply(ctx context.Context, userID, message string) (string, error)
	DescribeImage(ctx context.Context, image []byte) (string, error)
}

type Bot struct {
	bot     *tele.Bot
	svc     ChatService
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	svc ChatService,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	rc := retry.NewDefaultConfig()
	rc.Retryable = func(err error) bool {
		return !errors.Is(err, tele.ErrUnauthorized)
	}

	// NewBot calls getMe, which fails while the network is still coming up.
	var b *tele.Bot
	err := retry.NewRetrier(rc).Do(ctx, "telegram getMe", func(context.Context) error {
		var err error
		b, err = tele.NewBot(pref)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		svc:     svc,
		ownerID: cfg.GetTelegramOwnerID(),
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !bot.allowed(c.Sender()) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnPhoto, bot.handlePhoto)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) allowed(sender *tele.User) bool {
	return sender != nil && sender.ID == b.ownerID
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := b.requestContext(c)
	_ = c.Notify(tele.Typing)

	reply, err := b.svc.Reply(ctx, userTag(c.Chat().ID), c.Text())
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("telegram reply failed")
		return c.Send(chatErrorText)
	}

	return b.send(ctx, c, reply)
}

func (b *Bot) handlePhoto(c tele.Context) error {
	ctx := b.requestContext(c)
	logger := log.FromCtx(ctx)
	_ = c.Notify(tele.Typing)

	photo := c.Message().Photo
	if photo.FileSize > maxPhotoSize {
		return c.Send(imageErrorText)
	}

	data, err := b.download(&photo.File)
	if err != nil {
		logger.Error().Err(err).Msg("failed to download telegram photo")
		return c.Send(imageErrorText)
	}

	reply, err := b.svc.DescribeImage(ctx, data)
	if err != nil {
		logger.Error().Err(err).Msg("telegram image description failed")
		return c.Send(imageErrorText)
	}

	return b.send(ctx, c, reply)
}

func (b *Bot) download(f *tele.File) ([]byte, error) {
	rc, err := b.bot.File(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(io.LimitReader(rc, maxPhotoSize))
}

func (b *Bot) requestContext(c tele.Context) context.Context {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	return log.WithFields(ctx, map[string]any{
		"transport": "telegram",
		"chat_id":   c.Chat().ID,
	})
}

func (b *Bot) send(ctx context.Context, c tele.Context, reply string) error {
	for i, chunk := range formatReply(reply) {
		if err := c.Send(chunk, tele.ModeHTML); err != nil {
			log.FromCtx(ctx).Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}
