// Package notify delivers compiled lead reports to the mailing groups.
package notify

import (
	"context"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/siteit/leadbot/core/logger"
	tghelpers "github.com/siteit/leadbot/core/telegram/helpers"
)

// Deliverer sends one text message to one chat.
type Deliverer interface {
	Deliver(ctx context.Context, chatID int64, text string) error
}

// FanOut delivers text to every group, best effort: a failed destination
// is logged and skipped, the rest still receive the report. It returns
// the number of deliveries that failed up front; deliveries accepted by
// the outbound queue surface later failures in the sender logs.
func FanOut(ctx context.Context, d Deliverer, groups []int64, text string) int {
	start := time.Now()
	failed := 0
	for _, chatID := range groups {
		if err := d.Deliver(ctx, chatID, text); err != nil {
			failed++
			logger.Warn(ctx, "service.leads", "fanout.deliver",
				slog.String("status", "fail"),
				slog.Int64("chat_id", chatID),
				slog.String("err", err.Error()),
			)
		}
	}
	status := "ok"
	if failed > 0 {
		status = "partial"
	}
	logger.Info(ctx, "service.leads", "fanout.summary",
		slog.String("status", status),
		slog.Int("groups_total", len(groups)),
		slog.Int("groups_failed", failed),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return failed
}

// BotDeliverer adapts a live telebot instance to the Deliverer interface.
// Sends go through the outbound dispatcher, so transient Telegram errors
// are retried per destination without blocking the handler. Reports are
// sent in HTML parse mode for the bold prompts and tel link.
type BotDeliverer struct {
	Bot *tele.Bot
}

func (d BotDeliverer) Deliver(ctx context.Context, chatID int64, text string) error {
	return tghelpers.EnqueueOutbound(ctx, "lead.deliver", "sendMessage", func() error {
		_, err := d.Bot.Send(&tele.Chat{ID: chatID}, text, tele.ModeHTML)
		return err
	})
}
