package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/siteit/leadbot/core/logger"
	tghelpers "github.com/siteit/leadbot/core/telegram/helpers"
	"github.com/siteit/leadbot/core/telegram/keyboard"
	"github.com/siteit/leadbot/internal/dialog"
	"github.com/siteit/leadbot/internal/notify"
	"github.com/siteit/leadbot/internal/report"
)

// askPhone replaces the question card with the phone request and a
// share-contact keyboard. Entered exactly once, when the engine reports
// the node sequence exhausted.
func (h *Handlers) askPhone(c tele.Context, conv *dialog.Conversation) error {
	userID := c.Sender().ID
	h.state.SetState(userID, StatePhone)

	if conv.PromptID != 0 {
		_ = c.Bot().Delete(tele.StoredMessage{
			MessageID: strconv.Itoa(conv.PromptID),
			ChatID:    c.Chat().ID,
		})
		conv.PromptID = 0
	}

	msg, err := c.Bot().Send(c.Chat(), textAskPhone, keyboard.ContactKeyboard(btnShareContact))
	if err != nil {
		return err
	}
	conv.PromptID = msg.ID
	return nil
}

// PhoneInput accepts the phone number, via shared contact or free text
// taken verbatim, then compiles and fans out the lead report.
func (h *Handlers) PhoneInput(c tele.Context) error {
	userID := c.Sender().ID
	conv, ok := h.conversation(userID)
	if !ok {
		return h.MainMenu(c)
	}

	var phone string
	if msg := c.Message(); msg != nil && msg.Contact != nil {
		phone = msg.Contact.PhoneNumber
	} else {
		phone = strings.TrimSpace(c.Text())
	}
	if phone == "" {
		return c.Send(textEnterText)
	}

	ctx := tghelpers.BuildContext(c)

	if conv.PromptID != 0 {
		_ = c.Bot().Delete(tele.StoredMessage{
			MessageID: strconv.Itoa(conv.PromptID),
			ChatID:    c.Chat().ID,
		})
	}
	_ = c.Delete()

	lead := report.Lead{
		Username: c.Sender().Username,
		Name:     c.Sender().FirstName,
		Entries:  h.compileEntries(ctx, conv),
		Phone:    phone,
	}
	if user, err := h.users.Get(ctx, userID); err == nil {
		lead.Name = user.Name
	}
	text := report.Compile(lead)

	groupIDs, err := h.groups.MailingIDs(ctx)
	if err != nil {
		logger.Error(ctx, "service.groups", "groups.list",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	} else {
		notify.FanOut(ctx, notify.BotDeliverer{Bot: c.Bot().(*tele.Bot)}, groupIDs, text)
	}

	if err := c.Send(textLeadAccepted, keyboard.RemoveKeyboard()); err != nil {
		return err
	}

	// UX pacing before the menu card reappears
	time.Sleep(h.ackPause)

	h.state.Clear(userID)
	return h.MainMenu(c)
}

// compileEntries joins prompt text back onto the node-keyed answers.
func (h *Handlers) compileEntries(ctx context.Context, conv *dialog.Conversation) []report.Entry {
	entries := make([]report.Entry, 0, len(conv.Answers))
	for _, a := range conv.Answers {
		prompt := a.NodeKey
		if node, err := h.questions.Node(ctx, a.NodeID); err == nil {
			prompt = node.Content
		}
		entries = append(entries, report.Entry{Prompt: prompt, Value: a.Value})
	}
	return entries
}
