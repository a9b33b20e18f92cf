package handlers

import (
	"fmt"
	"strings"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/siteit/leadbot/core/logger"
	"github.com/siteit/leadbot/core/telegram/callbacks"
	tghelpers "github.com/siteit/leadbot/core/telegram/helpers"
	"github.com/siteit/leadbot/core/telegram/keyboard"
)

// Start greets the user: returning users go straight to the menu under
// their stored name, new users are asked to introduce themselves.
func (h *Handlers) Start(c tele.Context) error {
	userID := c.Sender().ID
	h.state.Clear(userID)

	ctx := tghelpers.BuildContext(c)
	name, err := h.users.DisplayName(ctx, userID)
	if err != nil {
		logger.Error(ctx, "service.users", "user.lookup",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
	if name != "" {
		if err := c.Send(helloText(name), tele.ModeHTML); err != nil {
			return err
		}
		return h.MainMenu(c)
	}

	h.state.SetState(userID, StateName)
	first := strings.TrimSpace(c.Sender().FirstName)
	var markup *tele.ReplyMarkup
	if first != "" {
		markup = keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: fmt.Sprintf(btnMyNameIs, first), Unique: cbName, Data: first},
		})
	}
	if markup != nil {
		return c.Send(textAskName, markup)
	}
	return c.Send(textAskName)
}

// MainMenu clears any active conversation and shows the menu card.
// The previous message is dropped best effort to keep the transcript
// to a single live card.
func (h *Handlers) MainMenu(c tele.Context) error {
	h.state.Clear(c.Sender().ID)

	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: btnOrder, Unique: cbOrder}},
		[]keyboard.InlineBtn{
			{Text: btnContacts, Unique: cbContacts},
			{Text: btnReference, Unique: cbReference},
		},
	)

	_ = c.Delete()
	return c.Send(textMainMenu, markup)
}

// ContactsCard shows how to reach the team.
func (h *Handlers) ContactsCard(c tele.Context) error {
	h.state.Clear(c.Sender().ID)

	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: btnOrder, Unique: cbOrder},
			{Text: btnReference, Unique: cbReference},
		},
		[]keyboard.InlineBtn{{Text: btnMainMenu, Unique: cbMenu}},
	)

	text := fmt.Sprintf(textContacts, h.contacts.Phone, h.contacts.Email, h.contacts.Telegram)
	return c.EditOrSend(text, markup)
}

// NameInput handles a typed name in the name stage.
func (h *Handlers) NameInput(c tele.Context) error {
	name := strings.TrimSpace(c.Text())
	if name == "" {
		return c.Send(textEnterText)
	}
	return h.saveName(c, name)
}

// NameShortcut handles the "Меня зовут ...!" inline shortcut.
func (h *Handlers) NameShortcut(c tele.Context) error {
	name := strings.TrimSpace(callbacks.CallbackPayload(c))
	if name == "" {
		return h.Start(c)
	}
	return h.saveName(c, name)
}

func (h *Handlers) saveName(c tele.Context, name string) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	if err := h.users.Upsert(ctx, userID, c.Sender().Username, name); err != nil {
		logger.Error(ctx, "service.users", "user.save",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return c.Send(textGenericFailure)
	}
	h.state.Clear(userID)

	if err := c.Send(niceToMeetText(name), tele.ModeHTML); err != nil {
		return err
	}
	return h.MainMenu(c)
}
