package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/siteit/leadbot/core/logger"
	tghelpers "github.com/siteit/leadbot/core/telegram/helpers"
	"github.com/siteit/leadbot/internal/notify"
	"github.com/siteit/leadbot/pkg/fault"
)

func isGroupChat(chat *tele.Chat) bool {
	return chat != nil && (chat.Type == tele.ChatGroup || chat.Type == tele.ChatSuperGroup)
}

// AddGroup registers the current group chat for lead report mailing.
// Run outside a group it explains how to use itself.
func (h *Handlers) AddGroup(c tele.Context) error {
	chat := c.Chat()
	if !isGroupChat(chat) {
		return c.Send(textAddGroupHint)
	}

	ctx := tghelpers.BuildContext(c)
	if err := h.groups.Upsert(ctx, chat.ID, chat.Title, true); err != nil {
		logger.Error(ctx, "service.groups", "group.add",
			slog.String("status", "fail"),
			slog.Int64("chat_id", chat.ID),
			slog.String("err", err.Error()),
		)
		return c.Send(textGenericFailure)
	}
	logger.Info(ctx, "service.groups", "group.add",
		slog.String("status", "ok"),
		slog.Int64("chat_id", chat.ID),
		slog.String("title", logger.SanitizeLimit(chat.Title, 128)),
	)
	return c.Send(textGroupAdded)
}

// DelGroup drops the current group chat from the mailing set.
func (h *Handlers) DelGroup(c tele.Context) error {
	chat := c.Chat()
	if !isGroupChat(chat) {
		return c.Send(textAddGroupHint)
	}

	ctx := tghelpers.BuildContext(c)
	err := h.groups.SetMailing(ctx, chat.ID, false)
	switch {
	case errors.Is(err, fault.ErrNotFound):
		return c.Send(textGroupUnknown)
	case err != nil:
		logger.Error(ctx, "service.groups", "group.remove",
			slog.String("status", "fail"),
			slog.Int64("chat_id", chat.ID),
			slog.String("err", err.Error()),
		)
		return c.Send(textGenericFailure)
	}
	return c.Send(textGroupRemoved)
}

// AddAdmin grants admin rights to the given user id and invalidates the
// authorization cache so the grant is visible immediately.
func (h *Handlers) AddAdmin(c tele.Context) error {
	id, username, ok := parseAdminArgs(c)
	if !ok {
		return c.Send(fmt.Sprintf(textAdminUsage, "/add_admin"))
	}

	ctx := tghelpers.BuildContext(c)
	if err := h.admins.Add(ctx, id, username); err != nil {
		logger.Error(ctx, "service.users", "admin.add",
			slog.String("status", "fail"),
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return c.Send(textGenericFailure)
	}
	h.auth.Invalidate()

	// best effort, the new admin may not have talked to the bot yet
	_ = notify.BotDeliverer{Bot: c.Bot().(*tele.Bot)}.Deliver(ctx, id, textAdminNotified)

	return c.Send(fmt.Sprintf(textAdminAdded, id))
}

// DelAdmin revokes admin rights.
func (h *Handlers) DelAdmin(c tele.Context) error {
	id, _, ok := parseAdminArgs(c)
	if !ok {
		return c.Send(fmt.Sprintf(textAdminUsage, "/del_admin"))
	}

	ctx := tghelpers.BuildContext(c)
	err := h.admins.Remove(ctx, id)
	switch {
	case errors.Is(err, fault.ErrNotFound):
		return c.Send(fmt.Sprintf(textAdminUnknown, id))
	case err != nil:
		logger.Error(ctx, "service.users", "admin.remove",
			slog.String("status", "fail"),
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return c.Send(textGenericFailure)
	}
	h.auth.Invalidate()
	return c.Send(fmt.Sprintf(textAdminRemoved, id))
}

func parseAdminArgs(c tele.Context) (int64, string, bool) {
	msg := c.Message()
	if msg == nil {
		return 0, "", false
	}
	args := strings.Fields(msg.Payload)
	if len(args) == 0 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, "", false
	}
	username := ""
	if len(args) > 1 {
		username = strings.TrimPrefix(args[1], "@")
	}
	return id, username, true
}
