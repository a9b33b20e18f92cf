package handlers

import (
	"fmt"
	"strconv"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/siteit/leadbot/core/logger"
	"github.com/siteit/leadbot/core/telegram/callbacks"
	tghelpers "github.com/siteit/leadbot/core/telegram/helpers"
	"github.com/siteit/leadbot/core/telegram/keyboard"
	"github.com/siteit/leadbot/internal/dialog"
	"github.com/siteit/leadbot/internal/models"
)

// Order starts the questionnaire from the menu card.
func (h *Handlers) Order(c tele.Context) error {
	userID := c.Sender().ID
	h.state.Clear(userID)
	h.state.SetState(userID, StateQuestion)

	conv := dialog.NewConversation()
	if msg := c.Message(); msg != nil {
		// reuse the menu card as the evolving question card
		conv.PromptID = msg.ID
	}
	h.state.SetTemp(userID, convKey, conv)

	return h.advance(c, conv, "")
}

// Answer consumes an inline answer selection. The payload carries the
// chosen option id; the selection event handed to the engine is rebuilt
// from the option so free text and selections share one code path.
func (h *Handlers) Answer(c tele.Context) error {
	userID := c.Sender().ID
	if h.state.GetState(userID) != StateQuestion {
		return h.MainMenu(c)
	}
	conv, ok := h.conversation(userID)
	if !ok {
		return h.MainMenu(c)
	}

	optionID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	node, err := h.questions.Node(ctx, conv.NodeID)
	if err != nil {
		return h.MainMenu(c)
	}

	for _, opt := range node.Answers {
		if opt.ID != optionID {
			continue
		}
		input := opt.Content
		if opt.Next.Valid {
			input = fmt.Sprintf("%s:%d", opt.Content, opt.Next.Int64)
		}
		return h.advance(c, conv, input)
	}
	return nil
}

// QuestionText consumes a free-text answer while in the question stage.
func (h *Handlers) QuestionText(c tele.Context) error {
	conv, ok := h.conversation(c.Sender().ID)
	if !ok {
		return h.MainMenu(c)
	}
	input := c.Text()
	if input == "" {
		return c.Send(textEnterText)
	}
	// drop the raw user message to keep a single live question card
	_ = c.Delete()
	return h.advance(c, conv, input)
}

func (h *Handlers) advance(c tele.Context, conv *dialog.Conversation, input string) error {
	ctx := tghelpers.BuildContext(c)

	out, err := h.engine.Advance(ctx, conv, input)
	if err != nil {
		logger.Error(ctx, "dialog", "dialog.advance",
			slog.String("status", "fail"),
			slog.Int64("user_id", c.Sender().ID),
			slog.Int64("node", conv.NodeID),
			slog.String("err", err.Error()),
		)
		return c.Send(textGenericFailure)
	}

	if out.Terminal {
		return h.askPhone(c, conv)
	}

	logger.Debug(ctx, "dialog", "dialog.advance",
		slog.String("status", "ok"),
		slog.Int64("user_id", c.Sender().ID),
		slog.Int64("node", out.Node.ID),
		slog.String("node_key", out.Node.Key),
		slog.Int("answers", len(conv.Answers)),
	)
	return h.renderNode(c, conv, out.Node)
}

// renderNode shows a question card: one button per answer option plus the
// ever-present escape to the main menu. Rendering is pure in the node and
// produces identical output on repeated calls.
func (h *Handlers) renderNode(c tele.Context, conv *dialog.Conversation, node *models.Question) error {
	rows := make([][]keyboard.InlineBtn, 0, len(node.Answers)+1)
	for _, opt := range node.Answers {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   opt.Content,
			Unique: cbAnswer,
			Data:   strconv.FormatInt(opt.ID, 10),
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: btnMainMenu, Unique: cbMenu}})

	return h.showPrompt(c, conv, node.Content, keyboard.InlineButtonsRows(rows...))
}

// showPrompt edits the live question card in place, falling back to a
// fresh message when the handle is stale or absent.
func (h *Handlers) showPrompt(c tele.Context, conv *dialog.Conversation, text string, markup *tele.ReplyMarkup) error {
	if conv.PromptID != 0 {
		stored := tele.StoredMessage{
			MessageID: strconv.Itoa(conv.PromptID),
			ChatID:    c.Chat().ID,
		}
		if _, err := c.Bot().Edit(stored, text, markup); err == nil {
			return nil
		}
	}

	msg, err := c.Bot().Send(c.Chat(), text, markup)
	if err != nil {
		return err
	}
	conv.PromptID = msg.ID
	return nil
}
