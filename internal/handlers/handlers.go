// Package handlers implements the bot's Telegram surface: the greeting
// and name stage, the main menu, the questionnaire flow, the phone stage
// with report fan-out, the reference gallery and the admin commands.
package handlers

import (
	"time"

	tg "github.com/siteit/leadbot/core/telegram"
	"github.com/siteit/leadbot/core/telegram/commands"
	"github.com/siteit/leadbot/core/telegram/state"
	"github.com/siteit/leadbot/internal/auth"
	"github.com/siteit/leadbot/internal/dialog"
	"github.com/siteit/leadbot/internal/storage"
)

// FSM states of the conversation.
const (
	StateName      state.State = "interview:name"
	StateQuestion  state.State = "interview:question"
	StatePhone     state.State = "interview:phone"
	StateReference state.State = "reference:view"
)

// Callback keys.
const (
	cbMenu      = "menu"
	cbOrder     = "order"
	cbContacts  = "contacts"
	cbReference = "reference"
	cbRefView   = "ref"
	cbRefBack   = "ref_back"
	cbAnswer    = "answer"
	cbName      = "name"
)

// Session temp-data key holding the *dialog.Conversation.
const convKey = "conversation"

// Contacts is the content of the contacts card.
type Contacts struct {
	Phone    string
	Email    string
	Telegram string
}

// Options wires the handler set.
type Options struct {
	State     state.Manager
	Users     *storage.UserStore
	Groups    *storage.GroupStore
	Admins    *storage.AdminStore
	Questions *storage.Cache
	Engine    *dialog.Engine
	Auth      *auth.Authorizer

	Contacts     Contacts
	AckPause     time.Duration
	ReferenceDir string
}

// Handlers bundles every Telegram handler of the bot.
type Handlers struct {
	state     state.Manager
	users     *storage.UserStore
	groups    *storage.GroupStore
	admins    *storage.AdminStore
	questions *storage.Cache
	engine    *dialog.Engine
	auth      *auth.Authorizer

	contacts Contacts
	ackPause time.Duration
	refDir   string
}

func New(opts Options) *Handlers {
	return &Handlers{
		state:     opts.State,
		users:     opts.Users,
		groups:    opts.Groups,
		admins:    opts.Admins,
		questions: opts.Questions,
		engine:    opts.Engine,
		auth:      opts.Auth,
		contacts:  opts.Contacts,
		ackPause:  opts.AckPause,
		refDir:    opts.ReferenceDir,
	}
}

// Register wires commands, callbacks and FSM state handlers.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/add_group", commands.Command{
		Handler:     h.AddGroup,
		Description: "Добавить группу в рассылку заявок",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/del_group", commands.Command{
		Handler:     h.DelGroup,
		Description: "Убрать группу из рассылки заявок",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/add_admin", commands.Command{
		Handler:     h.AddAdmin,
		Description: "Назначить администратора",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/del_admin", commands.Command{
		Handler:     h.DelAdmin,
		Description: "Разжаловать администратора",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbMenu, h.MainMenu)
	_ = reg.RegisterCallback(cbOrder, h.Order)
	_ = reg.RegisterCallback(cbContacts, h.ContactsCard)
	_ = reg.RegisterCallback(cbReference, h.ReferenceList)
	_ = reg.RegisterCallback(cbRefView, h.ReferenceView)
	_ = reg.RegisterCallback(cbRefBack, h.ReferenceList)
	_ = reg.RegisterCallback(cbAnswer, h.Answer)
	_ = reg.RegisterCallback(cbName, h.NameShortcut)

	reg.SetTextFallback(h.MainMenu)

	state.RegisterHandler(StateName, h.NameInput)
	state.RegisterHandler(StateQuestion, h.QuestionText)
	state.RegisterHandler(StatePhone, h.PhoneInput)
}

// conversation fetches the live questionnaire state for a user.
func (h *Handlers) conversation(userID int64) (*dialog.Conversation, bool) {
	v, ok := h.state.GetTemp(userID, convKey)
	if !ok {
		return nil, false
	}
	conv, ok := v.(*dialog.Conversation)
	return conv, ok
}
