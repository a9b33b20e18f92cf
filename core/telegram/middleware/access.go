package middleware

import (
	"github.com/siteit/leadbot/core/logger"
	tghelpers "github.com/siteit/leadbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// AdminChecker reports whether a user may run privileged commands.
type AdminChecker interface {
	IsAdmin(userID int64) (bool, error)
}

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	Checker  AdminChecker
	OnReject tele.HandlerFunc
}

// WithAdminCheck wraps a command handler enforcing admin-only execution when required.
func WithAdminCheck(opts AdminOptions, cmd struct {
	AdminOnly bool
	Handler   tele.HandlerFunc
}) tele.HandlerFunc {
	if !cmd.AdminOnly || opts.Checker == nil {
		return cmd.Handler
	}
	return func(c tele.Context) error {
		ok, err := opts.Checker.IsAdmin(c.Sender().ID)
		if err != nil {
			ctx := tghelpers.BuildContext(c)
			logger.Warn(ctx, "tg", "access.check",
				slog.String("status", "fail"),
				slog.Int64("user_id", c.Sender().ID),
				slog.String("err", err.Error()),
			)
		}
		if !ok {
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
		return cmd.Handler(c)
	}
}

// AdminOnlyMiddleware ensures that only admin users can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Checker != nil {
				ok, err := opts.Checker.IsAdmin(c.Sender().ID)
				if err != nil || !ok {
					if opts.OnReject != nil {
						return opts.OnReject(c)
					}
					return nil
				}
			}
			return next(c)
		}
	}
}
