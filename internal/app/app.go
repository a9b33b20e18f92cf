// Package app assembles the lead bot: configuration, infrastructure
// bootstrap and the Telegram runtime wiring.
package app

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/siteit/leadbot/core/bootstrap"
	"github.com/siteit/leadbot/core/buildinfo"
	corecmd "github.com/siteit/leadbot/core/cmd"
	"github.com/siteit/leadbot/core/logger"
	coretelegram "github.com/siteit/leadbot/core/telegram"
	"github.com/siteit/leadbot/core/telegram/router"
	"github.com/siteit/leadbot/core/telegram/state"
	"github.com/siteit/leadbot/internal/auth"
	"github.com/siteit/leadbot/internal/dialog"
	"github.com/siteit/leadbot/internal/handlers"
	"github.com/siteit/leadbot/internal/storage"
)

// App is the composed lead bot, ready to run.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	sessions state.Manager
	authz    *auth.Authorizer
	handlers *handlers.Handlers

	sweepEvery time.Duration
}

// Bootstrap initializes infrastructure and composes the application.
// The signature matches corecmd.Options.Bootstrap.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Seed:     seedBootAdmin(cfg.CoreConfig().Telegram.AdminID),
	})
	if err != nil {
		return nil, err
	}
	db := res.DB

	users := storage.NewUserStore(db)
	groups := storage.NewGroupStore(db)
	admins := storage.NewAdminStore(db)
	questions := storage.NewCache(storage.NewQuestionStore(db))

	authz := auth.New(admins, time.Duration(cfg.Dialog.AdminCacheTTLSeconds)*time.Second)
	sessions := state.NewMemoryManager(time.Duration(cfg.Dialog.SessionTTLHours) * time.Hour)
	engine := dialog.NewEngine(questions, dialog.DefaultRules())

	h := handlers.New(handlers.Options{
		State:     sessions,
		Users:     users,
		Groups:    groups,
		Admins:    admins,
		Questions: questions,
		Engine:    engine,
		Auth:      authz,
		Contacts: handlers.Contacts{
			Phone:    cfg.Contacts.Phone,
			Email:    cfg.Contacts.Email,
			Telegram: cfg.Contacts.Telegram,
		},
		AckPause:     time.Duration(cfg.Dialog.AckPauseMS) * time.Millisecond,
		ReferenceDir: cfg.Dialog.ReferenceDir,
	})

	return &App{
		cfg:        cfg,
		db:         db,
		sessions:   sessions,
		authz:      authz,
		handlers:   h,
		sweepEvery: time.Duration(cfg.Dialog.SweepIntervalMinutes) * time.Minute,
	}, nil
}

// TelegramRunOptions builds the bot runtime: registry, routers,
// middleware chain and lifecycle hooks.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.handlers.Register(reg)

	var routes []coretelegram.Route
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		Admins: a.authz,
	})...)
	routes = append(routes, router.TextRoutes(a.sessions, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.sessions.StartJanitor(ctx, a.sweepEvery)
			logger.L.With("component", "app").Info("build info",
				slog.String("event", "build"),
				slog.String("version", buildinfo.Version),
				slog.String("commit", buildinfo.Commit),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}

// seedBootAdmin guarantees the configured bootstrap admin can run
// privileged commands on a fresh database.
func seedBootAdmin(adminID int64) func(*sqlx.DB) error {
	return func(db *sqlx.DB) error {
		if adminID == 0 {
			return nil
		}
		_, err := db.Exec(
			`INSERT INTO admins (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, adminID)
		if err != nil {
			return fmt.Errorf("seed boot admin: %w", err)
		}
		return nil
	}
}
