package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/siteit/leadbot/core/config"
	coredatabase "github.com/siteit/leadbot/core/database"
)

// DialogConfig tunes the questionnaire flow.
type DialogConfig struct {
	// SessionTTLHours is how long an abandoned conversation is kept.
	SessionTTLHours int `yaml:"session_ttl_hours" envconfig:"DIALOG_SESSION_TTL_HOURS"`
	// SweepIntervalMinutes is how often expired sessions are swept.
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes" envconfig:"DIALOG_SWEEP_INTERVAL_MINUTES"`
	// AckPauseMS is the pause between the acceptance message and the
	// return to the main menu. UX pacing only.
	AckPauseMS int `yaml:"ack_pause_ms" envconfig:"DIALOG_ACK_PAUSE_MS"`
	// AdminCacheTTLSeconds bounds staleness of the admin check cache.
	AdminCacheTTLSeconds int `yaml:"admin_cache_ttl_seconds" envconfig:"DIALOG_ADMIN_CACHE_TTL_SECONDS"`
	// ReferenceDir is the root of the work-example image folders.
	ReferenceDir string `yaml:"reference_dir" envconfig:"DIALOG_REFERENCE_DIR"`
}

// ContactsConfig is the content of the contacts card.
type ContactsConfig struct {
	Phone    string `yaml:"phone" envconfig:"CONTACTS_PHONE"`
	Email    string `yaml:"email" envconfig:"CONTACTS_EMAIL"`
	Telegram string `yaml:"telegram" envconfig:"CONTACTS_TELEGRAM"`
}

// Config aggregates the core bot configuration with the lead-bot sections.
type Config struct {
	core *coreconfig.Config

	Database coredatabase.Config `yaml:"database"`
	Dialog   DialogConfig        `yaml:"dialog"`
	Contacts ContactsConfig      `yaml:"contacts"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return c.core
}

// LoadConfig reads the shared YAML file: core sections via the core loader,
// app sections with a second pass plus env overrides.
func LoadConfig(path string) (*Config, error) {
	core, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{core: core}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Database.Host) == "" {
		return fmt.Errorf("database.host is required")
	}
	if strings.TrimSpace(cfg.Database.Name) == "" {
		return fmt.Errorf("database.name is required")
	}
	if cfg.Dialog.SessionTTLHours <= 0 {
		cfg.Dialog.SessionTTLHours = 24
	}
	if cfg.Dialog.SweepIntervalMinutes <= 0 {
		cfg.Dialog.SweepIntervalMinutes = 30
	}
	if cfg.Dialog.AckPauseMS <= 0 {
		cfg.Dialog.AckPauseMS = 1500
	}
	if cfg.Dialog.AdminCacheTTLSeconds <= 0 {
		cfg.Dialog.AdminCacheTTLSeconds = 60
	}
	if cfg.Dialog.ReferenceDir == "" {
		cfg.Dialog.ReferenceDir = "data/image"
	}
	return nil
}
