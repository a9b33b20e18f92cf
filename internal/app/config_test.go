package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
telegram:
  token: "123:abc"
database:
  host: "localhost"
  name: "leadbot"
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.CoreConfig().Telegram.Token != "123:abc" {
		t.Fatalf("token = %q", cfg.CoreConfig().Telegram.Token)
	}
	if cfg.Dialog.SessionTTLHours != 24 {
		t.Fatalf("session ttl = %d, expected default 24", cfg.Dialog.SessionTTLHours)
	}
	if cfg.Dialog.SweepIntervalMinutes != 30 {
		t.Fatalf("sweep interval = %d, expected default 30", cfg.Dialog.SweepIntervalMinutes)
	}
	if cfg.Dialog.AckPauseMS != 1500 {
		t.Fatalf("ack pause = %d, expected default 1500", cfg.Dialog.AckPauseMS)
	}
	if cfg.Dialog.ReferenceDir != "data/image" {
		t.Fatalf("reference dir = %q", cfg.Dialog.ReferenceDir)
	}
}

func TestLoadConfigSections(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig+`
dialog:
  session_ttl_hours: 48
  ack_pause_ms: 500
contacts:
  phone: "+70000000000"
  email: "hello@example.com"
  telegram: "@example"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dialog.SessionTTLHours != 48 || cfg.Dialog.AckPauseMS != 500 {
		t.Fatalf("dialog section = %+v", cfg.Dialog)
	}
	if cfg.Contacts.Phone != "+70000000000" || cfg.Contacts.Telegram != "@example" {
		t.Fatalf("contacts section = %+v", cfg.Contacts)
	}
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
telegram:
  token: "123:abc"
`))
	if err == nil {
		t.Fatal("missing database section must fail")
	}
}
