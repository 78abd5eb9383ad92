package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DUTYBOT_TOKEN",
		"DUTYBOT_SQLITE_DSN",
		"DUTYBOT_OUTPUT_DIR",
		"DUTYBOT_DEFAULT_HORIZON",
		"DUTYBOT_HOLIDAY_POLICY",
		"DUTYBOT_START_DATE_MODE",
		"DUTYBOT_ENFORCE_ROOM_BOUNDS",
		"DUTYBOT_SHOW_RESIDENTS",
		"DUTYBOT_INDEX_PREFIX",
		"DUTYBOT_LOCALE",
		"DUTYBOT_POLL_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DUTYBOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BotToken != "test-token" {
		t.Fatalf("unexpected token %q", cfg.BotToken)
	}
	if cfg.SQLiteDSN != "file:dutybot.db?_foreign_keys=on" {
		t.Fatalf("unexpected DSN %q", cfg.SQLiteDSN)
	}
	if cfg.OutputDir != "schedule" {
		t.Fatalf("unexpected output dir %q", cfg.OutputDir)
	}
	if cfg.DefaultHorizon != 30 {
		t.Fatalf("unexpected horizon %d", cfg.DefaultHorizon)
	}
	if cfg.HolidayPolicy || cfg.ShowResidents {
		t.Fatalf("policy toggles must default to off: %+v", cfg)
	}
	if !cfg.EnforceRoomBounds {
		t.Fatal("room bounds must be enforced by default")
	}
	if cfg.StartDateMode != "today" || cfg.Locale != "uk" {
		t.Fatalf("unexpected defaults: mode=%q locale=%q", cfg.StartDateMode, cfg.Locale)
	}
	if cfg.PollTimeout != 30*time.Second {
		t.Fatalf("unexpected poll timeout %v", cfg.PollTimeout)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DUTYBOT_TOKEN", "test-token")
	t.Setenv("DUTYBOT_SQLITE_DSN", "file:other.db")
	t.Setenv("DUTYBOT_OUTPUT_DIR", "/var/lib/dutybot")
	t.Setenv("DUTYBOT_DEFAULT_HORIZON", "45")
	t.Setenv("DUTYBOT_HOLIDAY_POLICY", "true")
	t.Setenv("DUTYBOT_START_DATE_MODE", "first_of_month")
	t.Setenv("DUTYBOT_ENFORCE_ROOM_BOUNDS", "false")
	t.Setenv("DUTYBOT_SHOW_RESIDENTS", "true")
	t.Setenv("DUTYBOT_INDEX_PREFIX", "0")
	t.Setenv("DUTYBOT_LOCALE", "en")
	t.Setenv("DUTYBOT_POLL_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SQLiteDSN != "file:other.db" || cfg.OutputDir != "/var/lib/dutybot" {
		t.Fatalf("unexpected storage settings: %+v", cfg)
	}
	if cfg.DefaultHorizon != 45 || !cfg.HolidayPolicy || cfg.EnforceRoomBounds {
		t.Fatalf("unexpected policy settings: %+v", cfg)
	}
	if cfg.StartDateMode != "first_of_month" || !cfg.ShowResidents || cfg.IndexPrefix != "0" {
		t.Fatalf("unexpected presentation settings: %+v", cfg)
	}
	if cfg.Locale != "en" || cfg.PollTimeout != 45*time.Second {
		t.Fatalf("unexpected transport settings: %+v", cfg)
	}
}

func TestLoadReportsMissingToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error without DUTYBOT_TOKEN")
	}
	if !strings.Contains(err.Error(), "DUTYBOT_TOKEN") {
		t.Fatalf("error must name the missing variable: %v", err)
	}
}

func TestLoadAccumulatesInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DUTYBOT_TOKEN", "test-token")
	t.Setenv("DUTYBOT_DEFAULT_HORIZON", "-5")
	t.Setenv("DUTYBOT_START_DATE_MODE", "someday")
	t.Setenv("DUTYBOT_LOCALE", "xx")
	t.Setenv("DUTYBOT_POLL_TIMEOUT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for invalid values")
	}
	for _, name := range []string{
		"DUTYBOT_DEFAULT_HORIZON",
		"DUTYBOT_START_DATE_MODE",
		"DUTYBOT_LOCALE",
		"DUTYBOT_POLL_TIMEOUT",
	} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error must name %s: %v", name, err)
		}
	}
}
