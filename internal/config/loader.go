package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the duty bot.
type Config struct {
	BotToken          string
	SQLiteDSN         string
	OutputDir         string
	DefaultHorizon    int
	HolidayPolicy     bool
	StartDateMode     string
	EnforceRoomBounds bool
	ShowResidents     bool
	IndexPrefix       string
	Locale            string
	PollTimeout       time.Duration
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating required
// values and reporting every missing or malformed entry in a single error.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:         "file:dutybot.db?_foreign_keys=on",
		OutputDir:         "schedule",
		DefaultHorizon:    30,
		HolidayPolicy:     false,
		StartDateMode:     "today",
		EnforceRoomBounds: true,
		ShowResidents:     false,
		Locale:            "uk",
		PollTimeout:       30 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if token := strings.TrimSpace(os.Getenv("DUTYBOT_TOKEN")); token == "" {
		missing = append(missing, "DUTYBOT_TOKEN")
	} else {
		cfg.BotToken = token
	}

	if dsn := strings.TrimSpace(os.Getenv("DUTYBOT_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if dir := strings.TrimSpace(os.Getenv("DUTYBOT_OUTPUT_DIR")); dir != "" {
		cfg.OutputDir = dir
	}

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_DEFAULT_HORIZON")); value != "" {
		horizon, err := strconv.Atoi(value)
		if err != nil || horizon <= 0 {
			invalid = append(invalid, "DUTYBOT_DEFAULT_HORIZON")
		} else {
			cfg.DefaultHorizon = horizon
		}
	}

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_HOLIDAY_POLICY")); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			invalid = append(invalid, "DUTYBOT_HOLIDAY_POLICY")
		} else {
			cfg.HolidayPolicy = enabled
		}
	}

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_START_DATE_MODE")); value != "" {
		switch value {
		case "today", "first_of_month":
			cfg.StartDateMode = value
		default:
			invalid = append(invalid, "DUTYBOT_START_DATE_MODE")
		}
	}

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_ENFORCE_ROOM_BOUNDS")); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			invalid = append(invalid, "DUTYBOT_ENFORCE_ROOM_BOUNDS")
		} else {
			cfg.EnforceRoomBounds = enabled
		}
	}

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_SHOW_RESIDENTS")); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			invalid = append(invalid, "DUTYBOT_SHOW_RESIDENTS")
		} else {
			cfg.ShowResidents = enabled
		}
	}

	cfg.IndexPrefix = strings.TrimSpace(os.Getenv("DUTYBOT_INDEX_PREFIX"))

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_LOCALE")); value != "" {
		switch value {
		case "uk", "en":
			cfg.Locale = value
		default:
			invalid = append(invalid, "DUTYBOT_LOCALE")
		}
	}

	if value := strings.TrimSpace(os.Getenv("DUTYBOT_POLL_TIMEOUT")); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "DUTYBOT_POLL_TIMEOUT")
		} else {
			cfg.PollTimeout = timeout
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
