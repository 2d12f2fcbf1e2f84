package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/llm"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. CINDER_DB_DRIVER.
const Prefix = "CINDER"

type Config struct {
	Env       string `envconfig:"ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// User is the default identity for CLI commands when --user is not given.
	User string `envconfig:"USER"`

	DB        DBConfig        `envconfig:"DB"`
	HTTP      HTTPConfig      `envconfig:"HTTP"`
	Scoring   ScoringConfig   `envconfig:"SCORING"`
	Annotator AnnotatorConfig `envconfig:"ANNOTATOR"`
	LLM       LLMConfig       `envconfig:"LLM"`
	OpenAI    OpenAIConfig    `envconfig:"OPENAI"`
	OTEL      OTELConfig      `envconfig:"OTEL"`
}

type DBConfig struct {
	Driver    string `envconfig:"DRIVER" default:"sqlite"`
	DSN       string `envconfig:"DSN"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
}

type HTTPConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type ScoringConfig struct {
	WindowDays         int    `envconfig:"WINDOW_DAYS" default:"7"`
	Timezone           string `envconfig:"TIMEZONE" default:"UTC"`
	WorkdayStart       string `envconfig:"WORKDAY_START" default:"09:00"`
	WorkdayEnd         string `envconfig:"WORKDAY_END" default:"18:00"`
	WeekendsAfterHours bool   `envconfig:"WEEKENDS_AFTER_HOURS" default:"true"`
}

type AnnotatorConfig struct {
	Provider string `envconfig:"PROVIDER" default:"keyword"`
}

type LLMConfig struct {
	Endpoint   string `envconfig:"ENDPOINT" default:"http://localhost:11434"`
	Model      string `envconfig:"MODEL" default:"llama3.2"`
	TimeoutMs  int    `envconfig:"TIMEOUT_MS" default:"10000"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"1"`
	LogCalls   bool   `envconfig:"LOG_CALLS"`
}

type OpenAIConfig struct {
	APIKey string `envconfig:"API_KEY"`
	Model  string `envconfig:"MODEL" default:"gpt-4o-mini"`
}

type OTELConfig struct {
	Enabled  bool   `envconfig:"ENABLED"`
	Endpoint string `envconfig:"ENDPOINT"`
	Insecure bool   `envconfig:"INSECURE"`
}

// Load reads the configuration from CINDER_* environment variables and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case "development", "staging", "production":
	default:
		errs = append(errs, errors.New("CINDER_ENV must be one of: development, staging, production"))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, errors.New("CINDER_LOG_FORMAT must be console or json"))
	}

	switch c.DB.Driver {
	case "sqlite":
	case "libsql", "postgres":
		if c.DB.DSN == "" {
			errs = append(errs, fmt.Errorf("CINDER_DB_DSN is required when CINDER_DB_DRIVER=%s", c.DB.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CINDER_DB_DRIVER %q (sqlite, libsql, postgres)", c.DB.Driver))
	}

	if c.Scoring.WindowDays <= 0 {
		errs = append(errs, errors.New("CINDER_SCORING_WINDOW_DAYS must be positive"))
	}
	if _, err := c.WorkdayPolicy(); err != nil {
		errs = append(errs, err)
	}

	switch c.Annotator.Provider {
	case "keyword", "ollama":
	case "openai":
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("CINDER_OPENAI_API_KEY is required when CINDER_ANNOTATOR_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CINDER_ANNOTATOR_PROVIDER %q (keyword, ollama, openai)", c.Annotator.Provider))
	}

	if c.OTEL.Enabled && c.OTEL.Endpoint == "" {
		errs = append(errs, errors.New("CINDER_OTEL_ENDPOINT is required when CINDER_OTEL_ENABLED=true"))
	}

	return errors.Join(errs...)
}

// WorkdayPolicy builds the after-hours policy from the scoring settings.
func (c *Config) WorkdayPolicy() (domain.WorkdayPolicy, error) {
	loc, err := time.LoadLocation(c.Scoring.Timezone)
	if err != nil {
		return domain.WorkdayPolicy{}, fmt.Errorf("CINDER_SCORING_TIMEZONE: %w", err)
	}
	start, err := parseClock(c.Scoring.WorkdayStart)
	if err != nil {
		return domain.WorkdayPolicy{}, fmt.Errorf("CINDER_SCORING_WORKDAY_START: %w", err)
	}
	end, err := parseClock(c.Scoring.WorkdayEnd)
	if err != nil {
		return domain.WorkdayPolicy{}, fmt.Errorf("CINDER_SCORING_WORKDAY_END: %w", err)
	}
	if end <= start {
		return domain.WorkdayPolicy{}, fmt.Errorf("workday end %s must be after start %s", c.Scoring.WorkdayEnd, c.Scoring.WorkdayStart)
	}
	return domain.WorkdayPolicy{
		Location:           loc,
		StartMinute:        start,
		EndMinute:          end,
		WeekendsAfterHours: c.Scoring.WeekendsAfterHours,
	}, nil
}

// LLMSettings applies the CINDER_LLM_* overrides to the client defaults.
func (c *Config) LLMSettings() llm.Config {
	return llm.DefaultConfig().WithOverrides(c.LLM.Endpoint, c.LLM.Model, c.LLM.TimeoutMs, c.LLM.MaxRetries, c.LLM.LogCalls)
}

// parseClock converts "HH:MM" into minutes after midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("use HH:MM format, got %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
