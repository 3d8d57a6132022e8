package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`           // current application environment (local, dev, production)
	HTTPAddr         string  `mapstructure:"http_addr"`     // listen address of the web server
	DatabasePath     string  `mapstructure:"database_path"` // sqlite file holding history and journal
	Quran            Quran   `mapstructure:"quran"`         // remote scripture API
	History          History `mapstructure:"history"`       // history retention
	Mailgun          Mailgun `mapstructure:"-"`             // e-mail sharing, loaded from environment
	TelegramAPIToken string  `mapstructure:"-"`             // Telegram bot token loaded from environment
}

// Quran configures the quran.com API client.
type Quran struct {
	BaseURL       string        `mapstructure:"base_url"`
	TranslationID int           `mapstructure:"translation_id"`
	Attribution   string        `mapstructure:"attribution"` // appended to every output, empty to omit
	Timeout       time.Duration `mapstructure:"timeout"`
}

// History configures how long printed outputs are kept.
type History struct {
	MaxAge       time.Duration `mapstructure:"max_age"`
	MaxEntries   int           `mapstructure:"max_entries"`
	ExpungeEvery time.Duration `mapstructure:"expunge_every"`
}

// Mailgun holds e-mail credentials. Sharing is disabled unless all are set.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

// Enabled reports whether every Mailgun setting is present.
func (m Mailgun) Enabled() bool {
	return m.Domain != "" && m.APIKey != "" && m.Sender != ""
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yaml from dir if present, a .env file from the
// working directory if present, then environment variables.
func LoadFrom(dir string) (*Config, error) {
	// Variables already set in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("env", "local")
	v.SetDefault("http_addr", ":42069")
	v.SetDefault("database_path", "ayah.db")
	v.SetDefault("quran.base_url", "https://api.quran.com/api/v4")
	v.SetDefault("quran.translation_id", 149)
	v.SetDefault("quran.attribution", "-Dr. Mustafa Khattab, The Clear Quran")
	v.SetDefault("quran.timeout", "10s")
	v.SetDefault("history.max_age", "672h")
	v.SetDefault("history.max_entries", 500)
	v.SetDefault("history.expunge_every", "24h")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // quran.base_url -> QURAN_BASE_URL
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("mailgun.domain", "MAILGUN_DOMAIN")
	_ = v.BindEnv("mailgun.api_key", "MAILGUN_API_KEY")
	_ = v.BindEnv("mailgun.sender", "MAILGUN_SENDER")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Mailgun = Mailgun{
		Domain: v.GetString("mailgun.domain"),
		APIKey: v.GetString("mailgun.api_key"),
		Sender: v.GetString("mailgun.sender"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Quran.BaseURL == "" {
		return fmt.Errorf("%w: quran.base_url is empty", ErrInvalidConfig)
	}
	if c.Quran.TranslationID <= 0 {
		return fmt.Errorf("%w: quran.translation_id must be positive", ErrInvalidConfig)
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("%w: history.max_entries must be positive", ErrInvalidConfig)
	}
	if c.History.MaxAge <= 0 || c.History.ExpungeEvery <= 0 {
		return fmt.Errorf("%w: history durations must be positive", ErrInvalidConfig)
	}
	return nil
}
