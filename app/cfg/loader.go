package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./linkhoard.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl        string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://hoard.example.com)"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	ProcessTimeout int    `long:"process-timeout" env:"PROCESS_TIMEOUT" default:"120" description:"Aggregate deadline for a single URL ingestion in seconds"`
	PatternsFile   string `long:"patterns-file" env:"PATTERNS_FILE" description:"Optional YAML file with additional platform classification patterns"`

	// AI service configuration
	AnthropicAPIKey string `long:"anthropic-api-key" env:"ANTHROPIC_API_KEY" description:"Anthropic API key (required)" required:"true"`
	AnthropicModel  string `long:"anthropic-model" env:"ANTHROPIC_MODEL" default:"claude-3-5-haiku-20241022" description:"Anthropic model used for analysis and summarization"`

	// Telegram bot configuration
	TelegramBotToken string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token (bot disabled when empty)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Linkhoard/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:           raw.DBPath,
		Port:             raw.Port,
		BaseUrl:          raw.BaseUrl,
		APIAccessKey:     raw.APIAccessKey,
		ProcessTimeout:   raw.ProcessTimeout,
		PatternsFile:     raw.PatternsFile,
		AnthropicAPIKey:  raw.AnthropicAPIKey,
		AnthropicModel:   raw.AnthropicModel,
		TelegramBotToken: raw.TelegramBotToken,
		UserAgent:        raw.UserAgent,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
