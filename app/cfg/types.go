package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port           string
	BaseUrl        string
	APIAccessKey   string
	ProcessTimeout int
	PatternsFile   string

	// AI service configuration
	AnthropicAPIKey string
	AnthropicModel  string

	// Telegram bot configuration
	TelegramBotToken string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
