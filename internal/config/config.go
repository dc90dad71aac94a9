package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      int
	BaseURL   string
	PublicDir string
	LogLevel  string

	DBDSN         string
	SessionSecret string

	GoogleClientID     string
	GoogleClientSecret string

	// AI provider
	AIProvider    string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// chat relay
	PromptLogFile   string
	PersonasFile    string
	MaxHistoryTurns int
	ChatRateRPS     float64
	ChatRateBurst   int

	// optional session cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// optional prompt audit queue
	RabbitURL   string
	RabbitQueue string
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	port := envInt("PORT", 3000)

	cfg := Config{
		Port:      port,
		BaseURL:   envStr("BASE_URL", fmt.Sprintf("http://localhost:%d", port)),
		PublicDir: envStr("PUBLIC_DIR", "public"),
		LogLevel:  envStr("LOG_LEVEL", "info"),

		// sqlite file by default; a mysql DSN (user:pass@tcp(...)/db) also works
		DBDSN:         envStr("DB_DSN", "data.sqlite"),
		SessionSecret: envStr("SESSION_SECRET", "simple-for-now"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),

		AIProvider:    strings.ToLower(envStr("AI_PROVIDER", "gemini")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: envStr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   envStr("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envStr("OPENAI_MODEL", "gpt-4o-mini"),

		PromptLogFile:   envStr("PROMPT_LOG_FILE", "prompt_log.txt"),
		PersonasFile:    os.Getenv("PERSONAS_FILE"),
		MaxHistoryTurns: envInt("MAX_HISTORY_TURNS", 200),
		ChatRateRPS:     envFloat("CHAT_RATE_RPS", 0),
		ChatRateBurst:   envInt("CHAT_RATE_BURST", 5),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		RabbitURL:   os.Getenv("RABBIT_URL"),
		RabbitQueue: envStr("RABBIT_QUEUE", "prompt_audit"),
	}
	return cfg
}

// Validate reports the missing required settings. The process must not serve
// traffic when it returns an error.
func (c Config) Validate() error {
	var missing []string

	switch c.AIProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		if c.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	}
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
