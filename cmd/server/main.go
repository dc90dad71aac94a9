package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/personachat/server/internal/ai"
	"github.com/personachat/server/internal/auth"
	"github.com/personachat/server/internal/chat"
	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/db"
	"github.com/personachat/server/internal/httpapi"
	"github.com/personachat/server/internal/httpapi/handlers"
	"github.com/personachat/server/internal/httpapi/middleware"
	"github.com/personachat/server/internal/identity"
	"github.com/personachat/server/internal/logger"
	"github.com/personachat/server/internal/persona"
	"github.com/personachat/server/internal/promptlog"
	"github.com/personachat/server/internal/store/redisstore"
)

func buildProvider(cfg config.Config) (ai.Provider, error) {
	reg := ai.NewRegistry()
	reg.Register("gemini", func() (ai.Provider, error) {
		return ai.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel), nil
	})
	reg.Register("openai", func() (ai.Provider, error) {
		return ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	})
	return reg.Get(cfg.AIProvider)
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	personas := persona.Defaults()
	if cfg.PersonasFile != "" {
		personas, err = persona.LoadOverrides(cfg.PersonasFile, personas)
		if err != nil {
			log.Fatal("failed to load persona overrides", zap.String("path", cfg.PersonasFile), zap.Error(err))
		}
	}
	registry, err := persona.NewRegistry(personas)
	if err != nil {
		log.Fatal("invalid persona set", zap.Error(err))
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatal("failed to build ai provider", zap.String("provider", cfg.AIProvider), zap.Error(err))
	}

	recorder := promptlog.Recorder(promptlog.NewFileRecorder(cfg.PromptLogFile, log))
	if cfg.RabbitURL != "" {
		audit, err := promptlog.NewAMQPRecorder(cfg.RabbitURL, cfg.RabbitQueue, log)
		if err != nil {
			log.Fatal("failed to connect prompt audit queue", zap.Error(err))
		}
		defer func() { _ = audit.Close() }()
		recorder = promptlog.Tee(recorder, audit)
	}

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	repo := identity.NewRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	idSvc := identity.NewService(repo)

	var cache middleware.SessionCache
	if cfg.RedisAddr != "" {
		cache = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		log.Info("session cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	chatSvc := chat.NewService(registry, provider, recorder, cfg.MaxHistoryTurns, log)
	google := auth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL+"/auth/google/callback")

	h := handlers.NewHandler(cfg, log, chatSvc, idSvc, google, cache)
	r := httpapi.NewRouter(cfg, log, h, idSvc, cache)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("server listening",
		zap.String("addr", addr),
		zap.String("ai_provider", cfg.AIProvider),
		zap.Int("personas", registry.Len()),
	)
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
