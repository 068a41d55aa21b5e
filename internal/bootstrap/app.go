package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"summary-backend/internal/llm"
	"summary-backend/internal/llm/gemini"
	"summary-backend/internal/llm/openai"
	"summary-backend/internal/mailer"
	"summary-backend/internal/services/health"
	"summary-backend/internal/shared/config"
	"summary-backend/internal/shared/server"
	"summary-backend/internal/shared/storage/db"
	"summary-backend/internal/shared/telemetry"
	"summary-backend/internal/summaries"
)

const (
	backendPostgres = "postgres"
	backendMemory   = "memory"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Backend          string
	SummariesRepo    summaries.Repo
	Generator        llm.Generator
	Mailer           mailer.Sender
	SummariesService *summaries.Service
	SummariesHandler *summaries.Handler
	HealthService    *health.Service
}

// Build prepares dependencies from cfg and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	sender, err := buildMailer(cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Generator: generator,
		Mailer:    sender,
	}
	if sqlDB != nil {
		app.SummariesRepo = &summaries.PGRepo{DB: sqlDB}
		app.Backend = backendPostgres
	} else {
		app.SummariesRepo = summaries.NewMemoryRepo()
		app.Backend = backendMemory
	}

	app.SummariesService = &summaries.Service{
		Repo:   app.SummariesRepo,
		LLM:    app.Generator,
		Mailer: app.Mailer,
	}
	app.SummariesHandler = summaries.NewHandler(app.SummariesService)
	app.HealthService = health.NewService(app.SummariesRepo, app.Backend)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Health:    app.HealthService,
		Summaries: app.SummariesHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"store":    app.Backend,
		"provider": app.Generator.Name(),
		"mail":     mailMode(cfg),
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_fallback", map[string]any{"reason": "DATABASE_URL empty; using in-memory repository"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			sqlDB = nil
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_fallback", map[string]any{
				"reason": "database unavailable; using in-memory repository",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildGenerator(cfg config.Config) (llm.Generator, error) {
	if strings.TrimSpace(cfg.APIKey()) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("API key for LLM provider %q is required", cfg.LLMProvider)
	}

	if cfg.LLMProvider == config.ProviderOpenAI {
		client, err := openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := gemini.NewClient(gemini.Options{
		APIKey:   cfg.GeminiAPIKey,
		Model:    cfg.LLMModel,
		Endpoint: cfg.LLMEndpoint,
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func buildMailer(cfg config.Config) (mailer.Sender, error) {
	if !cfg.Mail.Enabled() {
		return mailer.LogSender{}, nil
	}
	sender, err := mailer.NewSMTPSender(mailer.Config{
		SMTPHost:     cfg.Mail.SMTPHost,
		SMTPPort:     cfg.Mail.SMTPPort,
		SMTPUsername: cfg.Mail.Username,
		SMTPPassword: cfg.Mail.Password,
		FromEmail:    cfg.Mail.From,
		FromName:     cfg.Mail.FromName,
	})
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.mail_fallback", map[string]any{"error": err.Error()})
			return mailer.LogSender{}, nil
		}
		return nil, err
	}
	return sender, nil
}

func mailMode(cfg config.Config) string {
	if cfg.Mail.Enabled() {
		return "smtp"
	}
	return "log"
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
