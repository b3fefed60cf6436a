package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunacat/internal/config"
	"lunacat/internal/content"
	"lunacat/internal/content/gemini"
	"lunacat/internal/game"
	"lunacat/internal/handler"
	"lunacat/internal/middleware"
	"lunacat/internal/repository/postgres"
	"lunacat/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v3"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Luna bot")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Failed to load timezone", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("timezone", loc.String()),
		zap.Bool("gemini", cfg.Gemini.APIKey != ""),
	)

	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo := postgres.NewUserRepo(db)
	wordRepo := postgres.NewWordRepo(db, cfg.Timezone)

	source := newContentSource(ctx, cfg, logger)

	authService := service.NewAuthService(userRepo, cfg.BotPassword, logger)
	wordService := service.NewWordService(wordRepo)
	progressService := service.NewProgressService(userRepo, loc, logger)
	gameService := service.NewGameService(source, progressService, cfg.Gemini.Timeout, logger,
		game.WithMatchPoints(cfg.Game.MatchPoints),
		game.WithMismatchDelay(cfg.Game.MismatchDelay),
	)
	defer gameService.Close()
	flashcardService := service.NewFlashcardService(source, wordService, progressService, cfg.Game.FlashcardPoints, logger)
	chatService := service.NewChatService(source, logger)
	onboardingService := service.NewOnboardingService(source, progressService, logger)
	statsService := service.NewStatsService(wordRepo, cfg.RetentionDays, logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.BotToken,
		Poller:  &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: logBotError(logger),
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bot.Use(middleware.AuthMiddleware(authService, logger))

	h := handler.NewHandler(ctx, bot, handler.Services{
		Auth:       authService,
		Words:      wordService,
		Progress:   progressService,
		Onboarding: onboardingService,
		Flashcards: flashcardService,
		Chat:       chatService,
		Games:      gameService,
	}, cfg.StudentName, logger)
	h.RegisterHandlers()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		runCleanupJob(gctx, statsService, logger)
		return nil
	})
	g.Go(func() error {
		logger.Info("Bot started")
		bot.Start()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, stopping bot...")
		bot.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped gracefully")
}

// newContentSource picks Gemini when a key is configured and the built-in
// word lists otherwise
func newContentSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) content.Source {
	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, using offline content")
		return content.Offline{}
	}

	client, err := gemini.New(ctx, gemini.Config{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		MaxRetries:     cfg.Gemini.MaxRetries,
		RetryDelay:     cfg.Gemini.RetryDelay,
		PairCount:      cfg.Gemini.PairCount,
		FlashcardCount: cfg.Gemini.FlashcardCount,
	}, logger)
	if err != nil {
		logger.Error("Failed to create Gemini client, using offline content", zap.Error(err))
		return content.Offline{}
	}
	return client
}

func logBotError(logger *zap.Logger) func(error, tele.Context) {
	return func(err error, c tele.Context) {
		fields := []zap.Field{zap.Error(err)}
		if c != nil && c.Sender() != nil {
			fields = append(fields, zap.Int64("user_id", c.Sender().ID))
		}
		logger.Error("Unhandled bot error", fields...)
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		logger.Info("Database connection established")
		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func runMigrations(db *sql.DB, sourceURL string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob drops words past the retention window once at startup and
// then daily
func runCleanupJob(ctx context.Context, statsService *service.StatsService, logger *zap.Logger) {
	if err := statsService.CleanupOldData(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			if err := statsService.CleanupOldData(); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
