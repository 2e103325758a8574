// Package server initializes and runs the application: configuration,
// storage, token service, mail and avatar backends, the rate limiter,
// and the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/dmitrijs2005/contacthub/internal/logging"
	"github.com/dmitrijs2005/contacthub/internal/server/auth"
	"github.com/dmitrijs2005/contacthub/internal/server/avatars"
	"github.com/dmitrijs2005/contacthub/internal/server/config"
	"github.com/dmitrijs2005/contacthub/internal/server/httpapi"
	"github.com/dmitrijs2005/contacthub/internal/server/mailer"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contacthub/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(cfg.SecretKey),
		cfg.AccessTokenValidity, cfg.RefreshTokenValidity, cfg.EmailTokenValidity)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	m := mailer.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	store := avatars.NewS3Store(cfg)

	userService := services.NewUserService(rm.Users(), tokens, m, store, cfg.BaseURL, logger)
	contactService := services.NewContactService(rm.Contacts())
	noteService := services.NewNoteService(rm.Notes())
	tagService := services.NewTagService(rm.Tags())

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP,
		userService, contactService, noteService, tagService,
		httpapi.NewRedisCounter(redisClient), rm.Conn(), logger)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}
}
