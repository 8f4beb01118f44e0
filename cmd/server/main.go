// Command server runs the love letters API.
//
// @title        Love Letters API
// @version      1.0
// @description  Passcode-gated letters feed: session gate, navigation, feed, letter detail and composer.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/api"
	"github.com/ourletters/love-letters/internal/api/metrics"
	"github.com/ourletters/love-letters/internal/core/ports"
	"github.com/ourletters/love-letters/internal/core/service"
	mongostore "github.com/ourletters/love-letters/internal/infrastructure/db/mongo"
	pgstore "github.com/ourletters/love-letters/internal/infrastructure/db/postgres"
	redisstore "github.com/ourletters/love-letters/internal/infrastructure/db/redis"
	"github.com/ourletters/love-letters/internal/infrastructure/http/handlers"
	"github.com/ourletters/love-letters/internal/infrastructure/memory"
	"github.com/ourletters/love-letters/internal/infrastructure/storage"
	"github.com/ourletters/love-letters/internal/pkg/config"
	"github.com/ourletters/love-letters/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "love-letters",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// backends holds the wired adapters and how to release them.
type backends struct {
	letters ports.LetterRepository
	users   ports.UserRepository
	photos  ports.PhotoStorage
	acks    ports.ShareAckStore
	ready   []handlers.Dependency
	closers []func(context.Context) error
}

func (b *backends) close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i](ctx)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	b := &backends{}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		b.close(closeCtx)
	}()

	if err := openStore(ctx, cfg, b); err != nil {
		return err
	}
	if err := openStorage(ctx, cfg, b); err != nil {
		return err
	}
	if err := openAcks(ctx, cfg, b, log); err != nil {
		return err
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	gate := service.NewSessionGate(cfg.Session.Passcode, logger.Component("session"))
	feed := service.NewFeedLoader(b.letters, logger.Component("feed"))
	detail := service.NewDetailLoader(b.letters, b.acks, logger.Component("detail"))
	composer := service.NewComposer(b.letters, b.users, b.photos, logger.Component("composer"))
	nav := service.NewNavigator(gate, feed, detail, composer, metrics.ViewObserver{}, logger.Component("navigator"))

	e := api.NewRouter(api.Dependencies{
		App:           nav,
		Logger:        logger.Component("http"),
		SessionSecret: secret,
		PublicOrigin:  cfg.Session.PublicOrigin,
		Ready:         b.ready,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Str("storage", cfg.Storage.Driver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, b *backends) error {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Store.PostgresDSN})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func(context.Context) error { return db.Close() })
		if err := pgstore.Migrate(ctx, db); err != nil {
			return err
		}
		b.letters = pgstore.NewLetterRepository(db)
		b.users = pgstore.NewUserRepository(db)
		b.ready = append(b.ready, handlers.Dependency{Name: "postgres", Pinger: pgstore.Pinger{DB: db}})
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Store.MongoURI, Database: cfg.Store.MongoDB})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		b.letters = mongostore.NewLetterRepository(db)
		b.users = mongostore.NewUserRepository(db)
		b.ready = append(b.ready, handlers.Dependency{Name: "mongodb", Pinger: mongostore.Pinger{Client: client}})
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, b *backends) error {
	sc := storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	}

	switch cfg.Storage.Driver {
	case config.StorageS3:
		s, err := storage.NewS3Store(ctx, sc)
		if err != nil {
			return err
		}
		b.photos = s
		b.ready = append(b.ready, handlers.Dependency{Name: "s3", Pinger: s})
	default:
		s, err := storage.NewMinioStore(ctx, sc)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
		b.photos = s
		b.ready = append(b.ready, handlers.Dependency{Name: "minio", Pinger: s})
	}
	return nil
}

func openAcks(ctx context.Context, cfg *config.Config, b *backends, log zerolog.Logger) error {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set; share acknowledgments kept in memory")
		b.acks = memory.NewShareAckStore()
		return nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	b.closers = append(b.closers, func(context.Context) error { return client.Close() })
	b.acks = redisstore.NewShareAckStore(client)
	b.ready = append(b.ready, handlers.Dependency{Name: "redis", Pinger: redisstore.Pinger{Client: client}})
	return nil
}
