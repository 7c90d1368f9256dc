package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/niklvrr/teammembers/internal/config"
	"github.com/niklvrr/teammembers/internal/infrastructure/db"
	"github.com/niklvrr/teammembers/internal/infrastructure/repository"
	"github.com/niklvrr/teammembers/internal/transport"
	"github.com/niklvrr/teammembers/internal/transport/handler"
	"github.com/niklvrr/teammembers/internal/usecase/service"
	"github.com/niklvrr/teammembers/pkg/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Логгер
	log, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище: один хэндл на всё время жизни процесса
	repo, closeStorage, err := newRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage init failed", zap.String("driver", cfg.Driver), zap.Error(err))
	}
	defer closeStorage()

	// Слои
	svc := service.NewTeamMemberService(repo, log)
	router := transport.NewRouter(
		handler.NewTeamMemberHandler(svc, log),
		handler.NewItemHandler(log),
		handler.NewHealthHandler(log),
		transport.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			RequestTimeout: cfg.App.RequestTimeout,
		},
		log,
	)

	// Сервер
	srv := transport.NewServer(cfg.App.Port, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.TeamMemberRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := db.NewMongo(ctx, cfg.Mongo.URI, log)
		if err != nil {
			return nil, nil, err
		}

		repo := repository.NewMongoTeamMemberRepository(
			client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
			log,
		)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}

		log.Info("storage ready",
			zap.String("driver", cfg.Driver),
			zap.String("database", cfg.Mongo.Database),
			zap.String("collection", cfg.Mongo.Collection),
		)

		return repo, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("mongo disconnect failed", zap.Error(err))
			}
		}, nil

	case config.DriverPostgres:
		pool, err := db.NewDatabase(ctx, cfg.Database.URL, cfg.Database.MigrationsPath, log)
		if err != nil {
			return nil, nil, err
		}

		log.Info("storage ready", zap.String("driver", cfg.Driver))

		return repository.NewPgTeamMemberRepository(pool, log), pool.Close, nil
	}

	return nil, nil, errors.New("unknown storage driver: " + cfg.Driver)
}
