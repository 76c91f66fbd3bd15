package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/St1cky1/pomodoro-service/internal/api"
	grpcapi "github.com/St1cky1/pomodoro-service/internal/api/grpc"
	"github.com/St1cky1/pomodoro-service/internal/config"
	"github.com/St1cky1/pomodoro-service/internal/infrastructure/client"
	"github.com/St1cky1/pomodoro-service/internal/repository"
	"github.com/St1cky1/pomodoro-service/internal/repository/gormrepo"
	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/St1cky1/pomodoro-service/internal/worker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// store - выбранное хранилище и его репозитории
type store struct {
	tasks    repository.ITaskRepository
	sessions repository.ISessionRepository
	audit    repository.IAuditRepository
	pinger   grpcapi.Pinger
	close    func() error
}

// closeFunc приводит Close без ошибки к общей сигнатуре store.close
func closeFunc(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, log logrus.FieldLogger) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		// Запускаем миграции
		if err := client.RunMigrations(cfg.MigrationsPath, cfg.PostgresURL(), client.MigrateUp); err != nil {
			return nil, err
		}
		log.Info("✅ Миграции выполнены успешно")

		pg, err := client.NewPostgresClient(ctx, cfg.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
		}
		log.WithField("host", cfg.Host).Info("✅ Подключение к PostgreSQL установлено")

		return &store{
			tasks:    repository.NewTaskRepository(pg.Pool),
			sessions: repository.NewSessionRepository(pg.Pool),
			audit:    repository.NewAuditRepository(pg.Pool),
			pinger:   pg,
			close:    closeFunc(pg.Close),
		}, nil

	default:
		db, err := gormrepo.Open(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("✅ База SQLite открыта")

		return &store{
			tasks:    gormrepo.NewTaskRepository(db.DB()),
			sessions: gormrepo.NewSessionRepository(db.DB()),
			audit:    gormrepo.NewAuditRepository(db.DB()),
			pinger:   db,
			close:    db.Close,
		}, nil
	}
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, gRPC health server and audit worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			return serve(cfg, log)
		},
	}
}

func serve(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	st, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer st.close()

	// Публикация аудита: RabbitMQ или просто лог
	var publisher usecase.AuditPublisher = client.NewLogPublisher(log)
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue, log)
		if err != nil {
			return fmt.Errorf("ошибка подключения к RabbitMQ: %w", err)
		}
		defer rabbitMQ.Close()
		publisher = rabbitMQ
		log.Info("✅ Подключение к RabbitMQ установлено")

		auditWorker := worker.NewAuditWorker(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue, st.audit, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			auditWorker.Start(ctx)
		}()
	}

	services := api.Services{
		Tasks:    usecase.NewTaskService(st.tasks, publisher, log),
		Sessions: usecase.NewSessionService(st.sessions, st.tasks, publisher, log),
		Summary:  usecase.NewSummaryService(st.sessions),
		Audit:    usecase.NewAuditService(st.audit),
	}

	// gRPC health + reflection
	grpcServer := grpcapi.NewGRPCServer(st.pinger, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := grpcServer.Start(fmt.Sprint(cfg.Server.GRPCPort)); err != nil {
			log.WithError(err).Error("❌ gRPC server error")
			stop()
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		grpcServer.WatchStore(ctx, cfg.Server.HealthInterval)
	}()

	healthz, closeGateway, err := grpcapi.NewGatewayHandler(ctx, cfg.Server.GRPCAddr())
	if err != nil {
		return err
	}
	defer closeGateway()

	httpServer := &http.Server{
		Addr: cfg.Server.HTTPAddr(),
		Handler: api.NewRouter(services, api.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Healthz:        healthz,
			Logger:         log,
		}),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", httpServer.Addr).Info("🚀 HTTP API запущен")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("Завершение работы...")
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("❌ HTTP server error")
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("⚠️  HTTP server shutdown")
	}

	// новых запросов больше нет: досылаем аудит до закрытия RabbitMQ
	for _, flush := range []func(context.Context) error{services.Tasks.FlushAudit, services.Sessions.FlushAudit} {
		if err := flush(shutdownCtx); err != nil {
			log.WithError(err).Warn("⚠️  Не все события аудита отправлены")
		}
	}

	grpcServer.Stop()
	wg.Wait()

	log.Info("✅ Приложение завершено корректно")
	return nil
}
