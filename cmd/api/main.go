package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lab-scheduler/internal/audit"
	"github.com/BruksfildServices01/lab-scheduler/internal/backup"
	"github.com/BruksfildServices01/lab-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/lab-scheduler/internal/db"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/handlers"
	"github.com/BruksfildServices01/lab-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/lab-scheduler/internal/infra/snapshot"
	"github.com/BruksfildServices01/lab-scheduler/internal/logger"
	"github.com/BruksfildServices01/lab-scheduler/internal/middleware"
	"github.com/BruksfildServices01/lab-scheduler/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logg.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 💾 STORAGE
	// ======================================================
	var guard domain.Guard
	if cfg.ConflictCheck {
		guard = domain.NoOverlap
	}

	var (
		repo   domain.Repository
		checks []handlers.HealthCheck
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := dbpkg.NewDB(cfg.DBUrl)
		if err != nil {
			logg.Fatal("database unavailable", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logg.Fatal("database handle", zap.Error(err))
		}
		defer sqlDB.Close()

		repo = repository.NewAppointmentGormRepository(db, guard)
		checks = append(checks, handlers.HealthCheck{Name: "postgres", Check: sqlDB.PingContext})

	default:
		file := snapshot.NewJSONFile(cfg.DataFile)

		var opts []repository.StoreOption
		if guard != nil {
			opts = append(opts, repository.WithGuard(guard))
		}
		store := repository.NewAppointmentStore(file, opts...)
		if err := store.Load(ctx); err != nil {
			logg.Fatal("data file unreadable", zap.String("path", file.Path()), zap.Error(err))
		}
		logg.Info("data file loaded", zap.String("path", file.Path()), zap.Int("records", store.Len()))

		repo = store
	}

	// ======================================================
	// 📜 AUDIT
	// ======================================================
	sinks := []audit.Sink{audit.NewLogSink(logg)}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logg.Warn("redis unreachable at startup", zap.Error(err))
		}

		redisSink := audit.NewRedisSink(rdb, cfg.AuditChannel)
		defer redisSink.Close()

		sinks = append(sinks, redisSink)
		checks = append(checks, handlers.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	dispatcher := audit.NewDispatcher(logg, cfg.AuditQueueSize, sinks...)

	// ======================================================
	// 🗄️ BACKUP
	// ======================================================
	var stopBackup func() context.Context
	if cfg.BackupEnabled() {
		uploader := backup.NewS3Uploader(backup.S3Options{
			Bucket:    cfg.BackupBucket,
			Region:    cfg.BackupRegion,
			Endpoint:  cfg.BackupEndpoint,
			AccessKey: cfg.AWSAccessKeyID,
			SecretKey: cfg.AWSSecretKey,
		})

		scheduler, err := backup.Schedule(cfg.BackupCron, backup.NewJob(repo, uploader, cfg.BackupKey, logg))
		if err != nil {
			logg.Fatal("backup schedule", zap.Error(err))
		}
		scheduler.Start()
		stopBackup = scheduler.Stop

		logg.Info("backup scheduled",
			zap.String("cron", cfg.BackupCron),
			zap.String("bucket", cfg.BackupBucket),
		)
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(logg), middleware.RequestLogger(logg))

	routes.RegisterRoutes(r, repo, dispatcher, cfg, logg, checks...)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logg.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown", zap.Error(err))
	}

	if stopBackup != nil {
		select {
		case <-stopBackup().Done():
		case <-shutdownCtx.Done():
			logg.Warn("backup still running at shutdown")
		}
	}

	if err := dispatcher.Close(shutdownCtx); err != nil {
		logg.Warn("audit queue not drained", zap.Error(err))
	}
}
