package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/config"
	v1 "github.com/healthease/healthease-api/internal/handler/v1"
	"github.com/healthease/healthease-api/internal/identity"
	"github.com/healthease/healthease-api/internal/ocr"
	"github.com/healthease/healthease-api/internal/repository/postgres"
	"github.com/healthease/healthease-api/internal/service"
	"github.com/healthease/healthease-api/pkg/auth"
	"github.com/healthease/healthease-api/pkg/database"
	"github.com/healthease/healthease-api/pkg/events"
	"github.com/healthease/healthease-api/pkg/logger"
	"github.com/healthease/healthease-api/pkg/metrics"
	"github.com/healthease/healthease-api/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("tracer init failed", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	collector := metrics.NewCollector(cfg.App.Name)

	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	appointmentRepo := postgres.NewAppointmentRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	sosRepo := postgres.NewSOSRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Alerts.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Alerts)
		log.Info("sos alert publishing enabled",
			zap.Strings("brokers", cfg.Alerts.Brokers),
			zap.String("topic", cfg.Alerts.Topic),
		)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT)
	identityClient := identity.NewHTTPClient(cfg.Identity)
	visionClient := ocr.NewVisionClient(cfg.OCR, log)

	auditSvc := service.NewAuditService(auditRepo, collector, log)
	authSvc := service.NewAuthService(userRepo, sessionRepo, identityClient, jwtManager, cfg.JWT.RefreshTokenTTL, auditSvc, log)
	profileSvc := service.NewProfileService(userRepo, auditSvc, log)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, auditSvc, collector, log)
	reportSvc := service.NewReportService(reportRepo, visionClient, cfg.Upload.MaxFileBytes, auditSvc, collector, log)
	sosSvc := service.NewSOSService(sosRepo, userRepo, publisher, auditSvc, collector, log)
	directorySvc := service.NewDirectoryService(cfg.Directory.FacilityCacheTTL)

	router := v1.NewRouter(cfg, v1.Handlers{
		Auth:        v1.NewAuthHandler(authSvc),
		Profile:     v1.NewProfileHandler(profileSvc),
		Appointment: v1.NewAppointmentHandler(appointmentSvc),
		Report:      v1.NewReportHandler(reportSvc, cfg.Upload.MaxFilesPerRequest),
		SOS:         v1.NewSOSHandler(sosSvc),
		Directory:   v1.NewDirectoryHandler(directorySvc),
	}, jwtManager, collector, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}

	auditSvc.Shutdown()

	if err := publisher.Close(); err != nil {
		log.Error("alert publisher close failed", zap.Error(err))
	}

	if err := tp.Shutdown(ctx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}

	log.Info("shutdown complete")
}
