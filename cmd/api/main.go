package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/repository/postgresql"
	gateService "github.com/cmlabs-hris/punctoo-backend-go/internal/service/gate"
	ingestService "github.com/cmlabs-hris/punctoo-backend-go/internal/service/ingest"
	performanceService "github.com/cmlabs-hris/punctoo-backend-go/internal/service/performance"
	presenceService "github.com/cmlabs-hris/punctoo-backend-go/internal/service/presence"
	referenceService "github.com/cmlabs-hris/punctoo-backend-go/internal/service/reference"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(dsn); err != nil {
			log.Error("Error running migrations", "error", err)
			os.Exit(1)
		}
		log.Info("Migrations applied")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	clientRepo := postgresql.NewClientRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	scanEventRepo := postgresql.NewScanEventRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	gateSvc := gateService.NewGateService(clientRepo)
	ingestSvc := ingestService.NewIngestService(db, scanEventRepo, employeeRepo, appMetrics, cfg.Scan.LockTimeout)
	performanceSvc := performanceService.NewPerformanceService(scanEventRepo, employeeRepo, appMetrics)
	presenceSvc := presenceService.NewPresenceService(scanEventRepo, employeeRepo)
	referenceSvc := referenceService.NewReferenceService(employeeRepo)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:             log,
		AllowedOrigins:     cfg.App.AllowedOrigins,
		JWTService:         JWTService,
		GateService:        gateSvc,
		Metrics:            appMetrics,
		AccessHandler:      appHTTP.NewAccessHandler(gateSvc),
		ScanEventHandler:   appHTTP.NewScanEventHandler(ingestSvc),
		ReferenceHandler:   appHTTP.NewReferenceHandler(referenceSvc),
		PresenceHandler:    appHTTP.NewPresenceHandler(presenceSvc),
		PerformanceHandler: appHTTP.NewPerformanceHandler(performanceSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown", "error", err)
	}
	log.Info("Server stopped")
}
