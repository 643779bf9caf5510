package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/auth"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/config"
	auditsvc "github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/audit"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/patients"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/scheduling"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/therapists"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store/postgres"
	httptransport "github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/transport/http"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "pies-server"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "pies-server"),
	)
	slog.SetDefault(log)

	log.Info("starting", slog.String("http_addr", cfg.HTTPAddr()), slog.String("log_level", cfg.LogLevel))

	log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		os.Exit(1)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	auditSvc := auditsvc.NewService(postgres.NewAuditLogRepo(db))
	schedulingSvc := scheduling.NewService(postgres.NewAppointmentRepo(db))
	patientsSvc := patients.NewService(postgres.NewPatientRepo(db), auditSvc)
	therapistsSvc := therapists.NewService(postgres.NewTherapistRepo(db), auditSvc)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	e := httptransport.NewServer(
		httptransport.ServerConfig{
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		},
		issuer,
		httptransport.Handlers{
			Auth:       httptransport.NewAuthHandler(therapistsSvc, issuer, log),
			Scheduling: httptransport.NewSchedulingHandler(schedulingSvc, log),
			Patients:   httptransport.NewPatientsHandler(patientsSvc, log),
			Therapists: httptransport.NewTherapistsHandler(therapistsSvc, log),
			Audit:      httptransport.NewAuditHandler(auditSvc, log),
		},
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(cfg.HTTPAddr())
	}()

	log.Info("http server started", slog.String("http_addr", cfg.HTTPAddr()))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed; closing", slog.Any("err", err))
			_ = e.Close()
		} else {
			log.Info("http server stopped")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}
