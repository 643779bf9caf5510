// Package http is the REST transport for the clinic back office. Handlers
// stay thin: decode, call the service with an explicit actor, map errors to
// statuses.
package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/auth"
)

type ServerConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

type Handlers struct {
	Auth       *AuthHandler
	Scheduling *SchedulingHandler
	Patients   *PatientsHandler
	Therapists *TherapistsHandler
	Audit      *AuditHandler
}

// NewServer wires the echo instance: recovery and request logging on
// everything, rate limiting and bearer auth on the API group, login outside
// the auth wall.
func NewServer(cfg ServerConfig, issuer *auth.TokenIssuer, h Handlers, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(RequestLogger(log))

	if cfg.RateLimitRPS > 0 {
		e.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}

	public := e.Group("/api/v1")
	h.Auth.Register(public)

	api := e.Group("/api/v1", RequireAuth(issuer))
	h.Scheduling.Register(api)
	h.Patients.Register(api)
	h.Therapists.Register(api)
	h.Audit.Register(api)

	return e
}
