package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/auth"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

type authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.Therapist, error)
}

type AuthHandler struct {
	svc    authenticator
	issuer *auth.TokenIssuer
	log    *slog.Logger
}

func NewAuthHandler(svc authenticator, issuer *auth.TokenIssuer, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		svc:    svc,
		issuer: issuer,
		log:    log.With(slog.String("component", "http.auth")),
	}
}

func (h *AuthHandler) Register(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	Therapist domain.Therapist `json:"therapist"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	t, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.log.Info("login rejected", slog.String("username", req.Username))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.issuer.Issue(t.Username, t.Role)
	if err != nil {
		h.log.Error("token issue failed", slog.Any("err", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.log.Info("login succeeded", slog.String("username", t.Username))
	return c.JSON(http.StatusOK, loginResponse{Token: token, Therapist: t})
}
