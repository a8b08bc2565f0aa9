package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/auth"
	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/transport"
)

type AuthHTTP struct {
	Svc *auth.Service
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.StudentID, req.Name, req.Password); err != nil {
		he := serviceError(err)
		l.Warn("register_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("register_success", "student_id", req.StudentID)
	return c.NoContent(http.StatusCreated)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.Login(ctx, req.StudentID, req.Password)
	if err != nil {
		he := serviceError(err)
		l.Warn("login_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("login_success", "student_id", req.StudentID)
	return c.JSON(http.StatusOK, transport.TokenResponse{AccessToken: token})
}
