package httpserver

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/auth"
	"github.com/cklam2/canteen/internal/logging"
)

func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)

			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"url", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			req := c.Request().WithContext(logging.IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)
			status := c.Response().Status

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
				status = c.Response().Status
			}

			switch {
			case err != nil || status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", errStr(err))
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}

// RequireUser validates the bearer JWT and stores the student identity on
// the echo context.
func RequireUser(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, secret)
			if err != nil {
				return err
			}
			c.Set("student_id", claims.Subject)
			c.Set("student_name", claims.Name)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// RequireStaff additionally rejects tokens without the staff role.
func RequireStaff(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, secret)
			if err != nil {
				return err
			}
			if claims.Role != auth.RoleStaff {
				return echo.NewHTTPError(http.StatusForbidden, "staff only")
			}
			c.Set("student_id", claims.Subject)
			c.Set("student_name", claims.Name)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// RequireAPIToken guards the integrator API with a static shared secret,
// compared in constant time.
func RequireAPIToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := bearerToken(c)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized. Invalid or missing API token.")
			}
			return next(c)
		}
	}
}

func claimsFromRequest(c echo.Context, secret []byte) (*auth.Claims, error) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, err := auth.ParseToken(tokenString, secret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
