package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/repo"
	"github.com/cklam2/canteen/internal/stats"
	"github.com/cklam2/canteen/internal/transport"
)

// APIHTTP is the read-only integrator surface. Routes sit behind the static
// bearer token middleware; everything here is derived from the order scan.
type APIHTTP struct {
	Repo *repo.GormRepo
}

func (h *APIHTTP) ListStudents(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.list_students")

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	orders, err := h.Repo.ScanOrders(ctx)
	if err != nil {
		l.Error("list_students_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	students := stats.Rollup(orders)

	offset := (page - 1) * limit
	pageItems := []stats.Student{}
	if offset < len(students) {
		end := offset + limit
		if end > len(students) {
			end = len(students)
		}
		pageItems = students[offset:end]
	}

	totalPages := (len(students) + limit - 1) / limit

	return c.JSON(http.StatusOK, transport.StudentsResponse{
		Students:   pageItems,
		Total:      len(students),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

func (h *APIHTTP) GetStudent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.get_student")

	id := c.Param("id")
	orders, err := h.Repo.ListOrdersByStudent(ctx, id)
	if err != nil {
		l.Error("get_student_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if len(orders) == 0 {
		l.Warn("get_student_error", "status", 404, "student_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "student not found")
	}

	rollup := stats.Rollup(orders)
	detail := transport.StudentDetail{Student: rollup[0]}
	for _, o := range orders {
		detail.Orders = append(detail.Orders, transport.StudentOrder{
			OrderNumber: o.OrderNumber,
			Total:       o.Total,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *APIHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.stats")

	orders, err := h.Repo.ScanOrders(ctx)
	if err != nil {
		l.Error("stats_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, stats.Summarize(orders, time.Now()))
}
