package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/cart"
	"github.com/cklam2/canteen/internal/events"
	"github.com/cklam2/canteen/internal/logging"
	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/repo"
)

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrInvalidTransition = errors.New("invalid transition") // 409
	ErrConflict          = errors.New("conflict")           // 409
)

type Service struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// Checkout freezes the cart into an order. Line prices are the effective
// unit prices from the pricing engine, so the stored total is exactly the
// sum of line totals and never changes when the menu does.
func (s *Service) Checkout(ctx context.Context, studentID, studentName string, items []cart.Item) (*models.Order, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id required", ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if items[i].Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
	}

	lines := cart.Price(items)

	var total int64
	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		total += int64(l.Quantity) * l.UnitPrice
		orderItems = append(orderItems, models.OrderItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	order := &models.Order{
		StudentID:   studentID,
		StudentName: studentName,
		Items:       orderItems,
		Total:       total,
		Status:      models.StatusReceived,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.StudentID, map[string]any{
		"type":         "order_created",
		"order_id":     created.ID,
		"order_number": created.OrderNumber,
		"student_id":   created.StudentID,
		"total":        created.Total,
	})
	return created, nil
}

// Transition moves an order one step along the lifecycle. The update is a
// compare-and-swap on the current status; on a concurrent staff action it
// re-fetches and retries once before giving up with ErrConflict.
func (s *Service) Transition(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	current, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if !CanTransition(current.Status, next) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		err = s.Repo.UpdateOrderStatus(ctx, id, current.Status, next)
		if err == nil {
			break
		}
		if !errors.Is(err, repo.ErrStaleStatus) {
			return nil, err
		}

		// Lost the race: somebody moved the order under us. One re-fetch,
		// one more try.
		current, err = s.Repo.GetOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
			}
			return nil, err
		}
		if attempt >= 1 {
			return nil, fmt.Errorf("%w: concurrent update on order %s", ErrConflict, id)
		}
	}

	updated, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated.StudentID, map[string]any{
		"type":         "order_status_changed",
		"order_id":     updated.ID,
		"order_number": updated.OrderNumber,
		"status":       updated.Status,
	})
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *Service) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListOrdersByStatus(ctx, status)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]models.Order, error) {
	return s.Repo.ListOrdersByStudent(ctx, studentID)
}

func (s *Service) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", event["type"], "error", err)
	}
}
