package order

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/cart"
	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCounter{},
	))
	return db
}

type recordingPublisher struct {
	events []map[string]any
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event map[string]any) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &Service{
		Repo:   &repo.GormRepo{DB: newTestDB(t)},
		Events: pub,
	}, pub
}

func testCart() []cart.Item {
	return []cart.Item{
		{ID: "poke-bowl", Name: "Poke Bowl", Price: 45, Quantity: 1, Type: cart.KindMeal, HasDiscountedDrinks: true},
		{ID: "iced-tea", Name: "Iced Tea", Price: 20, Quantity: 2, Type: cart.KindDrink, OriginalPrice: 20, DiscountedPrice: 15},
	}
}

func TestCheckout_FreezesEffectivePrices(t *testing.T) {
	t.Parallel()

	svc, pub := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1234567", "Ada Wong", testCart())
	require.NoError(t, err)

	assert.Equal(t, models.StatusReceived, created.Status)
	assert.Equal(t, int64(45+15+20), created.Total)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1), created.OrderNumber)

	// One discounted unit and one at list price: the straddling drink line
	// is split so total stays the exact sum of line totals.
	require.Len(t, created.Items, 3)
	var sum int64
	for _, it := range created.Items {
		sum += int64(it.Quantity) * it.UnitPrice
	}
	assert.Equal(t, created.Total, sum)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "order_created", pub.events[0]["type"])
}

func TestCheckout_OrderNumbersAreMonotonic(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, "s2", "B", testCart())
	require.NoError(t, err)

	assert.Equal(t, first.OrderNumber+1, second.OrderNumber)
}

func TestCheckout_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		studentID string
		items     []cart.Item
	}{
		{name: "empty cart", studentID: "s1", items: nil},
		{name: "missing student", studentID: "", items: testCart()},
		{name: "non-positive quantity", studentID: "s1", items: []cart.Item{
			{ID: "x", Name: "x", Price: 10, Quantity: 0, Type: cart.KindMeal},
		}},
		{name: "negative price", studentID: "s1", items: []cart.Item{
			{ID: "x", Name: "x", Price: -1, Quantity: 1, Type: cart.KindMeal},
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Checkout(ctx, tt.studentID, "A", tt.items)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTransition_WalksFullLifecycle(t *testing.T) {
	t.Parallel()

	svc, pub := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)

	steps := []models.OrderStatus{
		models.StatusPreparing,
		models.StatusReady,
		models.StatusTakenUnpaid,
		models.StatusCompleted,
	}
	for _, next := range steps {
		updated, err := svc.Transition(ctx, created.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
		assert.False(t, updated.UpdatedAt.IsZero())
	}

	// order_created plus one event per step.
	assert.Len(t, pub.events, 1+len(steps))
}

func TestTransition_RejectsIllegalEdges(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)

	// Skipping ahead is not allowed.
	_, err = svc.Transition(ctx, created.ID, models.StatusReady)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// ready → completed must pass through taken-unpaid.
	_, err = svc.Transition(ctx, created.ID, models.StatusPreparing)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, created.ID, models.StatusReady)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, created.ID, models.StatusCompleted)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// No going back.
	_, err = svc.Transition(ctx, created.ID, models.StatusReceived)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_TerminalStateIsFinal(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{
		models.StatusPreparing, models.StatusReady,
		models.StatusTakenUnpaid, models.StatusCompleted,
	} {
		_, err = svc.Transition(ctx, created.ID, next)
		require.NoError(t, err)
	}

	for _, next := range models.AllStatuses {
		_, err = svc.Transition(ctx, created.ID, next)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestTransition_UnknownOrder(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Transition(context.Background(), "no-such-order", models.StatusPreparing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransition_UnknownStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, created.ID, "cancelled")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransition_JudgesEdgeAgainstCurrentStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)

	// Another staff member already moved the order: the edge is judged
	// against the fresh status, not the one the caller last saw.
	require.NoError(t, svc.Repo.UpdateOrderStatus(ctx, created.ID, models.StatusReceived, models.StatusPreparing))

	updated, err := svc.Transition(ctx, created.ID, models.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, updated.Status)

	_, err = svc.Transition(ctx, created.ID, models.StatusReady)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderStatus_StaleStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)

	err = svc.Repo.UpdateOrderStatus(ctx, created.ID, models.StatusReady, models.StatusTakenUnpaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.ErrStaleStatus)
}

func TestQueries_FilterAndOrder(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Checkout(ctx, "s1", "A", testCart())
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, "s2", "B", testCart())
	require.NoError(t, err)
	_, err = svc.Transition(ctx, a.ID, models.StatusPreparing)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	preparing, err := svc.ListByStatus(ctx, models.StatusPreparing)
	require.NoError(t, err)
	require.Len(t, preparing, 1)
	assert.Equal(t, a.ID, preparing[0].ID)

	mine, err := svc.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	_, err = svc.ListByStatus(ctx, "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCanTransition_Table(t *testing.T) {
	t.Parallel()

	assert.True(t, CanTransition(models.StatusReceived, models.StatusPreparing))
	assert.True(t, CanTransition(models.StatusPreparing, models.StatusReady))
	assert.True(t, CanTransition(models.StatusReady, models.StatusTakenUnpaid))
	assert.True(t, CanTransition(models.StatusTakenUnpaid, models.StatusCompleted))

	assert.False(t, CanTransition(models.StatusReceived, models.StatusReady))
	assert.False(t, CanTransition(models.StatusReady, models.StatusCompleted))
	assert.False(t, CanTransition(models.StatusCompleted, models.StatusReceived))
	assert.False(t, CanTransition(models.StatusPreparing, models.StatusPreparing))
}
