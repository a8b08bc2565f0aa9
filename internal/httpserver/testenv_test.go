package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/auth"
	"github.com/cklam2/canteen/internal/cart"
	"github.com/cklam2/canteen/internal/menu"
	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/order"
	"github.com/cklam2/canteen/internal/repo"
)

const (
	testJWTSecret = "test-jwt-secret"
	testAPIToken  = "hsu_sk_test_token"
	testTokenTTL  = time.Hour
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Repo  *repo.GormRepo
	Carts *cart.Store
}

type recordingPublisher struct {
	events []map[string]any
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event map[string]any) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.MenuItem{},
		&models.Drink{},
		&models.User{},
		&models.OrderCounter{},
	))

	gormRepo := &repo.GormRepo{DB: db}
	carts := cart.NewStore()
	orderSvc := &order.Service{Repo: gormRepo, Events: &recordingPublisher{}}
	authSvc := &auth.Service{Repo: gormRepo, JWTSecret: []byte(testJWTSecret)}
	menuSvc := &menu.Service{Repo: gormRepo}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:  &AuthHTTP{Svc: authSvc},
		MenuHandler:  &MenuHTTP{Svc: menuSvc},
		CartHandler:  &CartHTTP{Carts: carts, Repo: gormRepo, Orders: orderSvc},
		OrderHandler: &OrderHTTP{Svc: orderSvc},
		AdminHandler: &AdminHTTP{Orders: orderSvc, Menu: menuSvc, Repo: gormRepo},
		APIHandler:   &APIHTTP{Repo: gormRepo},
		JWTSecret:    []byte(testJWTSecret),
		APIToken:     testAPIToken,
	})

	return &testEnv{T: t, E: e, DB: db, Repo: gormRepo, Carts: carts}
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) studentToken(studentID, name string) string {
	env.T.Helper()

	token, err := auth.CreateToken([]byte(testJWTSecret), studentID, name, auth.RoleStudent, testTokenTTL)
	require.NoError(env.T, err)
	return token
}

func (env *testEnv) staffToken(name string) string {
	env.T.Helper()

	token, err := auth.CreateToken([]byte(testJWTSecret), "staff-1", name, auth.RoleStaff, testTokenTTL)
	require.NoError(env.T, err)
	return token
}

func (env *testEnv) seedMenu() (mealID, drinkID string) {
	env.T.Helper()
	ctx := context.Background()

	meal, err := env.Repo.CreateMenuItem(ctx, &models.MenuItem{
		ID:                  "poke-bowl",
		Name:                "Poke Bowl",
		Price:               45,
		Category:            "bowls",
		HasDiscountedDrinks: true,
		Available:           true,
	})
	require.NoError(env.T, err)

	drink, err := env.Repo.CreateDrink(ctx, &models.Drink{
		ID:              "iced-tea",
		Name:            "Iced Tea",
		OriginalPrice:   20,
		DiscountedPrice: 15,
		Available:       true,
	})
	require.NoError(env.T, err)

	return meal.ID, drink.ID
}
