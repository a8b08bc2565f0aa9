package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/transport"
)

func TestCart_RequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.doJSON(http.MethodGet, "/cart", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCart_AddAndPrice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mealID, drinkID := env.seedMenu()
	token := env.studentToken("s1234567", "Ada Wong")

	rec := env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{
		ItemID: mealID, Type: "meal", Quantity: 1,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{
		ItemID: drinkID, Type: "drink", Quantity: 2,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(45+15+20), resp.Total)
	assert.Equal(t, 3, resp.ItemCount)
	require.Len(t, resp.Items, 2)
}

func TestCart_AddUnknownItem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedMenu()
	token := env.studentToken("s1", "Ada")

	rec := env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{
		ItemID: "no-such-item", Type: "meal",
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_AddUnavailableItem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mealID, _ := env.seedMenu()
	require.NoError(t, env.DB.Model(&models.MenuItem{}).Where("id = ?", mealID).Update("available", false).Error)

	token := env.studentToken("s1", "Ada")
	rec := env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{
		ItemID: mealID, Type: "meal",
	}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mealID, drinkID := env.seedMenu()
	token := env.studentToken("s1234567", "Ada Wong")

	env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{ItemID: mealID, Type: "meal"}, token)
	env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{ItemID: drinkID, Type: "drink", Quantity: 2}, token)

	rec := env.doJSON(http.MethodPost, "/orders", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.StatusReceived, created.Status)
	assert.Equal(t, int64(80), created.Total)
	assert.Equal(t, "s1234567", created.StudentID)
	assert.Equal(t, "Ada Wong", created.StudentName)
	assert.Positive(t, created.OrderNumber)

	// Cart is discarded on checkout.
	rec = env.doJSON(http.MethodGet, "/cart", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var cartResp transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Zero(t, cartResp.Total)
	assert.Empty(t, cartResp.Items)

	// The order shows up in the student's own list.
	rec = env.doJSON(http.MethodGet, "/orders", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.studentToken("s1", "Ada")

	rec := env.doJSON(http.MethodPost, "/orders", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_OwnerOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mealID, _ := env.seedMenu()

	owner := env.studentToken("s1", "Ada")
	env.doJSON(http.MethodPost, "/cart/items", transport.AddCartItemRequest{ItemID: mealID, Type: "meal"}, owner)
	rec := env.doJSON(http.MethodPost, "/orders", nil, owner)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.doJSON(http.MethodGet, "/orders/"+created.ID, nil, owner)
	assert.Equal(t, http.StatusOK, rec.Code)

	other := env.studentToken("s2", "Ben")
	rec = env.doJSON(http.MethodGet, "/orders/"+created.ID, nil, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	staff := env.staffToken("Canteen Staff")
	rec = env.doJSON(http.MethodGet, "/orders/"+created.ID, nil, staff)
	assert.Equal(t, http.StatusOK, rec.Code)
}
