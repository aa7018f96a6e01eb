package store_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

func placeTestOrder(t *testing.T, m *store.Manager, user *store.User, product *store.Product, quantity int) *store.Order {
	t.Helper()
	ctx := context.Background()

	cart, err := m.Carts().AddItem(ctx, user.ID, product, quantity)
	require.NoError(t, err)

	order, err := m.Orders().Place(ctx, user, cart)
	require.NoError(t, err)
	return order
}

func TestOrdersPlace(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	order := placeTestOrder(t, m, user, product, 2)

	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.Number)
	assert.Equal(t, store.OrderStatusPending, order.Status)
	assert.EqualValues(t, 2*product.PriceCents, order.TotalCents)

	require.Len(t, order.Items, 1)
	assert.Equal(t, product.Name, order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, product.PriceCents, order.Items[0].UnitPriceCents)

	t.Run("stock is decremented", func(t *testing.T) {
		fresh, err := m.Products().GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, fresh.Stock)
	})

	t.Run("cart is drained", func(t *testing.T) {
		cart, err := m.Carts().GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestOrdersPlaceRejectsEmptyCart(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	cart, err := m.Carts().GetOrCreate(ctx, user.ID)
	require.NoError(t, err)

	_, err = m.Orders().Place(ctx, user, cart)
	assert.ErrorIs(t, err, store.ErrEmptyCart)
}

func TestOrdersPlaceRejectsInsufficientStock(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	cart, err := m.Carts().AddItem(ctx, user.ID, product, 11)
	require.NoError(t, err)

	_, err = m.Orders().Place(ctx, user, cart)
	require.Error(t, err)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	assert.Equal(t, goerrors.CategoryConflict, rich.Category)

	t.Run("transaction left nothing behind", func(t *testing.T) {
		fresh, err := m.Products().GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, fresh.Stock)

		page, err := m.Orders().ListByUser(ctx, user.ID, store.NewPageable(0, 10))
		require.NoError(t, err)
		assert.Empty(t, page.Items)

		// The cart survives the failed attempt.
		cart, err := m.Carts().GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})
}

func TestOrdersFreezePricesAtPlacement(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	order := placeTestOrder(t, m, user, product, 1)

	product.PriceCents = 25000
	_, err := m.Products().Update(ctx, product)
	require.NoError(t, err)

	fresh, err := m.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 12999, fresh.Items[0].UnitPriceCents)
	assert.EqualValues(t, 12999, fresh.TotalCents)
}

func TestOrdersStatusFlow(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)
	order := placeTestOrder(t, m, user, product, 1)

	t.Run("pending to processing", func(t *testing.T) {
		updated, err := m.Orders().UpdateStatus(ctx, order.ID, store.OrderStatusProcessing)
		require.NoError(t, err)
		assert.Equal(t, store.OrderStatusProcessing, updated.Status)
	})

	t.Run("processing cannot jump to delivered", func(t *testing.T) {
		_, err := m.Orders().UpdateStatus(ctx, order.ID, store.OrderStatusDelivered)
		assert.ErrorIs(t, err, store.ErrInvalidStatusChange)
	})

	t.Run("shipped then delivered", func(t *testing.T) {
		_, err := m.Orders().UpdateStatus(ctx, order.ID, store.OrderStatusShipped)
		require.NoError(t, err)

		updated, err := m.Orders().UpdateStatus(ctx, order.ID, store.OrderStatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, store.OrderStatusDelivered, updated.Status)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		_, err := m.Orders().UpdateStatus(ctx, order.ID, store.OrderStatusCancelled)
		assert.ErrorIs(t, err, store.ErrInvalidStatusChange)
	})
}

func TestOrdersListByUser(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	carol := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	dave := createUser(t, m, "dave@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	placeTestOrder(t, m, carol, product, 1)
	placeTestOrder(t, m, carol, product, 2)
	placeTestOrder(t, m, dave, product, 1)

	carolPage, err := m.Orders().ListByUser(ctx, carol.ID, store.NewPageable(0, 10))
	require.NoError(t, err)
	assert.Len(t, carolPage.Items, 2)

	davePage, err := m.Orders().ListByUser(ctx, dave.ID, store.NewPageable(0, 10))
	require.NoError(t, err)
	assert.Len(t, davePage.Items, 1)

	all, err := m.Orders().List(ctx, store.NewPageable(0, 10))
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.EqualValues(t, 3, all.TotalCount)
}

func TestOrdersGetByIDNotFound(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Orders().GetByID(context.Background(), 4242)
	assert.True(t, goerrors.IsNotFound(err))
}
