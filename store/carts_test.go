package store_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartify/cartify/auth"
)

func TestCartsGetOrCreate(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)

	cart, err := m.Carts().GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Empty(t, cart.Items)

	// Second call returns the same cart, not a new one.
	again, err := m.Carts().GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartsAddItem(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	cart, err := m.Carts().AddItem(ctx, user.ID, product, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, product.PriceCents, cart.Items[0].UnitPriceCents)
	assert.EqualValues(t, 2*product.PriceCents, cart.TotalCents())

	t.Run("same product merges into one line", func(t *testing.T) {
		cart, err := m.Carts().AddItem(ctx, user.ID, product, 3)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("unit price stays frozen after a price change", func(t *testing.T) {
		product.PriceCents = 19999
		_, err := m.Products().Update(ctx, product)
		require.NoError(t, err)

		cart, err := m.Carts().GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 12999, cart.Items[0].UnitPriceCents)
	})
}

func TestCartsUpdateQuantity(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	cart, err := m.Carts().AddItem(ctx, user.ID, product, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = m.Carts().UpdateQuantity(ctx, user.ID, itemID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	t.Run("zero quantity removes the line", func(t *testing.T) {
		cart, err := m.Carts().UpdateQuantity(ctx, user.ID, itemID, 0)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		_, err := m.Carts().UpdateQuantity(ctx, user.ID, 9999, 1)
		assert.True(t, goerrors.IsNotFound(err))
	})
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	carol := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	dave := createUser(t, m, "dave@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	carolCart, err := m.Carts().AddItem(ctx, carol.ID, product, 1)
	require.NoError(t, err)

	// Dave cannot touch a line in Carol's cart.
	_, err = m.Carts().UpdateQuantity(ctx, dave.ID, carolCart.Items[0].ID, 5)
	assert.True(t, goerrors.IsNotFound(err))

	daveCart, err := m.Carts().GetOrCreate(ctx, dave.ID)
	require.NoError(t, err)
	assert.Empty(t, daveCart.Items)
}

func TestCartsClear(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := createUser(t, m, "carol@example.com", auth.RoleCustomer)
	_, product := createCatalog(t, m)

	_, err := m.Carts().AddItem(ctx, user.ID, product, 2)
	require.NoError(t, err)

	require.NoError(t, m.Carts().Clear(ctx, user.ID))

	cart, err := m.Carts().GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.EqualValues(t, 0, cart.TotalCents())
}
