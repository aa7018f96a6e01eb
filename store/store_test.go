package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// newTestManager opens a fresh in-memory database with the full schema.
func newTestManager(t *testing.T) *store.Manager {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=private")
	require.NoError(t, err)
	// In-memory sqlite lives and dies with its single connection.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	m := store.NewManager(db)
	require.NoError(t, m.CreateSchema(context.Background()))
	return m
}

func createUser(t *testing.T, m *store.Manager, email string, role auth.Role) *store.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user, err := m.Users().Register(context.Background(), &store.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       store.UserStatusActive,
	})
	require.NoError(t, err)
	return user
}

func createCatalog(t *testing.T, m *store.Manager) (*store.Category, *store.Product) {
	t.Helper()
	ctx := context.Background()

	category, err := m.Categories().Create(ctx, &store.Category{
		Name:     "Electronics",
		IsActive: true,
	})
	require.NoError(t, err)

	product, err := m.Products().Create(ctx, &store.Product{
		Name:       "Mechanical Keyboard",
		PriceCents: 12999,
		Stock:      10,
		IsActive:   true,
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	return category, product
}
