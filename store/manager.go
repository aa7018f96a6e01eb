package store

import (
	"context"

	"github.com/uptrace/bun"
)

// Manager aggregates the repositories so wiring passes one handle around.
type Manager struct {
	db *bun.DB

	users      Users
	categories Categories
	products   Products
	carts      Carts
	orders     Orders
	reviews    Reviews
}

// NewManager creates the repository manager
func NewManager(db *bun.DB) *Manager {
	return &Manager{
		db:         db,
		users:      NewUsersRepository(db),
		categories: NewCategoriesRepository(db),
		products:   NewProductsRepository(db),
		carts:      NewCartsRepository(db),
		orders:     NewOrdersRepository(db),
		reviews:    NewReviewsRepository(db),
	}
}

func (m *Manager) Users() Users           { return m.users }
func (m *Manager) Categories() Categories { return m.categories }
func (m *Manager) Products() Products     { return m.products }
func (m *Manager) Carts() Carts           { return m.carts }
func (m *Manager) Orders() Orders         { return m.orders }
func (m *Manager) Reviews() Reviews       { return m.reviews }

// DB exposes the underlying handle for wiring-level concerns.
func (m *Manager) DB() *bun.DB { return m.db }

// models in dependency order; ResetSchema drops in reverse.
var models = []any{
	(*User)(nil),
	(*Category)(nil),
	(*Product)(nil),
	(*Review)(nil),
	(*Cart)(nil),
	(*CartItem)(nil),
	(*Order)(nil),
	(*OrderItem)(nil),
}

// CreateSchema creates every table if missing. Development convenience;
// production deployments run real migrations.
func (m *Manager) CreateSchema(ctx context.Context) error {
	for _, model := range models {
		if _, err := m.db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ResetSchema drops and recreates every table. Tests only.
func (m *Manager) ResetSchema(ctx context.Context) error {
	for i := len(models) - 1; i >= 0; i-- {
		if _, err := m.db.NewDropTable().
			Model(models[i]).
			IfExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return m.CreateSchema(ctx)
}
