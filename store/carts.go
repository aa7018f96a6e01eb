package store

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Carts is the shopping-cart repository, one cart per user.
type Carts interface {
	GetOrCreate(ctx context.Context, userID int64) (*Cart, error)
	AddItem(ctx context.Context, userID int64, product *Product, quantity int) (*Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*Cart, error)
	Clear(ctx context.Context, userID int64) error
}

type carts struct {
	db *bun.DB
}

var _ Carts = (*carts)(nil)

// NewCartsRepository creates the cart repository
func NewCartsRepository(db *bun.DB) Carts {
	return &carts{db: db}
}

func (r *carts) GetOrCreate(ctx context.Context, userID int64) (*Cart, error) {
	cart := new(Cart)
	err := r.db.NewSelect().
		Model(cart).
		Relation("Items").
		Relation("Items.Product").
		Where("crt.user_id = ?", userID).
		Scan(ctx)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load cart")
	}

	cart = &Cart{UserID: userID}
	if _, err := r.db.NewInsert().Model(cart).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create cart")
	}
	return cart, nil
}

// AddItem appends the product to the user's cart, merging quantity into
// an existing line for the same product. The unit price is frozen at
// add time.
func (r *carts) AddItem(ctx context.Context, userID int64, product *Product, quantity int) (*Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		if item.ProductID == product.ID {
			return r.UpdateQuantity(ctx, userID, item.ID, item.Quantity+quantity)
		}
	}

	item := &CartItem{
		CartID:         cart.ID,
		ProductID:      product.ID,
		Quantity:       quantity,
		UnitPriceCents: product.PriceCents,
	}
	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to add cart item")
	}

	return r.GetOrCreate(ctx, userID)
}

func (r *carts) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*Cart, error) {
	if quantity < 1 {
		return r.RemoveItem(ctx, userID, itemID)
	}

	cart, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := r.db.NewUpdate().
		Model((*CartItem)(nil)).
		Set("quantity = ?", quantity).
		Where("cti.cart_item_id = ?", itemID).
		Where("cti.cart_id = ?", cart.ID).
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update cart item")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, goerrors.New("cart item not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}

	return r.GetOrCreate(ctx, userID)
}

func (r *carts) RemoveItem(ctx context.Context, userID, itemID int64) (*Cart, error) {
	cart, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.NewDelete().
		Model((*CartItem)(nil)).
		Where("cti.cart_item_id = ?", itemID).
		Where("cti.cart_id = ?", cart.ID).
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to remove cart item")
	}

	return r.GetOrCreate(ctx, userID)
}

// Clear empties the cart, typically after an order is placed.
func (r *carts) Clear(ctx context.Context, userID int64) error {
	cart, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := r.db.NewDelete().
		Model((*CartItem)(nil)).
		Where("cti.cart_id = ?", cart.ID).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear cart")
	}
	return nil
}
