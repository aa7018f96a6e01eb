package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrEmptyCart rejects placing an order from a cart with no items.
var ErrEmptyCart = goerrors.New("cart is empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidStatusChange rejects transitions outside the order status
// flow.
var ErrInvalidStatusChange = goerrors.New("invalid order status transition", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// Orders is the order repository.
type Orders interface {
	Place(ctx context.Context, user *User, cart *Cart) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64, pageable Pageable) (Page[*Order], error)
	List(ctx context.Context, pageable Pageable) (Page[*Order], error)
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error)
}

type orders struct {
	db *bun.DB
}

var _ Orders = (*orders)(nil)

// NewOrdersRepository creates the order repository
func NewOrdersRepository(db *bun.DB) Orders {
	return &orders{db: db}
}

// Place snapshots the cart into an order inside one transaction: order
// header, frozen item lines, stock decrements, then the cart is emptied.
func (r *orders) Place(ctx context.Context, user *User, cart *Cart) (*Order, error) {
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		Number:     uuid.NewString(),
		UserID:     user.ID,
		Status:     OrderStatusPending,
		TotalCents: cart.TotalCents(),
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Returning("*").Exec(ctx); err != nil {
			return err
		}

		for _, item := range cart.Items {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			line := &OrderItem{
				OrderID:        order.ID,
				ProductID:      item.ProductID,
				ProductName:    name,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
			}
			if _, err := tx.NewInsert().Model(line).Exec(ctx); err != nil {
				return err
			}

			res, err := tx.NewUpdate().
				Model((*Product)(nil)).
				Set("stock_quantity = stock_quantity - ?", item.Quantity).
				Where("prd.product_id = ?", item.ProductID).
				Where("prd.stock_quantity >= ?", item.Quantity).
				Exec(ctx)
			if err != nil {
				return err
			}
			if affected, err := res.RowsAffected(); err == nil && affected == 0 {
				return goerrors.New("insufficient stock", goerrors.CategoryConflict).
					WithCode(goerrors.CodeConflict).
					WithMetadata(map[string]any{"product_id": item.ProductID})
			}
		}

		_, err := tx.NewDelete().
			Model((*CartItem)(nil)).
			Where("cti.cart_id = ?", cart.ID).
			Exec(ctx)
		return err
	})
	if err != nil {
		var rich *goerrors.Error
		if goerrors.As(err, &rich) {
			return nil, rich
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to place order")
	}

	return r.GetByID(ctx, order.ID)
}

func (r *orders) GetByID(ctx context.Context, id int64) (*Order, error) {
	order := new(Order)
	err := r.db.NewSelect().
		Model(order).
		Relation("Items").
		Relation("User").
		Where("ord.order_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "order not found")
	}
	return order, nil
}

func (r *orders) ListByUser(ctx context.Context, userID int64, pageable Pageable) (Page[*Order], error) {
	var items []*Order
	count, err := r.db.NewSelect().
		Model(&items).
		Relation("Items").
		Where("ord.user_id = ?", userID).
		Order("ord.placed_at DESC").
		Limit(pageable.Size).
		Offset(pageable.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return Page[*Order]{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list orders")
	}

	return Page[*Order]{
		Items:      items,
		Number:     pageable.Page,
		Size:       pageable.Size,
		TotalCount: count,
	}, nil
}

func (r *orders) List(ctx context.Context, pageable Pageable) (Page[*Order], error) {
	var items []*Order
	count, err := r.db.NewSelect().
		Model(&items).
		Relation("Items").
		Relation("User").
		Order("ord.placed_at DESC").
		Limit(pageable.Size).
		Offset(pageable.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return Page[*Order]{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list orders")
	}

	return Page[*Order]{
		Items:      items,
		Number:     pageable.Page,
		Size:       pageable.Size,
		TotalCount: count,
	}, nil
}

// UpdateStatus advances the order along the status flow, refusing jumps
// the flow does not allow.
func (r *orders) UpdateStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusChange
	}

	order.Status = status
	if _, err := r.db.NewUpdate().
		Model(order).
		Column("status").
		WherePK().
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update order status")
	}
	return order, nil
}
