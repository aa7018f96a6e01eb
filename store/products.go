package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Products is the product repository.
type Products interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, pageable Pageable, activeOnly bool) (Page[*Product], error)
	ListActiveByCategory(ctx context.Context, categoryID int64, pageable Pageable) (Page[*Product], error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	ToggleActive(ctx context.Context, id int64) (*Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) error
}

type products struct {
	db *bun.DB
}

var _ Products = (*products)(nil)

// NewProductsRepository creates the product repository
func NewProductsRepository(db *bun.DB) Products {
	return &products{db: db}
}

func (r *products) GetByID(ctx context.Context, id int64) (*Product, error) {
	product := new(Product)
	err := r.db.NewSelect().
		Model(product).
		Relation("Category").
		Relation("Reviews").
		Where("prd.product_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "product not found")
	}
	return product, nil
}

func (r *products) List(ctx context.Context, pageable Pageable, activeOnly bool) (Page[*Product], error) {
	var items []*Product
	q := r.db.NewSelect().
		Model(&items).
		Relation("Category").
		Order("prd.product_name ASC")
	if activeOnly {
		q = q.Where("prd.is_active")
	}

	count, err := q.Limit(pageable.Size).Offset(pageable.Offset()).ScanAndCount(ctx)
	if err != nil {
		return Page[*Product]{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list products")
	}

	return Page[*Product]{
		Items:      items,
		Number:     pageable.Page,
		Size:       pageable.Size,
		TotalCount: count,
	}, nil
}

func (r *products) ListActiveByCategory(ctx context.Context, categoryID int64, pageable Pageable) (Page[*Product], error) {
	var items []*Product
	count, err := r.db.NewSelect().
		Model(&items).
		Where("prd.is_active").
		Where("prd.category_id = ?", categoryID).
		Order("prd.product_name ASC").
		Limit(pageable.Size).
		Offset(pageable.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return Page[*Product]{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list products by category")
	}

	return Page[*Product]{
		Items:      items,
		Number:     pageable.Page,
		Size:       pageable.Size,
		TotalCount: count,
	}, nil
}

func (r *products) Create(ctx context.Context, product *Product) (*Product, error) {
	product.IsActive = true
	if _, err := r.db.NewInsert().Model(product).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create product")
	}
	return product, nil
}

func (r *products) Update(ctx context.Context, product *Product) (*Product, error) {
	if _, err := r.db.NewUpdate().
		Model(product).
		Column("product_name", "description", "price_cents", "stock_quantity", "image_path", "category_id").
		WherePK().
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update product")
	}
	return product, nil
}

func (r *products) ToggleActive(ctx context.Context, id int64) (*Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsActive = !product.IsActive
	if _, err := r.db.NewUpdate().
		Model(product).
		Column("is_active").
		WherePK().
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to toggle product")
	}
	return product, nil
}

// AdjustStock applies a signed stock delta, refusing to go negative.
func (r *products) AdjustStock(ctx context.Context, id int64, delta int) error {
	res, err := r.db.NewUpdate().
		Model((*Product)(nil)).
		Set("stock_quantity = stock_quantity + ?", delta).
		Where("prd.product_id = ?", id).
		Where("prd.stock_quantity + ? >= 0", delta).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to adjust stock")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return goerrors.New("insufficient stock", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict)
	}
	return nil
}
