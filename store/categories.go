package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Categories is the category repository behind the admin back-office and
// the public catalog.
type Categories interface {
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context, pageable Pageable, activeOnly bool) (Page[*Category], error)
	ListActive(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	Update(ctx context.Context, id int64, name, description string) (*Category, error)
	ToggleActive(ctx context.Context, id int64) (*Category, error)
}

type categories struct {
	db *bun.DB
}

var _ Categories = (*categories)(nil)

// NewCategoriesRepository creates the category repository
func NewCategoriesRepository(db *bun.DB) Categories {
	return &categories{db: db}
}

func (r *categories) GetByID(ctx context.Context, id int64) (*Category, error) {
	category := new(Category)
	err := r.db.NewSelect().
		Model(category).
		Where("cat.category_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "category not found")
	}
	return category, nil
}

func (r *categories) List(ctx context.Context, pageable Pageable, activeOnly bool) (Page[*Category], error) {
	var items []*Category
	q := r.db.NewSelect().
		Model(&items).
		Order("cat.category_name ASC")
	if activeOnly {
		q = q.Where("cat.is_active")
	}

	count, err := q.Limit(pageable.Size).Offset(pageable.Offset()).ScanAndCount(ctx)
	if err != nil {
		return Page[*Category]{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list categories")
	}

	return Page[*Category]{
		Items:      items,
		Number:     pageable.Page,
		Size:       pageable.Size,
		TotalCount: count,
	}, nil
}

// ListActive returns every active category, for the storefront navigation.
func (r *categories) ListActive(ctx context.Context) ([]*Category, error) {
	var items []*Category
	err := r.db.NewSelect().
		Model(&items).
		Where("cat.is_active").
		Order("cat.category_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list active categories")
	}
	return items, nil
}

func (r *categories) Create(ctx context.Context, category *Category) (*Category, error) {
	category.IsActive = true
	if _, err := r.db.NewInsert().Model(category).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create category")
	}
	return category, nil
}

func (r *categories) Update(ctx context.Context, id int64, name, description string) (*Category, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = description
	if _, err := r.db.NewUpdate().
		Model(category).
		Column("category_name", "description").
		WherePK().
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update category")
	}
	return category, nil
}

// ToggleActive flips the soft activate/deactivate flag.
func (r *categories) ToggleActive(ctx context.Context, id int64) (*Category, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.IsActive = !category.IsActive
	if _, err := r.db.NewUpdate().
		Model(category).
		Column("is_active").
		WherePK().
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to toggle category")
	}
	return category, nil
}
