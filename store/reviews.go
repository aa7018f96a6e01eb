package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ErrInvalidRating rejects ratings outside 1..5.
var ErrInvalidRating = goerrors.New("rating must be between 1 and 5", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// Reviews is the product review repository.
type Reviews interface {
	Create(ctx context.Context, review *Review) (*Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]*Review, error)
}

type reviews struct {
	db *bun.DB
}

var _ Reviews = (*reviews)(nil)

// NewReviewsRepository creates the review repository
func NewReviewsRepository(db *bun.DB) Reviews {
	return &reviews{db: db}
}

func (r *reviews) Create(ctx context.Context, review *Review) (*Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := r.db.NewInsert().Model(review).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create review")
	}
	return review, nil
}

func (r *reviews) ListByProduct(ctx context.Context, productID int64) ([]*Review, error) {
	var items []*Review
	err := r.db.NewSelect().
		Model(&items).
		Relation("User").
		Where("rev.product_id = ?", productID).
		Order("rev.review_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list reviews")
	}
	return items, nil
}
