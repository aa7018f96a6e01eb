package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// CatalogController serves the public storefront: home page, product
// listing, and product detail with reviews.
type CatalogController struct {
	categories store.Categories
	products   store.Products
	reviews    store.Reviews
	users      store.Users
	logger     auth.Logger
}

// NewCatalogController creates the catalog controller
func NewCatalogController(repos *store.Manager, logger auth.Logger) *CatalogController {
	return &CatalogController{
		categories: repos.Categories(),
		products:   repos.Products(),
		reviews:    repos.Reviews(),
		users:      repos.Users(),
		logger:     logger,
	}
}

// Home renders the storefront landing page with active categories.
func (h *CatalogController) Home(c *fiber.Ctx) error {
	categories, err := h.categories.ListActive(c.Context())
	if err != nil {
		return err
	}

	page, err := h.products.List(c.Context(), store.NewPageable(0, 8), true)
	if err != nil {
		return err
	}

	return render(c, "home", fiber.Map{
		"categories": categories,
		"featured":   page.Items,
	})
}

// Products lists active products, optionally filtered by category.
func (h *CatalogController) Products(c *fiber.Ctx) error {
	pageable := store.NewPageable(c.QueryInt("page", 0), c.QueryInt("size", 12))

	var (
		page store.Page[*store.Product]
		err  error
	)
	if categoryID := int64(c.QueryInt("category", 0)); categoryID > 0 {
		page, err = h.products.ListActiveByCategory(c.Context(), categoryID, pageable)
	} else {
		page, err = h.products.List(c.Context(), pageable, true)
	}
	if err != nil {
		return err
	}

	categories, err := h.categories.ListActive(c.Context())
	if err != nil {
		return err
	}

	return render(c, "products", fiber.Map{
		"page":       page,
		"categories": categories,
	})
}

// ProductDetail renders one product with its reviews.
func (h *CatalogController) ProductDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	product, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return fiber.ErrNotFound
		}
		return err
	}

	reviews, err := h.reviews.ListByProduct(c.Context(), product.ID)
	if err != nil {
		return err
	}

	return render(c, "product_detail", fiber.Map{
		"product": product,
		"reviews": reviews,
	})
}

// ReviewPost records a review from the authenticated subject.
func (h *CatalogController) ReviewPost(c *fiber.Ctx) error {
	subject := auth.SubjectFromCtx(c)
	if subject == nil {
		return fiber.ErrUnauthorized
	}

	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	form := new(ReviewForm)
	if err := c.BodyParser(form); err != nil {
		return redirectFlashError(c, productPath(productID), "invalid review")
	}
	if err := form.Validate(); err != nil {
		return redirectFlashError(c, productPath(productID), "rating must be between 1 and 5")
	}

	user, err := h.users.GetByEmail(c.Context(), subject.Email)
	if err != nil {
		return err
	}

	if _, err := h.reviews.Create(c.Context(), &store.Review{
		Rating:    form.Rating,
		Comment:   form.Comment,
		UserID:    user.ID,
		ProductID: productID,
	}); err != nil {
		h.logger.Warn("review rejected", "product_id", productID, "error", err)
		return redirectFlashError(c, productPath(productID), "could not save review")
	}

	return redirectFlash(c, productPath(productID), "review saved")
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}
