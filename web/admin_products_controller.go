package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// AdminProductsController is the back-office product CRUD.
type AdminProductsController struct {
	products   store.Products
	categories store.Categories
	logger     auth.Logger
}

// NewAdminProductsController creates the admin product controller
func NewAdminProductsController(repos *store.Manager, logger auth.Logger) *AdminProductsController {
	return &AdminProductsController{
		products:   repos.Products(),
		categories: repos.Categories(),
		logger:     logger,
	}
}

// List renders paginated products including inactive ones.
func (h *AdminProductsController) List(c *fiber.Ctx) error {
	pageable := store.NewPageable(c.QueryInt("page", 0), c.QueryInt("size", 10))

	page, err := h.products.List(c.Context(), pageable, false)
	if err != nil {
		return err
	}

	return render(c, "admin/product_list", fiber.Map{"page": page})
}

// CreateShow renders the empty product form.
func (h *AdminProductsController) CreateShow(c *fiber.Ctx) error {
	categories, err := h.categories.ListActive(c.Context())
	if err != nil {
		return err
	}

	return render(c, "admin/product_form", fiber.Map{
		"form_action": "/admin/products",
		"form_title":  "Add Product",
		"categories":  categories,
	})
}

// CreatePost handles the create form submission.
func (h *AdminProductsController) CreatePost(c *fiber.Ctx) error {
	form := new(ProductForm)
	if err := c.BodyParser(form); err != nil {
		return redirectFlashError(c, "/admin/products", "invalid form submission")
	}

	if err := form.Validate(); err != nil {
		categories, cerr := h.categories.ListActive(c.Context())
		if cerr != nil {
			return cerr
		}
		return render(c, "admin/product_form", fiber.Map{
			"form_action": "/admin/products",
			"form_title":  "Add Product",
			"categories":  categories,
			"validation":  err.Error(),
			"form":        form,
		})
	}

	if _, err := h.products.Create(c.Context(), &store.Product{
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  form.PriceCents,
		Stock:       form.Stock,
		ImagePath:   form.ImagePath,
		CategoryID:  form.CategoryID,
	}); err != nil {
		return err
	}

	return redirectFlash(c, "/admin/products", "Product created successfully")
}

// EditShow renders the edit form pre-filled from the row.
func (h *AdminProductsController) EditShow(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	product, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/products", "product not found")
		}
		return err
	}

	categories, err := h.categories.ListActive(c.Context())
	if err != nil {
		return err
	}

	return render(c, "admin/product_form", fiber.Map{
		"form_action": "/admin/products/update/" + c.Params("id"),
		"form_title":  "Edit Product",
		"categories":  categories,
		"form": ProductForm{
			Name:        product.Name,
			Description: product.Description,
			PriceCents:  product.PriceCents,
			Stock:       product.Stock,
			ImagePath:   product.ImagePath,
			CategoryID:  product.CategoryID,
		},
	})
}

// UpdatePost processes the edit form.
func (h *AdminProductsController) UpdatePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	form := new(ProductForm)
	if err := c.BodyParser(form); err != nil {
		return redirectFlashError(c, "/admin/products", "invalid form submission")
	}

	if err := form.Validate(); err != nil {
		categories, cerr := h.categories.ListActive(c.Context())
		if cerr != nil {
			return cerr
		}
		return render(c, "admin/product_form", fiber.Map{
			"form_action": "/admin/products/update/" + c.Params("id"),
			"form_title":  "Edit Product",
			"categories":  categories,
			"validation":  err.Error(),
			"form":        form,
		})
	}

	if _, err := h.products.Update(c.Context(), &store.Product{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  form.PriceCents,
		Stock:       form.Stock,
		ImagePath:   form.ImagePath,
		CategoryID:  form.CategoryID,
	}); err != nil {
		return err
	}

	return redirectFlash(c, "/admin/products", "Product updated successfully")
}

// TogglePost flips the product's active flag.
func (h *AdminProductsController) TogglePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	if _, err := h.products.ToggleActive(c.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/products", "product not found")
		}
		return err
	}

	return redirectFlash(c, "/admin/products", "Product status updated")
}
