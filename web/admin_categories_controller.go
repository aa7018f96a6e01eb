package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// AdminCategoriesController is the back-office category CRUD. Every
// route is behind the /admin/** ADMIN rule.
type AdminCategoriesController struct {
	categories store.Categories
	logger     auth.Logger
}

// NewAdminCategoriesController creates the admin category controller
func NewAdminCategoriesController(repos *store.Manager, logger auth.Logger) *AdminCategoriesController {
	return &AdminCategoriesController{
		categories: repos.Categories(),
		logger:     logger,
	}
}

// List renders paginated categories with an optional active-only filter.
func (h *AdminCategoriesController) List(c *fiber.Ctx) error {
	pageable := store.NewPageable(c.QueryInt("page", 0), c.QueryInt("size", 10))
	activeOnly := c.QueryBool("activeOnly", false)

	page, err := h.categories.List(c.Context(), pageable, activeOnly)
	if err != nil {
		return err
	}

	return render(c, "admin/category_list", fiber.Map{
		"page":       page,
		"activeOnly": activeOnly,
	})
}

// CreateShow renders the empty category form.
func (h *AdminCategoriesController) CreateShow(c *fiber.Ctx) error {
	return render(c, "admin/category_form", fiber.Map{
		"form_action": "/admin/categories",
		"form_title":  "Add Category",
	})
}

// CreatePost handles the create form submission.
func (h *AdminCategoriesController) CreatePost(c *fiber.Ctx) error {
	form := new(CategoryForm)
	if err := c.BodyParser(form); err != nil {
		return redirectFlashError(c, "/admin/categories", "invalid form submission")
	}

	if err := form.Validate(); err != nil {
		return render(c, "admin/category_form", fiber.Map{
			"form_action": "/admin/categories",
			"form_title":  "Add Category",
			"validation":  err.Error(),
			"form":        form,
		})
	}

	if _, err := h.categories.Create(c.Context(), &store.Category{
		Name:        form.Name,
		Description: form.Description,
	}); err != nil {
		return err
	}

	return redirectFlash(c, "/admin/categories", "Category created successfully")
}

// EditShow renders the edit form pre-filled from the row.
func (h *AdminCategoriesController) EditShow(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	category, err := h.categories.GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/categories", "category not found")
		}
		return err
	}

	return render(c, "admin/category_form", fiber.Map{
		"form_action": "/admin/categories/update/" + c.Params("id"),
		"form_title":  "Edit Category",
		"form": CategoryForm{
			Name:        category.Name,
			Description: category.Description,
		},
	})
}

// UpdatePost processes the edit form.
func (h *AdminCategoriesController) UpdatePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	form := new(CategoryForm)
	if err := c.BodyParser(form); err != nil {
		return redirectFlashError(c, "/admin/categories", "invalid form submission")
	}

	if err := form.Validate(); err != nil {
		return render(c, "admin/category_form", fiber.Map{
			"form_action": "/admin/categories/update/" + c.Params("id"),
			"form_title":  "Edit Category",
			"validation":  err.Error(),
			"form":        form,
		})
	}

	if _, err := h.categories.Update(c.Context(), id, form.Name, form.Description); err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/categories", "category not found")
		}
		return err
	}

	return redirectFlash(c, "/admin/categories", "Category updated successfully")
}

// TogglePost flips the soft activate/deactivate flag.
func (h *AdminCategoriesController) TogglePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	if _, err := h.categories.ToggleActive(c.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/categories", "category not found")
		}
		return err
	}

	return redirectFlash(c, "/admin/categories", "Category status updated")
}
