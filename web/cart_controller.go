package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// CartController drives the customer's shopping cart. Every route under
// /cart is gated to ROLE_CUSTOMER by the rule table before a handler
// runs.
type CartController struct {
	carts    store.Carts
	products store.Products
	users    store.Users
	logger   auth.Logger
}

// NewCartController creates the cart controller
func NewCartController(repos *store.Manager, logger auth.Logger) *CartController {
	return &CartController{
		carts:    repos.Carts(),
		products: repos.Products(),
		users:    repos.Users(),
		logger:   logger,
	}
}

// currentUser resolves the request subject back to its user row.
func (h *CartController) currentUser(c *fiber.Ctx) (*store.User, error) {
	subject := auth.SubjectFromCtx(c)
	if subject == nil {
		return nil, fiber.ErrUnauthorized
	}
	return h.users.GetByEmail(c.Context(), subject.Email)
}

// Show renders the cart page.
func (h *CartController) Show(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	cart, err := h.carts.GetOrCreate(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return render(c, "cart", fiber.Map{
		"cart":        cart,
		"total_cents": cart.TotalCents(),
	})
}

// Add puts a product into the cart.
func (h *CartController) Add(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	productID, err := strconv.ParseInt(c.FormValue("product_id"), 10, 64)
	if err != nil {
		return redirectFlashError(c, "/products", "unknown product")
	}
	quantity, _ := strconv.Atoi(c.FormValue("quantity"))

	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/products", "unknown product")
		}
		return err
	}
	if !product.IsActive {
		return redirectFlashError(c, "/products", "product is unavailable")
	}

	if _, err := h.carts.AddItem(c.Context(), user.ID, product, quantity); err != nil {
		return err
	}

	return redirectFlash(c, "/cart", "added to cart")
}

// Update changes a line's quantity; zero removes it.
func (h *CartController) Update(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Params("itemID"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}
	quantity, _ := strconv.Atoi(c.FormValue("quantity"))

	if _, err := h.carts.UpdateQuantity(c.Context(), user.ID, itemID, quantity); err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/cart", "item no longer in cart")
		}
		return err
	}

	return c.Redirect("/cart", fiber.StatusSeeOther)
}

// Remove deletes a line from the cart.
func (h *CartController) Remove(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Params("itemID"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	if _, err := h.carts.RemoveItem(c.Context(), user.ID, itemID); err != nil {
		return err
	}

	return c.Redirect("/cart", fiber.StatusSeeOther)
}
