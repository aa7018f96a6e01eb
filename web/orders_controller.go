package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// OrdersController serves a user's own orders; placing one drains the
// cart. Admin order management lives in the admin controller.
type OrdersController struct {
	orders store.Orders
	carts  store.Carts
	users  store.Users
	logger auth.Logger
}

// NewOrdersController creates the orders controller
func NewOrdersController(repos *store.Manager, logger auth.Logger) *OrdersController {
	return &OrdersController{
		orders: repos.Orders(),
		carts:  repos.Carts(),
		users:  repos.Users(),
		logger: logger,
	}
}

func (h *OrdersController) currentUser(c *fiber.Ctx) (*store.User, error) {
	subject := auth.SubjectFromCtx(c)
	if subject == nil {
		return nil, fiber.ErrUnauthorized
	}
	return h.users.GetByEmail(c.Context(), subject.Email)
}

// List renders the user's order history.
func (h *OrdersController) List(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	pageable := store.NewPageable(c.QueryInt("page", 0), c.QueryInt("size", 10))
	page, err := h.orders.ListByUser(c.Context(), user.ID, pageable)
	if err != nil {
		return err
	}

	return render(c, "orders", fiber.Map{"page": page})
}

// Detail renders one order; users only see their own.
func (h *OrdersController) Detail(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	order, err := h.orders.GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return fiber.ErrNotFound
		}
		return err
	}

	subject := auth.SubjectFromCtx(c)
	if order.UserID != user.ID && !subject.HasRole(auth.RoleAdmin) {
		return fiber.ErrNotFound
	}

	return render(c, "order_detail", fiber.Map{"order": order})
}

// Place turns the current cart into an order.
func (h *OrdersController) Place(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	cart, err := h.carts.GetOrCreate(c.Context(), user.ID)
	if err != nil {
		return err
	}

	order, err := h.orders.Place(c.Context(), user, cart)
	if err != nil {
		h.logger.Warn("order placement failed", "user", user.Email, "error", err)
		return redirectFlashError(c, "/cart", "could not place order")
	}

	return redirectFlash(c, "/orders/"+strconv.FormatInt(order.ID, 10), "order placed")
}
