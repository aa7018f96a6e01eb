package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// AdminOrdersController is the back-office order dashboard: every order,
// with status transitions along the fulfilment flow.
type AdminOrdersController struct {
	orders store.Orders
	logger auth.Logger
}

// NewAdminOrdersController creates the admin order controller
func NewAdminOrdersController(repos *store.Manager, logger auth.Logger) *AdminOrdersController {
	return &AdminOrdersController{
		orders: repos.Orders(),
		logger: logger,
	}
}

// List renders every order, newest first.
func (h *AdminOrdersController) List(c *fiber.Ctx) error {
	pageable := store.NewPageable(c.QueryInt("page", 0), c.QueryInt("size", 20))

	page, err := h.orders.List(c.Context(), pageable)
	if err != nil {
		return err
	}

	return render(c, "admin/order_list", fiber.Map{"page": page})
}

// StatusPost advances an order along the status flow.
func (h *AdminOrdersController) StatusPost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	status := store.OrderStatus(c.FormValue("status"))
	order, err := h.orders.UpdateStatus(c.Context(), id, status)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/orders", "order not found")
		}
		h.logger.Warn("order status change rejected", "order_id", id, "status", status, "error", err)
		return redirectFlashError(c, "/admin/orders", "invalid status change")
	}

	h.logger.Info("order status changed", "order", order.Number, "status", order.Status)
	return redirectFlash(c, "/admin/orders", "Order status updated")
}

// Dashboard renders the admin landing page.
func (h *AdminOrdersController) Dashboard(c *fiber.Ctx) error {
	pageable := store.NewPageable(0, 5)
	page, err := h.orders.List(c.Context(), pageable)
	if err != nil {
		return err
	}

	return render(c, "admin/dashboard", fiber.Map{
		"recent_orders": page.Items,
		"order_count":   page.TotalCount,
	})
}
