package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// AdminUsersController lets admins review accounts and flip the active
// flag the auth core reads on every login and remember-me validation.
type AdminUsersController struct {
	users  store.Users
	logger auth.Logger
}

// NewAdminUsersController creates the admin user controller
func NewAdminUsersController(repos *store.Manager, logger auth.Logger) *AdminUsersController {
	return &AdminUsersController{
		users:  repos.Users(),
		logger: logger,
	}
}

// List renders paginated accounts.
func (h *AdminUsersController) List(c *fiber.Ctx) error {
	pageable := store.NewPageable(c.QueryInt("page", 0), c.QueryInt("size", 20))

	page, err := h.users.List(c.Context(), pageable)
	if err != nil {
		return err
	}

	return render(c, "admin/user_list", fiber.Map{"page": page})
}

// TogglePost flips an account between ACTIVE and INACTIVE. Deactivation
// takes effect on the user's next request: their session keeps working
// until it expires, but logins and remember-me tokens stop resolving.
func (h *AdminUsersController) TogglePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return redirectFlashError(c, "/admin/users", "user not found")
		}
		return err
	}

	subject := auth.SubjectFromCtx(c)
	if subject != nil && subject.Email == user.Email {
		return redirectFlashError(c, "/admin/users", "you cannot deactivate your own account")
	}

	status := store.UserStatusInactive
	if !user.Status.IsActive() {
		status = store.UserStatusActive
	}

	if _, err := h.users.SetStatus(c.Context(), id, status); err != nil {
		return err
	}

	h.logger.Info("user status changed", "email", user.Email, "status", status)
	return redirectFlash(c, "/admin/users", "User status updated")
}
