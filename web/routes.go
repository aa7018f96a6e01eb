package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// AccessRules is the ordered authorization table. Declaration order is
// load-bearing: the matcher stops at the first pattern that matches, so
// the admin sub-sections sit above the /admin/** catch-all and nothing
// may ever precede /error/** with a stricter requirement, or the denied
// redirect would loop.
func AccessRules() []auth.Rule {
	return []auth.Rule{
		// Public pages: anyone, authenticated or not.
		{Pattern: "/", Requirement: auth.Public()},
		{Pattern: "/home", Requirement: auth.Public()},
		{Pattern: "/register", Requirement: auth.Public()},
		{Pattern: "/login", Requirement: auth.Public()},
		{Pattern: "/products/**", Requirement: auth.Public()},

		// Static resources never require authentication.
		{Pattern: "/css/**", Requirement: auth.Public()},
		{Pattern: "/js/**", Requirement: auth.Public()},
		{Pattern: "/images/**", Requirement: auth.Public()},

		// Error pages must stay public so the denied redirect can land.
		{Pattern: "/error/**", Requirement: auth.Public()},

		// Admin sub-sections, declared before the catch-all.
		{Pattern: "/admin/products/**", Requirement: auth.HasRole(auth.RoleAdmin)},
		{Pattern: "/admin/orders/**", Requirement: auth.HasRole(auth.RoleAdmin)},
		{Pattern: "/admin/users/**", Requirement: auth.HasRole(auth.RoleAdmin)},

		// Admin catch-all covers /admin/dashboard and anything unlisted.
		{Pattern: "/admin/**", Requirement: auth.HasRole(auth.RoleAdmin)},

		// Only customers carry a cart.
		{Pattern: "/cart/**", Requirement: auth.HasRole(auth.RoleCustomer)},

		// Both roles can view order pages.
		{Pattern: "/orders/**", Requirement: auth.Authenticated()},

		// Logout is public: the handler only clears cookies, and gating
		// it would bounce anonymous posts through the login redirect.
		{Pattern: "/logout", Requirement: auth.Public()},
	}
}

// Register wires every controller onto the app. The guard middleware
// must already be installed; handlers assume the rule table ran.
func Register(app *fiber.App, repos *store.Manager, authn *auth.Authenticator, guard *auth.Guard, logger auth.Logger) {
	authCtrl := NewAuthController(authn, guard, repos.Users(), logger)
	catalog := NewCatalogController(repos, logger)
	cart := NewCartController(repos, logger)
	orders := NewOrdersController(repos, logger)
	adminCategories := NewAdminCategoriesController(repos, logger)
	adminProducts := NewAdminProductsController(repos, logger)
	adminUsers := NewAdminUsersController(repos, logger)
	adminOrders := NewAdminOrdersController(repos, logger)

	app.Get("/", catalog.Home)
	app.Get("/home", catalog.Home)
	app.Get("/products", catalog.Products)
	app.Get("/products/:id", catalog.ProductDetail)
	app.Post("/products/:id/reviews", catalog.ReviewPost)

	app.Get("/login", authCtrl.LoginShow)
	app.Post("/login", authCtrl.LoginPost)
	app.Post("/logout", authCtrl.Logout)
	app.Get("/register", authCtrl.RegisterShow)
	app.Post("/register", authCtrl.RegisterPost)

	app.Get("/error/403", AccessDenied)

	app.Get("/cart", cart.Show)
	app.Post("/cart/items", cart.Add)
	app.Post("/cart/items/:itemID", cart.Update)
	app.Post("/cart/items/:itemID/remove", cart.Remove)

	app.Get("/orders", orders.List)
	app.Get("/orders/:id", orders.Detail)
	app.Post("/orders", orders.Place)

	admin := app.Group("/admin")
	admin.Get("/dashboard", adminOrders.Dashboard)

	admin.Get("/categories", adminCategories.List)
	admin.Get("/categories/new", adminCategories.CreateShow)
	admin.Post("/categories", adminCategories.CreatePost)
	admin.Get("/categories/edit/:id", adminCategories.EditShow)
	admin.Post("/categories/update/:id", adminCategories.UpdatePost)
	admin.Post("/categories/toggle/:id", adminCategories.TogglePost)

	admin.Get("/products", adminProducts.List)
	admin.Get("/products/new", adminProducts.CreateShow)
	admin.Post("/products", adminProducts.CreatePost)
	admin.Get("/products/edit/:id", adminProducts.EditShow)
	admin.Post("/products/update/:id", adminProducts.UpdatePost)
	admin.Post("/products/toggle/:id", adminProducts.TogglePost)

	admin.Get("/users", adminUsers.List)
	admin.Post("/users/toggle/:id", adminUsers.TogglePost)

	admin.Get("/orders", adminOrders.List)
	admin.Post("/orders/status/:id", adminOrders.StatusPost)
}
