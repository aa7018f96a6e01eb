// Package store holds Cartify's bun models and repositories: users,
// catalog, carts, orders, and reviews. The auth core consumes it only
// through the principal lookup contract.
package store

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/cartify/cartify/auth"
)

// UserStatus is the account lifecycle flag.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// IsActive reports whether the account may authenticate.
func (s UserStatus) IsActive() bool {
	return s == UserStatusActive
}

// User is a registered user (admin or customer).
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64      `bun:"user_id,pk,autoincrement" json:"id,omitempty"`
	FullName     string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Email        string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Phone        string     `bun:"phone_number" json:"phone_number,omitempty"`
	Role         auth.Role  `bun:"role,notnull,default:'CUSTOMER'" json:"role,omitempty"`
	Status       UserStatus `bun:"status,notnull,default:'ACTIVE'" json:"status,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull,nullzero,default:current_timestamp" json:"created_at,omitempty"`

	Orders  []*Order  `bun:"rel:has-many,join:user_id=user_id" json:"orders,omitempty"`
	Reviews []*Review `bun:"rel:has-many,join:user_id=user_id" json:"reviews,omitempty"`
	Cart    *Cart     `bun:"rel:has-one,join:user_id=user_id" json:"cart,omitempty"`
}

// Principal maps the row into the auth core's stored-identity shape.
func (u *User) Principal() *auth.Principal {
	return &auth.Principal{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Active:       u.Status.IsActive(),
		CreatedAt:    u.CreatedAt,
	}
}

// Category is a product category.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID          int64  `bun:"category_id,pk,autoincrement" json:"id,omitempty"`
	Name        string `bun:"category_name,notnull" json:"name,omitempty"`
	Description string `bun:"description" json:"description,omitempty"`
	IsActive    bool   `bun:"is_active,notnull,default:true" json:"is_active"`

	Products []*Product `bun:"rel:has-many,join:category_id=category_id" json:"products,omitempty"`
}

// Product is a catalog item.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`

	ID          int64   `bun:"product_id,pk,autoincrement" json:"id,omitempty"`
	Name        string  `bun:"product_name,notnull" json:"name,omitempty"`
	Description string  `bun:"description" json:"description,omitempty"`
	// Price is stored in cents to keep arithmetic exact.
	PriceCents  int64   `bun:"price_cents,notnull" json:"price_cents,omitempty"`
	Stock       int     `bun:"stock_quantity,notnull,default:0" json:"stock_quantity"`
	ImagePath   string  `bun:"image_path" json:"image_path,omitempty"`
	IsActive    bool    `bun:"is_active,notnull,default:true" json:"is_active"`
	CategoryID  int64   `bun:"category_id,notnull" json:"category_id,omitempty"`

	Category *Category `bun:"rel:belongs-to,join:category_id=category_id" json:"category,omitempty"`
	Reviews  []*Review `bun:"rel:has-many,join:product_id=product_id" json:"reviews,omitempty"`
}

// FormatCents renders a cent amount as a dollar string for templates.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Price renders the product price for display.
func (p *Product) Price() string { return FormatCents(p.PriceCents) }

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool { return p.Stock > 0 }

// AverageRating averages the loaded reviews, zero when none are loaded.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}

// Review is a product review left by a user, rating 1..5.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:rev"`

	ID        int64     `bun:"review_id,pk,autoincrement" json:"id,omitempty"`
	Rating    int       `bun:"rating,notnull" json:"rating,omitempty"`
	Comment   string    `bun:"comment" json:"comment,omitempty"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id,omitempty"`
	ProductID int64     `bun:"product_id,notnull" json:"product_id,omitempty"`
	CreatedAt time.Time `bun:"review_date,notnull,nullzero,default:current_timestamp" json:"created_at,omitempty"`

	User    *User    `bun:"rel:belongs-to,join:user_id=user_id" json:"user,omitempty"`
	Product *Product `bun:"rel:belongs-to,join:product_id=product_id" json:"product,omitempty"`
}

// Cart is a customer's shopping cart, one per user.
type Cart struct {
	bun.BaseModel `bun:"table:carts,alias:crt"`

	ID     int64 `bun:"cart_id,pk,autoincrement" json:"id,omitempty"`
	UserID int64 `bun:"user_id,notnull,unique" json:"user_id,omitempty"`

	Items []*CartItem `bun:"rel:has-many,join:cart_id=cart_id" json:"items,omitempty"`
}

// TotalCents sums the cart's line totals from the loaded items.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

// Total renders the cart total for display.
func (c *Cart) Total() string { return FormatCents(c.TotalCents()) }

// CartItem is one product line in a cart.
type CartItem struct {
	bun.BaseModel `bun:"table:cart_items,alias:cti"`

	ID             int64 `bun:"cart_item_id,pk,autoincrement" json:"id,omitempty"`
	CartID         int64 `bun:"cart_id,notnull" json:"cart_id,omitempty"`
	ProductID      int64 `bun:"product_id,notnull" json:"product_id,omitempty"`
	Quantity       int   `bun:"quantity,notnull" json:"quantity,omitempty"`
	UnitPriceCents int64 `bun:"unit_price_cents,notnull" json:"unit_price_cents,omitempty"`

	Product *Product `bun:"rel:belongs-to,join:product_id=product_id" json:"product,omitempty"`
}

// LineTotalCents is the frozen unit price times quantity.
func (i *CartItem) LineTotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

func (i *CartItem) UnitPrice() string { return FormatCents(i.UnitPriceCents) }
func (i *CartItem) LineTotal() string { return FormatCents(i.LineTotalCents()) }

// OrderStatus is the order fulfilment state.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// nextStatuses describes the allowed status flow; terminal states map to
// nothing.
var nextStatuses = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// NextStatuses lists the statuses the flow allows from here. Terminal
// states return nothing.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return nextStatuses[s]
}

// CanTransitionTo reports whether the status flow allows moving to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range nextStatuses[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Order is a placed order with a point-in-time price snapshot per line.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`

	ID          int64       `bun:"order_id,pk,autoincrement" json:"id,omitempty"`
	Number      string      `bun:"order_number,notnull,unique" json:"number,omitempty"`
	UserID      int64       `bun:"user_id,notnull" json:"user_id,omitempty"`
	Status      OrderStatus `bun:"status,notnull,default:'PENDING'" json:"status,omitempty"`
	TotalCents  int64       `bun:"total_cents,notnull" json:"total_cents,omitempty"`
	PlacedAt    time.Time   `bun:"placed_at,notnull,nullzero,default:current_timestamp" json:"placed_at,omitempty"`

	User  *User        `bun:"rel:belongs-to,join:user_id=user_id" json:"user,omitempty"`
	Items []*OrderItem `bun:"rel:has-many,join:order_id=order_id" json:"items,omitempty"`
}

// Total renders the order total for display.
func (o *Order) Total() string { return FormatCents(o.TotalCents) }

// OrderItem is one product line frozen at order time.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oit"`

	ID             int64  `bun:"order_item_id,pk,autoincrement" json:"id,omitempty"`
	OrderID        int64  `bun:"order_id,notnull" json:"order_id,omitempty"`
	ProductID      int64  `bun:"product_id,notnull" json:"product_id,omitempty"`
	ProductName    string `bun:"product_name,notnull" json:"product_name,omitempty"`
	Quantity       int    `bun:"quantity,notnull" json:"quantity,omitempty"`
	UnitPriceCents int64  `bun:"unit_price_cents,notnull" json:"unit_price_cents,omitempty"`
}

// LineTotalCents is the frozen unit price times quantity.
func (i *OrderItem) LineTotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

func (i *OrderItem) UnitPrice() string { return FormatCents(i.UnitPriceCents) }
func (i *OrderItem) LineTotal() string { return FormatCents(i.LineTotalCents()) }
