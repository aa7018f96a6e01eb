package store

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/cartify/cartify/auth"
)

// Users is the user repository. Its FindByEmail doubles as the credential
// store adapter the auth core consumes.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*auth.Principal, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
	List(ctx context.Context, pageable Pageable) (Page[*User], error)
	SetStatus(ctx context.Context, id int64, status UserStatus) (*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)
var _ auth.PrincipalStore = (Users)(nil)

// NewUsersRepository creates the user repository
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// FindByEmail is the auth core's lookup contract: exact-match on email,
// side-effect free.
func (r *users) FindByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return user, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.user_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return user, nil
}

// Register inserts a new user row. The caller hashes the password and
// decides the role; registration through the storefront always creates
// CUSTOMER accounts.
func (r *users) Register(ctx context.Context, user *User) (*User, error) {
	if user.Role == "" {
		user.Role = auth.RoleCustomer
	}
	if user.Status == "" {
		user.Status = UserStatusActive
	}

	if _, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "failed to register user")
	}
	return user, nil
}

func (r *users) List(ctx context.Context, pageable Pageable) (Page[*User], error) {
	var items []*User
	count, err := r.db.NewSelect().
		Model(&items).
		Order("usr.created_at DESC").
		Limit(pageable.Size).
		Offset(pageable.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return Page[*User]{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}

	return Page[*User]{
		Items:      items,
		Number:     pageable.Page,
		Size:       pageable.Size,
		TotalCount: count,
	}, nil
}

// SetStatus flips the active flag. The auth core reads it on the next
// request; no transaction spans this write and in-flight authentications.
func (r *users) SetStatus(ctx context.Context, id int64, status UserStatus) (*User, error) {
	user := &User{ID: id, Status: status}
	res, err := r.db.NewUpdate().
		Model(user).
		Column("status").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user status")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, goerrors.New("user not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}
	return user, nil
}

// wrapNotFound maps sql.ErrNoRows to a not-found rich error and anything
// else to an internal one.
func wrapNotFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return goerrors.New(msg, goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}
