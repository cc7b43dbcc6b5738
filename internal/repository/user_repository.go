package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wakanda-gov/platform/internal/domain"
)

// Sentinel errors surfaced by every UserRepository implementation. The
// duplicate variants exist because the store, not the caller, is the
// authority on uniqueness: two concurrent registrations race past the
// service's existence checks and only one may win here.
var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// SortDirection for list queries.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// UserQuery narrows and pages List results. Search is a free-text match over
// email, username and first/last name; Role and Active are exact filters.
type UserQuery struct {
	Search  string
	Role    domain.Role
	Active  *bool
	SortBy  string
	SortDir string
	Offset  int
	Limit   int
}

// Normalize applies default and maximum page sizes and a stable sort key.
func (q *UserQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	switch q.SortBy {
	case "email", "username", "first_name", "last_name", "created_at", "last_login_at":
	default:
		q.SortBy = "created_at"
	}
	if q.SortDir != SortDesc {
		q.SortDir = SortAsc
	}
}

// UserPage is one page of a List result.
type UserPage struct {
	Users []*domain.User
	Total int
}

// UserRepository defines persistence access for platform accounts. The auth
// core depends only on this interface.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, query UserQuery) (*UserPage, error)
}
