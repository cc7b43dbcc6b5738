package service

import (
	"context"
	"errors"
	"time"

	"github.com/wakanda-gov/platform/internal/domain"
	"github.com/wakanda-gov/platform/internal/repository"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

// UserUpdate carries optional fields for partial updates. Role and Active
// are honored only on the admin path.
type UserUpdate struct {
	FirstName  *string
	LastName   *string
	Department *string
	Phone      *string
	Address    *string
	Role       *domain.Role
	Active     *bool
}

// UserStats summarizes the account population.
type UserStats struct {
	TotalUsers          int
	ActiveUsers         int
	UsersByRole         map[domain.Role]int
	RecentRegistrations int
}

// UserService serves account lookups and administration on top of the store.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the account.
func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": "must be one of admin, manager, user, viewer"})
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("User", nil)
		}
		return err
	}
	return nil
}

// List pages through accounts matching the query.
func (s *UserService) List(ctx context.Context, query repository.UserQuery) (*repository.UserPage, error) {
	return s.users.List(ctx, query)
}

// Stats aggregates account counts. Built on List because the store contract
// is a keyed lookup with filtering, not an analytics surface.
func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{UsersByRole: make(map[domain.Role]int)}
	cutoff := time.Now().AddDate(0, 0, -30)

	query := repository.UserQuery{Limit: 100}
	for {
		page, err := s.users.List(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, user := range page.Users {
			stats.TotalUsers++
			if user.Active {
				stats.ActiveUsers++
			}
			stats.UsersByRole[user.Role]++
			if user.CreatedAt.After(cutoff) {
				stats.RecentRegistrations++
			}
		}
		query.Offset += len(page.Users)
		if query.Offset >= page.Total || len(page.Users) == 0 {
			break
		}
	}
	return stats, nil
}
