package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wakanda-gov/platform/internal/domain"
)

// memoryUserRepository is a mutex-guarded keyed store. Uniqueness checks and
// the insert happen under one lock, so concurrent duplicate registrations
// lose atomically, matching the guarantee the Postgres indexes provide.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMemoryUserRepository returns the in-memory implementation used for
// development and tests.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateEmail
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return ErrDuplicateUsername
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateEmail
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return ErrDuplicateUsername
		}
	}

	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *memoryUserRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	ts := at
	user.LastLoginAt = &ts
	return nil
}

func (r *memoryUserRepository) List(_ context.Context, query UserQuery) (*UserPage, error) {
	query.Normalize()

	r.mu.RLock()
	matched := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		if matchesQuery(user, query) {
			clone := *user
			matched = append(matched, &clone)
		}
	}
	r.mu.RUnlock()

	sortUsers(matched, query.SortBy, query.SortDir == SortDesc)

	total := len(matched)
	if query.Offset >= total {
		return &UserPage{Users: []*domain.User{}, Total: total}, nil
	}
	end := query.Offset + query.Limit
	if end > total {
		end = total
	}
	return &UserPage{Users: matched[query.Offset:end], Total: total}, nil
}

func (r *memoryUserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func matchesQuery(user *domain.User, query UserQuery) bool {
	if query.Role != "" && user.Role != query.Role {
		return false
	}
	if query.Active != nil && user.Active != *query.Active {
		return false
	}
	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		haystacks := []string{user.Email, user.Username, user.FirstName, user.LastName}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortUsers(users []*domain.User, field string, desc bool) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if desc {
			a, b = b, a
		}
		switch field {
		case "email":
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case "username":
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		case "first_name":
			return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
		case "last_name":
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		case "last_login_at":
			at, bt := a.LastLoginAt, b.LastLoginAt
			if at == nil {
				return bt != nil
			}
			if bt == nil {
				return false
			}
			return at.Before(*bt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
