package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/contacthub/internal/common"
	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and local
// runs without postgres. The mutex makes the refresh-token field safe
// under concurrent rotation, matching the row-level atomicity the
// postgres implementation gets from its guarded UPDATE.
type InMemoryRepository struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User), nextID: 1}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.RefreshToken != nil {
		t := *u.RefreshToken
		c.RefreshToken = &t
	}
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrConflict
	}

	u := cloneUser(user)
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.nextID++
	r.users[u.Email] = u

	return cloneUser(u), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *InMemoryRepository) UpdateRefreshToken(ctx context.Context, email string, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return common.ErrNotFound
	}
	if token == nil {
		u.RefreshToken = nil
		return nil
	}
	t := *token
	u.RefreshToken = &t
	return nil
}

func (r *InMemoryRepository) RotateRefreshToken(ctx context.Context, email string, old, next *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return common.ErrNotFound
	}

	same := (u.RefreshToken == nil && old == nil) ||
		(u.RefreshToken != nil && old != nil && *u.RefreshToken == *old)
	if !same {
		return common.ErrConflict
	}

	if next == nil {
		u.RefreshToken = nil
		return nil
	}
	t := *next
	u.RefreshToken = &t
	return nil
}

func (r *InMemoryRepository) MarkConfirmed(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return common.ErrNotFound
	}
	u.Confirmed = true
	return nil
}

func (r *InMemoryRepository) UpdateAvatar(ctx context.Context, email string, url string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Avatar = url
	return cloneUser(u), nil
}
