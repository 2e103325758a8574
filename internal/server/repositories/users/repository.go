// Package users provides the user directory: lookup, creation, and the
// mutable per-user auth fields (refresh token, confirmed flag, avatar).
package users

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateRefreshToken unconditionally stores token (nil clears the slot).
	UpdateRefreshToken(ctx context.Context, email string, token *string) error

	// RotateRefreshToken replaces the stored refresh token only if it still
	// equals old (compare-and-swap, nil matching NULL). When the stored value
	// has changed in the meantime it returns common.ErrConflict.
	RotateRefreshToken(ctx context.Context, email string, old, next *string) error

	MarkConfirmed(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, email string, url string) (*models.User, error)
}
