package contacts

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

// SearchFilter narrows List-style queries; empty fields are ignored.
type SearchFilter struct {
	Name     string
	LastName string
	Email    string
}

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]*models.Contact, error)
	Get(ctx context.Context, id int64) (*models.Contact, error)
	Search(ctx context.Context, filter SearchFilter) ([]*models.Contact, error)

	// UpcomingBirthdays returns contacts whose birth date falls within the
	// next seven days.
	UpcomingBirthdays(ctx context.Context) ([]*models.Contact, error)

	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Update(ctx context.Context, id int64, contact *models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}
