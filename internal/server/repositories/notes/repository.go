package notes

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)

	// Create stores the note and attaches the given tags in one transaction.
	Create(ctx context.Context, note *models.Note, tagIDs []int64) (*models.Note, error)

	// Update rewrites the note fields and replaces its tag set.
	Update(ctx context.Context, id int64, note *models.Note, tagIDs []int64) (*models.Note, error)

	UpdateStatus(ctx context.Context, id int64, done bool) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}
