package tags

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]*models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, id int64, name string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}
