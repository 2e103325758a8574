package services

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/tags"
)

// TagService exposes tag CRUD. Tag names are unique, a duplicate name
// surfaces as common.ErrConflict from the repository.
type TagService struct {
	repo tags.Repository
}

func NewTagService(repo tags.Repository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) List(ctx context.Context, skip, limit int) ([]*models.Tag, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *TagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	return s.repo.Get(ctx, id)
}

func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	return s.repo.Create(ctx, name)
}

func (s *TagService) Update(ctx context.Context, id int64, name string) (*models.Tag, error) {
	return s.repo.Update(ctx, id, name)
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
