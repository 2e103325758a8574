package services

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/contacts"
)

// ContactService exposes the contact book operations. The repository
// already returns the sentinel errors the HTTP layer maps, so the
// service stays thin.
type ContactService struct {
	repo contacts.Repository
}

func NewContactService(repo contacts.Repository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) List(ctx context.Context, skip, limit int) ([]*models.Contact, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	return s.repo.Get(ctx, id)
}

func (s *ContactService) Search(ctx context.Context, filter contacts.SearchFilter) ([]*models.Contact, error) {
	return s.repo.Search(ctx, filter)
}

func (s *ContactService) UpcomingBirthdays(ctx context.Context) ([]*models.Contact, error) {
	return s.repo.UpcomingBirthdays(ctx)
}

func (s *ContactService) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	return s.repo.Create(ctx, contact)
}

func (s *ContactService) Update(ctx context.Context, id int64, contact *models.Contact) (*models.Contact, error) {
	return s.repo.Update(ctx, id, contact)
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
