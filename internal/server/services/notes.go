package services

import (
	"context"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/notes"
)

// NoteService exposes note CRUD including tag attachment and the done
// flag toggle.
type NoteService struct {
	repo notes.Repository
}

func NewNoteService(repo notes.Repository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) List(ctx context.Context, skip, limit int) ([]*models.Note, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	return s.repo.Get(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, note *models.Note, tagIDs []int64) (*models.Note, error) {
	return s.repo.Create(ctx, note, tagIDs)
}

func (s *NoteService) Update(ctx context.Context, id int64, note *models.Note, tagIDs []int64) (*models.Note, error) {
	return s.repo.Update(ctx, id, note, tagIDs)
}

func (s *NoteService) UpdateStatus(ctx context.Context, id int64, done bool) (*models.Note, error) {
	return s.repo.UpdateStatus(ctx, id, done)
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
