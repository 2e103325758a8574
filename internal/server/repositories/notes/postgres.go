package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contacthub/internal/common"
	"github.com/dmitrijs2005/contacthub/internal/dbx"
	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

// PostgresRepository holds *sql.DB rather than dbx.DBTX because note
// writes span two tables (notes + note_m2m_tag) and run inside their own
// transaction via dbx.WithTx.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) loadTags(ctx context.Context, db dbx.DBTX, noteID int64) ([]models.Tag, error) {
	query :=
		`SELECT t.id, t.name FROM tags t
		 JOIN note_m2m_tag nt ON nt.tag_id = t.id
		 WHERE nt.note_id = $1
		 ORDER BY t.id`

	rows, err := db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tags, nil
}

func (r *PostgresRepository) attachTags(ctx context.Context, db dbx.DBTX, noteID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO note_m2m_tag (note_id, tag_id) VALUES ($1, $2)`, noteID, tagID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*models.Note, error) {
	query :=
		`SELECT id, title, description, done, created_at FROM notes
		 ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n := &models.Note{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Done, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, n := range result {
		tags, err := r.loadTags(ctx, r.db, n.ID)
		if err != nil {
			return nil, err
		}
		n.Tags = tags
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT id, title, description, done, created_at FROM notes WHERE id = $1`

	n := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.Title, &n.Description, &n.Done, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	tags, err := r.loadTags(ctx, r.db, n.ID)
	if err != nil {
		return nil, err
	}
	n.Tags = tags
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note, tagIDs []int64) (*models.Note, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query :=
			`INSERT INTO notes (title, description, done)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`

		if err := tx.QueryRowContext(ctx, query, note.Title, note.Description, note.Done).
			Scan(&note.ID, &note.CreatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return r.attachTags(ctx, tx, note.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, note.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, note *models.Note, tagIDs []int64) (*models.Note, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query :=
			`UPDATE notes SET title = $2, description = $3, done = $4
			 WHERE id = $1
			 RETURNING id`

		var updatedID int64
		if err := tx.QueryRowContext(ctx, query, id, note.Title, note.Description, note.Done).
			Scan(&updatedID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM note_m2m_tag WHERE note_id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return r.attachTags(ctx, tx, id, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, done bool) (*models.Note, error) {
	query := `UPDATE notes SET done = $2 WHERE id = $1 RETURNING id`

	var updatedID int64
	err := r.db.QueryRowContext(ctx, query, id, done).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
