package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contacthub/internal/common"
	"github.com/dmitrijs2005/contacthub/internal/dbx"
	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = "id, name, last_name, email, phone_number, born_date, description, created_at"

func scanContact(row interface{ Scan(dest ...any) error }) (*models.Contact, error) {
	c := &models.Contact{}
	err := row.Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.PhoneNumber, &c.BornDate, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) collect(rows *sql.Rows) ([]*models.Contact, error) {
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Search(ctx context.Context, filter SearchFilter) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR last_name ILIKE '%' || $2 || '%')
		   AND ($3 = '' OR email ILIKE '%' || $3 || '%')
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, filter.Name, filter.LastName, filter.Email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows)
}

func (r *PostgresRepository) UpcomingBirthdays(ctx context.Context) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		 WHERE born_date >= $1 AND born_date <= $2
		 ORDER BY born_date`

	today := time.Now()
	rows, err := r.db.QueryContext(ctx, query, today, today.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows)
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query :=
		`INSERT INTO contacts (name, last_name, email, phone_number, born_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.Name, contact.LastName, contact.Email, contact.PhoneNumber, contact.BornDate, contact.Description).
		Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contact, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, contact *models.Contact) (*models.Contact, error) {
	query :=
		`UPDATE contacts
		 SET name = $2, last_name = $3, email = $4, phone_number = $5, born_date = $6, description = $7
		 WHERE id = $1
		 RETURNING ` + contactColumns

	c, err := scanContact(r.db.QueryRowContext(ctx, query,
		id, contact.Name, contact.LastName, contact.Email, contact.PhoneNumber, contact.BornDate, contact.Description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`

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
