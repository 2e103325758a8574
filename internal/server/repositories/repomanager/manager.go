// Package repomanager wires repository constructors to a database
// connection and exposes a schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contacthub/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/notes"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/tags"
	"github.com/dmitrijs2005/contacthub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Contacts() contacts.Repository
	Notes() notes.Repository
	Tags() tags.Repository
}
