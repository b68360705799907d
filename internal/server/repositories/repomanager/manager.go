package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/portfolio/internal/dbx"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/abouts"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/experiences"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/otps"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/projects"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/skills"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	OTPs(db dbx.DBTX) otps.Repository
	Projects(db dbx.DBTX) projects.Repository
	Skills(db dbx.DBTX) skills.Repository
	Experiences(db dbx.DBTX) experiences.Repository
	Abouts(db dbx.DBTX) abouts.Repository
	Contacts(db dbx.DBTX) contacts.Repository
}
