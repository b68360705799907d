// Package memory keeps every repository in process memory. It backs tests and
// local runs without PostgreSQL; the DBTX handed to the factories is ignored.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/dbx"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/abouts"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/experiences"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/otps"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/projects"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/skills"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/users"
)

type store struct {
	mu          sync.Mutex
	users       map[string]models.User
	otps        []models.OTP
	projects    map[string]models.Project
	skills      map[string]models.Skill
	experiences map[string]models.Experience
	abouts      map[string]models.About
	contacts    map[string]models.Contact
}

// InMemoryRepositoryManager satisfies repomanager.RepositoryManager.
type InMemoryRepositoryManager struct {
	s *store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{s: &store{
		users:       map[string]models.User{},
		projects:    map[string]models.Project{},
		skills:      map[string]models.Skill{},
		experiences: map[string]models.Experience{},
		abouts:      map[string]models.About{},
		contacts:    map[string]models.Contact{},
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return &userRepo{s: m.s}
}

func (m *InMemoryRepositoryManager) OTPs(dbx.DBTX) otps.Repository {
	return &otpRepo{s: m.s}
}

func (m *InMemoryRepositoryManager) Projects(dbx.DBTX) projects.Repository {
	return &projectRepo{s: m.s}
}

func (m *InMemoryRepositoryManager) Skills(dbx.DBTX) skills.Repository {
	return &skillRepo{s: m.s}
}

func (m *InMemoryRepositoryManager) Experiences(dbx.DBTX) experiences.Repository {
	return &experienceRepo{s: m.s}
}

func (m *InMemoryRepositoryManager) Abouts(dbx.DBTX) abouts.Repository {
	return &aboutRepo{s: m.s}
}

func (m *InMemoryRepositoryManager) Contacts(dbx.DBTX) contacts.Repository {
	return &contactRepo{s: m.s}
}
