package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/repomanager"
)

// ContentService serves the public portfolio sections and the admin edits
// to them. Reads need no identity; role checks happen in the HTTP layer.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repomanager: m}
}

func (s *ContentService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.repomanager.Projects(s.db).List(ctx)
}

func (s *ContentService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.repomanager.Projects(s.db).Get(ctx, id)
}

func (s *ContentService) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	out, err := s.repomanager.Projects(s.db).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return out, nil
}

func (s *ContentService) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	return s.repomanager.Projects(s.db).Update(ctx, id, patch)
}

func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	return s.repomanager.Projects(s.db).Delete(ctx, id)
}

func (s *ContentService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.repomanager.Skills(s.db).List(ctx)
}

// CreateSkill stores sk; a zero level becomes 1.
func (s *ContentService) CreateSkill(ctx context.Context, sk *models.Skill) (*models.Skill, error) {
	if sk.Level == 0 {
		sk.Level = 1
	}
	if err := validateStruct(sk); err != nil {
		return nil, err
	}
	out, err := s.repomanager.Skills(s.db).Create(ctx, sk)
	if err != nil {
		return nil, fmt.Errorf("error creating skill: %w", err)
	}
	return out, nil
}

func (s *ContentService) UpdateSkill(ctx context.Context, id string, patch models.SkillPatch) (*models.Skill, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	return s.repomanager.Skills(s.db).Update(ctx, id, patch)
}

func (s *ContentService) DeleteSkill(ctx context.Context, id string) error {
	return s.repomanager.Skills(s.db).Delete(ctx, id)
}

func (s *ContentService) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	return s.repomanager.Experiences(s.db).List(ctx)
}

func (s *ContentService) CreateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	if err := validateStruct(e); err != nil {
		return nil, err
	}
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
	out, err := s.repomanager.Experiences(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating experience: %w", err)
	}
	return out, nil
}

func (s *ContentService) UpdateExperience(ctx context.Context, id string, patch models.ExperiencePatch) (*models.Experience, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	return s.repomanager.Experiences(s.db).Update(ctx, id, patch)
}

func (s *ContentService) DeleteExperience(ctx context.Context, id string) error {
	return s.repomanager.Experiences(s.db).Delete(ctx, id)
}

func (s *ContentService) ListAbout(ctx context.Context) ([]models.About, error) {
	return s.repomanager.Abouts(s.db).List(ctx)
}

func (s *ContentService) CreateAbout(ctx context.Context, a *models.About) (*models.About, error) {
	if err := validateStruct(a); err != nil {
		return nil, err
	}
	out, err := s.repomanager.Abouts(s.db).Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("error creating about: %w", err)
	}
	return out, nil
}

func (s *ContentService) UpdateAbout(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	return s.repomanager.Abouts(s.db).Update(ctx, id, patch)
}

func (s *ContentService) DeleteAbout(ctx context.Context, id string) error {
	return s.repomanager.Abouts(s.db).Delete(ctx, id)
}

// SubmitContact stores a message from the public form.
func (s *ContentService) SubmitContact(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	if err := validateStruct(c); err != nil {
		return nil, err
	}
	c.Read = false
	out, err := s.repomanager.Contacts(s.db).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error saving contact: %w", err)
	}
	return out, nil
}

func (s *ContentService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.repomanager.Contacts(s.db).List(ctx)
}

func (s *ContentService) MarkContactRead(ctx context.Context, id string) (*models.Contact, error) {
	return s.repomanager.Contacts(s.db).MarkRead(ctx, id)
}

func (s *ContentService) DeleteContact(ctx context.Context, id string) error {
	return s.repomanager.Contacts(s.db).Delete(ctx, id)
}
