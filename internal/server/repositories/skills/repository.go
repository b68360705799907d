// Package skills persists the skill matrix shown on the public site.
package skills

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Skill, error)
	// Create fails with common.ErrorAlreadyExists when the name is taken.
	Create(ctx context.Context, s *models.Skill) (*models.Skill, error)
	Update(ctx context.Context, id string, patch models.SkillPatch) (*models.Skill, error)
	Delete(ctx context.Context, id string) error
}
