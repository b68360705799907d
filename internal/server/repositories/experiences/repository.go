// Package experiences persists the work history timeline.
package experiences

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Experience, error)
	Create(ctx context.Context, e *models.Experience) (*models.Experience, error)
	Update(ctx context.Context, id string, patch models.ExperiencePatch) (*models.Experience, error)
	Delete(ctx context.Context, id string) error
}
