// Package projects persists portfolio projects.
package projects

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	// List returns every project by display order.
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	// Update applies the non-nil fields of patch. Unknown ids yield common.ErrorNotFound.
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}
