// Package abouts persists the blocks of the "about me" section.
package abouts

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.About, error)
	Create(ctx context.Context, a *models.About) (*models.About, error)
	Update(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error)
	Delete(ctx context.Context, id string) error
}
