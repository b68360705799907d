// Package contacts persists messages left through the contact form.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Contact) (*models.Contact, error)
	// List returns all messages, newest first.
	List(ctx context.Context) ([]models.Contact, error)
	MarkRead(ctx context.Context, id string) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}
