// Package users persists accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type Repository interface {
	// Create inserts user, assigning an id when empty. A taken email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateCredentials replaces the password hash and role of an existing user.
	UpdateCredentials(ctx context.Context, id, passwordHash, role string) error
}
