package auth

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

// Identity is the authenticated caller as loaded from the store on this request.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func IdentityOf(u *models.User) Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
