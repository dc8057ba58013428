// Package identity provides identity providers for environments without an
// interactive sign-in: the CLI resolves the operator from configuration, and
// tests swap in anonymous or fixed identities.
package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/calderafoods/demandwatch/pkg/application/services"
	"github.com/calderafoods/demandwatch/pkg/domain/entities"
)

// StaticProvider always resolves to one configured user
type StaticProvider struct {
	user entities.User
}

// NewStaticProvider creates a provider for a fixed operator identity.
// The id must be a UUID; the DEMANDWATCH_USER_ID env var is the usual source.
func NewStaticProvider(id, name, email string) (*StaticProvider, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return &StaticProvider{
		user: entities.User{ID: userID, Name: name, Email: email},
	}, nil
}

// Verify interface compliance
var _ services.IdentityProvider = (*StaticProvider)(nil)

// CurrentUser returns the configured user
func (p *StaticProvider) CurrentUser(ctx context.Context) (*entities.User, error) {
	user := p.user
	return &user, nil
}

// AnonymousProvider models an unauthenticated session
type AnonymousProvider struct{}

// NewAnonymousProvider creates a provider with no identity
func NewAnonymousProvider() *AnonymousProvider {
	return &AnonymousProvider{}
}

// Verify interface compliance
var _ services.IdentityProvider = (*AnonymousProvider)(nil)

// CurrentUser always fails with ErrNotAuthenticated
func (p *AnonymousProvider) CurrentUser(ctx context.Context) (*entities.User, error) {
	return nil, services.ErrNotAuthenticated
}
