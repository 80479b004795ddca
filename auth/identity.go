package auth

import (
	"context"
	"time"

	"github.com/smithykit/runtime"
)

// Identity contains information that identifies who the user making the
// request is.
type Identity interface {
	Expiration() time.Time
}

// IdentityResolver defines the interface through which an Identity is
// retrieved.
type IdentityResolver interface {
	GetIdentity(context.Context, smithy.Properties) (Identity, error)
}

// IdentityResolverOptions defines the interface through which an entity can be
// queried to retrieve an IdentityResolver for a given auth scheme.
type IdentityResolverOptions interface {
	GetIdentityResolver(schemeID string) IdentityResolver
}

// AnonymousIdentity is the identity used by the anonymous ("no auth")
// scheme. It never expires.
type AnonymousIdentity struct{}

// Expiration returns the zero time: an anonymous identity never expires.
func (AnonymousIdentity) Expiration() time.Time { return time.Time{} }

// AnonymousIdentityResolver always resolves to AnonymousIdentity.
type AnonymousIdentityResolver struct{}

// GetIdentity returns an AnonymousIdentity.
func (AnonymousIdentityResolver) GetIdentity(context.Context, smithy.Properties) (Identity, error) {
	return &AnonymousIdentity{}, nil
}
