package sigv4

import (
	"context"
	"time"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/auth"
	"github.com/smithykit/runtime/sigv4/credentials"
)

// Identity adapts credentials.Credentials to the auth.Identity interface
// so a resolved credential set can flow through the generic auth-scheme
// pipeline in transport/http.
type Identity struct {
	Credentials credentials.Credentials
	Expires     time.Time
}

// Expiration returns the zero time for a credential set that does not
// expire, or the credential's expiry otherwise.
func (i *Identity) Expiration() time.Time { return i.Expires }

var _ auth.Identity = (*Identity)(nil)

// StaticIdentityResolver resolves to a fixed credential set, for callers
// that manage credential refresh themselves (or never rotate them, as in
// most tests).
type StaticIdentityResolver struct {
	Identity *Identity
}

// GetIdentity returns r.Identity.
func (r StaticIdentityResolver) GetIdentity(context.Context, smithy.Properties) (auth.Identity, error) {
	return r.Identity, nil
}

var _ auth.IdentityResolver = StaticIdentityResolver{}
