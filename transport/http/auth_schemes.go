package http

import (
	"context"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/auth"
)

const (
	// SchemeIDSigV4 identifies the SigV4 auth scheme.
	SchemeIDSigV4 = "aws.auth#sigv4"

	// SchemeIDAnonymous identifies the anonymous or "no-auth" scheme.
	SchemeIDAnonymous = "smithy.api#noAuth"
)

// Signer signs an outgoing request for a resolved identity.
//
// Properties carries the signer configuration attached to the auth
// Option that selected this scheme -- for SigV4, the signing name and
// region set by SigV4Properties.
type Signer interface {
	SignRequest(ctx context.Context, r *Request, identity auth.Identity, props smithy.Properties) error
}

// AuthScheme pairs an identity resolver lookup with the Signer that
// signs requests for that identity.
//
// A client holds an ordered list of AuthSchemes; for each candidate
// auth.Option an operation returns, the client picks the first scheme
// whose SchemeID matches, resolves an identity through
// IdentityResolver, and signs the request with Signer.
type AuthScheme interface {
	SchemeID() string
	IdentityResolver(auth.IdentityResolverOptions) auth.IdentityResolver
	Signer() Signer
}

// NewSigV4Scheme returns a SigV4 auth scheme that uses the given Signer.
func NewSigV4Scheme(signer Signer) AuthScheme {
	return &authScheme{
		schemeID: SchemeIDSigV4,
		signer:   signer,
	}
}

// NewAnonymousScheme returns an auth scheme that signs nothing, for
// operations that carry smithy.api#noAuth.
func NewAnonymousScheme() AuthScheme {
	return &authScheme{
		schemeID: SchemeIDAnonymous,
		signer:   &nopSigner{},
	}
}

// authScheme is parameterized to generically implement the exported AuthScheme
// interface
type authScheme struct {
	schemeID string
	signer   Signer
}

var _ AuthScheme = (*authScheme)(nil)

func (s *authScheme) SchemeID() string {
	return s.schemeID
}

func (s *authScheme) IdentityResolver(o auth.IdentityResolverOptions) auth.IdentityResolver {
	return o.GetIdentityResolver(s.schemeID)
}

func (s *authScheme) Signer() Signer {
	return s.signer
}

type nopSigner struct{}

var _ Signer = (*nopSigner)(nil)

func (*nopSigner) SignRequest(context.Context, *Request, auth.Identity, smithy.Properties) error {
	return nil
}
