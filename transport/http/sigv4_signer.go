package http

import (
	"context"
	"fmt"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/auth"
	"github.com/smithykit/runtime/sigv4"
	"github.com/smithykit/runtime/sigv4/v4"
)

// SigV4Signer adapts a *sigv4.Signer to the Signer interface so it can
// back a SigV4 AuthScheme. The signing name and region come from the
// properties attached to the selected auth.Option (see SigV4Properties);
// the credentials come from the resolved identity.
type SigV4Signer struct {
	Signer *sigv4.Signer
}

var _ Signer = (*SigV4Signer)(nil)

// SignRequest signs r.Request in place, deriving the signing key from
// identity's credentials and the name/region carried in props.
func (s *SigV4Signer) SignRequest(ctx context.Context, r *Request, identity auth.Identity, props smithy.Properties) error {
	creds, ok := identity.(*sigv4.Identity)
	if !ok {
		return fmt.Errorf("sigv4: identity %T does not carry AWS credentials", identity)
	}

	name, _ := GetSigV4SigningName(&props)
	region, _ := GetSigV4SigningRegion(&props)

	in := &sigv4.SignRequestInput{
		Request:     r.Request,
		Credentials: creds.Credentials,
		Service:     name,
		Region:      region,
	}
	if unsigned, ok := GetSigV4IsUnsignedPayload(&props); ok && unsigned {
		in.PayloadHash = v4.UnsignedPayload()
	}

	return s.Signer.SignRequest(in)
}
