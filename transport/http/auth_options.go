package http

import (
	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/auth"
)

// NewSigV4Option creates a SigV4 auth Option from an input configuration.
func NewSigV4Option(propFns ...func(*SigV4Properties)) *auth.Option {
	var props SigV4Properties
	for _, f := range propFns {
		f(&props)
	}

	return &auth.Option{
		SchemeID:         SchemeIDSigV4,
		SignerProperties: props.toSignerProperties(),
	}
}

// SigV4Properties represent the inputs to the SigV4 auth scheme.
type SigV4Properties struct {
	SigningName       string
	SigningRegion     string
	IsUnsignedPayload bool
}

func (p *SigV4Properties) toSignerProperties() smithy.Properties {
	var props smithy.Properties
	SetSigV4SigningName(&props, p.SigningName)
	SetSigV4SigningRegion(&props, p.SigningRegion)
	SetSigV4IsUnsignedPayload(&props, p.IsUnsignedPayload)
	return props
}

// NewAnonymousOption creates an Anonymous auth Option.
//
// The Anonymous auth scheme currently has no configuration, so the inputs to
// this API will be ignored.
func NewAnonymousOption(propFns ...func(*AnonymousProperties)) *auth.Option {
	return &auth.Option{SchemeID: SchemeIDAnonymous}
}

// AnonymousProperties represents a configuration of the Anonymous auth scheme.
type AnonymousProperties struct{}
