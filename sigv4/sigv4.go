// Package sigv4 implements AWS Signature Version 4 request signing.
//
// The low-level canonical request construction lives in
// sigv4/internal/v4; this package wires it up with a Finalizer that
// derives the signing key through the standard
// kDate -> kRegion -> kService -> kSigning HMAC-SHA256 chain, caching the
// final signing key so that repeated signing with the same credential,
// region, and service in the same UTC day costs one comparison instead of
// four HMAC operations.
package sigv4

import (
	"net/http"
	"time"

	"github.com/smithykit/runtime/sigv4/credentials"
	internalv4 "github.com/smithykit/runtime/sigv4/internal/v4"
	v4 "github.com/smithykit/runtime/sigv4/v4"
)

// Signer signs HTTP requests with AWS Signature Version 4.
//
// A Signer is safe for concurrent use; its signing-key cache is guarded
// internally.
type Signer struct {
	options v4.SignerOptions
	cache   *signingKeyCache
}

// New builds a Signer, applying opts to its default SignerOptions.
func New(opts ...v4.SignerOption) *Signer {
	s := &Signer{cache: newSigningKeyCache(defaultCacheSize)}
	for _, opt := range opts {
		opt(&s.options)
	}
	return s
}

// SignRequestInput describes a single signing operation.
type SignRequestInput struct {
	// Request is signed in place.
	Request *http.Request

	// PayloadHash is the raw (not hex-encoded) SHA-256 digest of the
	// request body, or the UNSIGNED-PAYLOAD sentinel; the signer hex-encodes
	// it. Left empty, it is derived automatically when Request.Body
	// implements io.ReadSeeker.
	PayloadHash []byte

	Credentials credentials.Credentials

	// Service and Region identify the signing scope, e.g. "s3" and
	// "us-west-2".
	Service string
	Region  string

	// Time is the signing time. The zero value defaults to time.Now().
	Time time.Time
}

// SignRequest signs in.Request in place according to s's configured
// options.
func (s *Signer) SignRequest(in *SignRequestInput) error {
	t := internalv4.ResolveTime(in.Time)
	scope := credentialScope(t, in.Region, in.Service)

	signer := &internalv4.Signer{
		Request:     in.Request,
		PayloadHash: in.PayloadHash,
		Time:        t,
		Credentials: in.Credentials,
		Options:     s.options,

		Algorithm:       "AWS4-HMAC-SHA256",
		CredentialScope: scope,
		Finalizer: &signingKeyFinalizer{
			cache:   s.cache,
			date:    t.Format(internalv4.ShortTimeFormat),
			region:  in.Region,
			service: in.Service,
			secret:  in.Credentials.SecretAccessKey,
		},
		SignatureType: v4.SignatureTypeHeader,
	}

	return signer.Do()
}

func credentialScope(t time.Time, region, service string) string {
	return t.Format(internalv4.ShortTimeFormat) + "/" + region + "/" + service + "/aws4_request"
}
