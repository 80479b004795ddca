// Package v4 exposes common APIs for AWS Signature Version 4.
package v4

import "strings"

// SignatureType specifies how the signature is transmitted.
type SignatureType int

const (
	// SignatureTypeHeader transmits signature via Authorization header (default).
	SignatureTypeHeader SignatureType = iota
	// SignatureTypeQueryString transmits signature via query parameters.
	// See https://docs.aws.amazon.com/AmazonS3/latest/API/sigv4-query-string-auth.html
	SignatureTypeQueryString
)

// SignerOption applies configuration to a signer.
type SignerOption func(*SignerOptions)

// SignerOptions configures SigV4.
type SignerOptions struct {
	// Rules to determine what headers are signed.
	//
	// By default, every header is signed except the ones named in
	// IgnoredHeaders.
	HeaderRules SignedHeaderRules

	// Setting this flag will instead cause the signer to use the
	// UNSIGNED-PAYLOAD sentinel if a hash is not explicitly provided.
	DisableImplicitPayloadHashing bool

	// Disables falling back to the UNSIGNED-PAYLOAD sentinel when a
	// payload hash cannot be computed implicitly (e.g. an unseekable
	// body) and one was not explicitly provided.
	DisableUnsignedPayloadSentinel bool

	// Disables the automatic escaping of the URI path of the request for the
	// siganture's canonical string's path.
	//
	// Amazon S3 is an example of a service that requires this setting.
	DisableDoublePathEscape bool

	// Adds the X-Amz-Content-Sha256 header to signed requests.
	//
	// Amazon S3 is an example of a service that requires this setting.
	AddPayloadHashHeader bool

	// Overrides the time format used in the canonical request and
	// Authorization header. Defaults to TimeFormat from package
	// sigv4/internal/v4.
	CanonicalTimeFormat string
}

// SignedHeaderRules determines whether a request header should be included in
// the calculated signature.
//
// By convention, IsSigned is invoked with lowercase values.
type SignedHeaderRules interface {
	IsSigned(string) bool
}

// IgnoredHeaders is the set of headers SigV4 never includes in the
// signed-headers list, regardless of casing. This is the default
// SignedHeaderRules used when SignerOptions.HeaderRules is unset.
var IgnoredHeaders = map[string]struct{}{
	"connection":      {},
	"x-amzn-trace-id": {},
	"user-agent":      {},
	"expect":          {},
}

// DefaultHeaderRules signs every header except those in IgnoredHeaders.
type DefaultHeaderRules struct{}

// IsSigned reports whether h (given in lowercase) should be signed.
func (DefaultHeaderRules) IsSigned(h string) bool {
	_, ignored := IgnoredHeaders[strings.ToLower(h)]
	return !ignored
}

// UnsignedPayload provides the sentinel value for a payload hash to indicate
// that a request's payload is unsigned.
func UnsignedPayload() []byte {
	return []byte("UNSIGNED-PAYLOAD")
}
