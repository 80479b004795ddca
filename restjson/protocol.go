// Package restjson implements the restJson1 AWS protocol: HTTP-bound
// request/response shapes with a JSON payload, signed with SigV4.
//
// It is the concrete smithy.ClientProtocol that ties the serde kernel
// (package smithy), the HTTP binding engine (package httpbinding), the
// JSON codec (package encoding/json), and request signing (package
// sigv4) into the data flow a generated operation actually drives:
// input shape -> binding serializer -> SigV4 -> transport.
package restjson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/auth"
	"github.com/smithykit/runtime/encoding/json"
	"github.com/smithykit/runtime/httpbinding"
	smithyhttp "github.com/smithykit/runtime/transport/http"
)

// ID is the protocol identifier restJson1 operations are modeled with.
const ID = "aws.protocols#restJson1"

// Protocol implements smithy.ClientProtocol[*smithyhttp.Request,
// *smithyhttp.Response] for the restJson1 protocol.
//
// A generated operation is responsible for setting Method and URL
// (including the unsubstituted {label} path template and any literal
// query string) on the transport request before calling
// SerializeRequest; Protocol fills in the HTTP-bound members and the
// JSON body, then signs the result.
type Protocol struct {
	// Codec serializes/deserializes the JSON payload. Defaults to
	// &json.Codec{} when nil.
	Codec smithy.Codec

	// Scheme signs outgoing requests. A nil Scheme leaves requests
	// unsigned, which is only appropriate in tests.
	Scheme smithyhttp.AuthScheme

	// AuthOption carries the identity/signer properties (signing name,
	// region, ...) for Scheme. See smithyhttp.NewSigV4Option.
	AuthOption *auth.Option

	// IdentityOptions resolves the IdentityResolver for Scheme's scheme
	// ID.
	IdentityOptions auth.IdentityResolverOptions
}

var _ smithy.ClientProtocol[*smithyhttp.Request, *smithyhttp.Response] = (*Protocol)(nil)

// ID returns the restJson1 protocol identifier.
func (p *Protocol) ID() string { return ID }

func (p *Protocol) codec() smithy.Codec {
	if p.Codec != nil {
		return p.Codec
	}
	return &json.Codec{}
}

// SerializeRequest projects in onto req's URI/headers/query through
// httpbinding.RequestBinder, encodes whatever falls through to the
// payload as JSON, and signs the result with Scheme, if set.
func (p *Protocol) SerializeRequest(ctx context.Context, in smithy.Serializable, req *smithyhttp.Request) error {
	if req.URL == nil {
		req.URL = &url.URL{}
	}

	enc, err := httpbinding.NewEncoder(req.URL.Path, req.URL.RawQuery, req.Header)
	if err != nil {
		return fmt.Errorf("restjson: build encoder: %w", err)
	}

	codec := p.codec()
	payload := codec.Serializer()
	binder := httpbinding.NewRequestBinder(enc, payload)
	in.Serialize(binder)

	if _, err := enc.Encode(req.Request); err != nil {
		return fmt.Errorf("restjson: apply bindings: %w", err)
	}

	if body := binder.Bytes(); len(body) > 0 {
		rc, err := req.SetStream(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("restjson: set body: %w", err)
		}
		*req = *rc
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", codec.PayloadMediaType())
		}
	}

	if p.Scheme == nil {
		return nil
	}

	resolver := p.Scheme.IdentityResolver(p.IdentityOptions)
	identityProps := smithy.Properties{}
	signerProps := smithy.Properties{}
	if p.AuthOption != nil {
		identityProps = p.AuthOption.IdentityProperties
		signerProps = p.AuthOption.SignerProperties
	}

	identity, err := resolver.GetIdentity(ctx, identityProps)
	if err != nil {
		return fmt.Errorf("restjson: resolve identity: %w", err)
	}

	if err := p.Scheme.Signer().SignRequest(ctx, req, identity, signerProps); err != nil {
		return fmt.Errorf("restjson: sign request: %w", err)
	}

	return nil
}

// DeserializeResponse reads resp's status/headers/body into out through
// httpbinding.ResponseBinder. A status of 300 or above looks up a
// modeled error in types keyed by the X-Amzn-Errortype header,
// deserializing the body into it the same way; an unrecognized error
// code is returned as *UnmodeledError.
func (p *Protocol) DeserializeResponse(ctx context.Context, types *smithy.TypeRegistry, resp *smithyhttp.Response, out smithy.Deserializable) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("restjson: read body: %w", err)
	}
	defer resp.Body.Close()

	codec := p.codec()

	if resp.StatusCode >= 300 {
		code := errorCode(resp)
		if modeled, ok := types.DeserializableError(code); ok {
			binder := httpbinding.NewResponseBinder(resp.Header, resp.StatusCode, codec.Deserializer(body))
			if err := modeled.Deserialize(binder); err != nil {
				return fmt.Errorf("restjson: deserialize error %q: %w", code, err)
			}
			return modeled
		}
		return &UnmodeledError{Code: code, StatusCode: resp.StatusCode, Body: body}
	}

	binder := httpbinding.NewResponseBinder(resp.Header, resp.StatusCode, codec.Deserializer(body))
	return out.Deserialize(binder)
}

// errorCode extracts the error discriminator from the X-Amzn-Errortype
// header, restJson1's convention, stripping any ":"-separated URI
// suffix some implementations append.
func errorCode(resp *smithyhttp.Response) string {
	h := resp.Header.Get("X-Amzn-Errortype")
	for i := 0; i < len(h); i++ {
		if h[i] == ':' {
			return h[:i]
		}
	}
	return h
}

// UnmodeledError is returned for an error response whose discriminator
// does not match any type in the operation's error registry.
type UnmodeledError struct {
	Code       string
	StatusCode int
	Body       []byte
}

func (e *UnmodeledError) Error() string {
	return fmt.Sprintf("restjson: unmodeled error %q (status %d): %s", e.Code, e.StatusCode, e.Body)
}
