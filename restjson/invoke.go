package restjson

import (
	"context"
	"fmt"
	"net/url"

	smithy "github.com/smithykit/runtime"
	smithyhttp "github.com/smithykit/runtime/transport/http"
)

// Invoke drives the full client-side request/response pipeline for a single
// operation against p: SerializeRequest projects in onto a new transport
// request (and signs it), handler performs the HTTP round trip, and
// DeserializeResponse reads the result into out. This is the restJson1
// realization of the runtime's documented data flow -- input shape ->
// binding serializer -> SigV4 -> transport -- that a generated operation's
// client-side call otherwise drives by hand.
func Invoke(ctx context.Context, p *Protocol, handler smithyhttp.ClientDo, types *smithy.TypeRegistry, method, rawURL string, in smithy.Serializable, out smithy.Deserializable) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("restjson: parse url: %w", err)
	}

	req := smithyhttp.NewStackRequest().(*smithyhttp.Request)
	req.Method = method
	req.URL = u

	if err := p.SerializeRequest(ctx, in, req); err != nil {
		return err
	}

	result, _, err := smithyhttp.NewClientHandler(handler).Handle(ctx, req)
	if err != nil {
		return fmt.Errorf("restjson: round trip: %w", err)
	}

	resp, ok := result.(*smithyhttp.Response)
	if !ok {
		return fmt.Errorf("restjson: unexpected transport response type %T", result)
	}

	return p.DeserializeResponse(ctx, types, resp, out)
}
