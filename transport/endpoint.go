package transport

import "github.com/smithykit/runtime"

// Endpoint is a Smithy endpoint.
type Endpoint struct {
	URI string

	Fields *Fields

	Properties smithy.Properties
}
