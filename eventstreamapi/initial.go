package eventstreamapi

import (
	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// StreamMember locates the member of schema that targets a shape
// carrying the streaming trait -- the member whose value is the
// publisher/subscriber half of an event-stream operation -- and
// reports its schema along with whether one was found. A structure has
// at most one streaming member, by construction of the Smithy model.
func StreamMember(schema *smithy.Schema) (*smithy.Schema, bool) {
	var found *smithy.Schema
	smithy.FilterMembers(schema, func(m *smithy.Schema) bool {
		_, ok := smithy.SchemaTrait[*traits.Streaming](m)
		return ok
	}, func(m *smithy.Schema) {
		if found == nil {
			found = m
		}
	})
	return found, found != nil
}

// NonStreamMembers invokes fn for every member of schema that is not the
// streaming member, in declaration order -- the members serialized into
// the initial-request/initial-response frame.
func NonStreamMembers(schema *smithy.Schema, fn func(*smithy.Schema)) {
	smithy.FilterMembers(schema, func(m *smithy.Schema) bool {
		_, ok := smithy.SchemaTrait[*traits.Streaming](m)
		return !ok
	}, fn)
}

// Well-known :event-type values naming the initial message in each
// direction, distinct from any modeled union member name.
const (
	EventTypeInitialRequest  = "initial-request"
	EventTypeInitialResponse = "initial-response"
)
