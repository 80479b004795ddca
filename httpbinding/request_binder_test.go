package httpbinding

import (
	"net/http"
	"testing"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// fakePayloadSerializer records scalar writes that fall through to the
// body, standing in for a real JSON/XML/CBOR codec serializer.
type fakePayloadSerializer struct {
	smithy.UnsupportedShapeSerializer
	strings map[string]string
}

func newFakePayloadSerializer() *fakePayloadSerializer {
	return &fakePayloadSerializer{
		UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "fakePayloadSerializer"},
		strings:                    map[string]string{},
	}
}

func (f *fakePayloadSerializer) WriteString(s *smithy.Schema, v string) {
	f.strings[s.ID.Member] = v
}

func memberSchema(name string, traitList ...smithy.Trait) *smithy.Schema {
	target := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "String"}, smithy.ShapeTypeString, nil, nil)
	return smithy.NewMember(name, target, traitList...)
}

func TestRequestBinder_RoutesHeaderQueryLabelAndBody(t *testing.T) {
	enc, err := NewEncoder("/things/{id}", "", http.Header{})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	binder := NewRequestBinder(enc, newFakePayloadSerializer())

	binder.WriteString(memberSchema("id", &traits.HTTPLabel{}), "abc123")
	binder.WriteString(memberSchema("X-Trace", &traits.HTTPHeader{Name: "x-trace"}), "trace-value")
	binder.WriteString(memberSchema("q", &traits.HTTPQuery{Name: "q"}), "search-term")
	binder.WriteString(memberSchema("name"), "body-value")

	if got := string(enc.rawPath); got != "/things/abc123" {
		t.Errorf("expect label substituted in path, got %q", got)
	}
	if got := enc.header.Get("x-trace"); got != "trace-value" {
		t.Errorf("expect header set, got %q", got)
	}
	if got := enc.query.Get("q"); got != "search-term" {
		t.Errorf("expect query set, got %q", got)
	}
	if got := binder.Payload.(*fakePayloadSerializer).strings["name"]; got != "body-value" {
		t.Errorf("expect unbound member routed to payload, got %q", got)
	}
}

func TestRequestBinder_PrefixHeadersMapStaysRoutedUntilCloseMap(t *testing.T) {
	enc, err := NewEncoder("/", "", http.Header{})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	binder := NewRequestBinder(enc, newFakePayloadSerializer())

	mapSchema := memberSchema("Meta", &traits.HTTPPrefixHeaders{Prefix: "x-meta-"})
	valueSchema := memberSchema("value")

	binder.WriteMap(mapSchema)
	binder.WriteKey(mapSchema, "foo")
	binder.WriteString(valueSchema, "bar")
	binder.WriteKey(mapSchema, "baz")
	binder.WriteString(valueSchema, "qux")
	binder.CloseMap()

	if got := enc.header.Get("x-meta-foo"); got != "bar" {
		t.Errorf("expect x-meta-foo=bar, got %q", got)
	}
	if got := enc.header.Get("x-meta-baz"); got != "qux" {
		t.Errorf("expect x-meta-baz=qux, got %q", got)
	}

	// After CloseMap, an unbound member must route to the payload again.
	binder.WriteString(memberSchema("after"), "body-again")
	if got := binder.Payload.(*fakePayloadSerializer).strings["after"]; got != "body-again" {
		t.Errorf("expect routing back to payload after CloseMap, got %q", got)
	}
}
