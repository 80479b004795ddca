package xml

import (
	"github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
	xmlenc "github.com/smithykit/runtime/xml"
)

// elementName returns the element (or attribute) local name to use for s,
// honoring smithy.api#xmlName when present. A member schema falls back to
// its member name; a top-level shape schema (no member name) falls back to
// its own shape name, since XML, unlike JSON, needs a tag for the document
// root.
func elementName(s *smithy.Schema) string {
	if xn, ok := smithy.SchemaTrait[*traits.XMLName](s); ok && xn.Name != "" {
		return xn.Name
	}
	if s.ID.Member != "" {
		return s.ID.Member
	}
	return s.ID.Name
}

// isAttribute reports whether s carries smithy.api#xmlAttribute, meaning it
// renders onto its parent structure's start tag instead of as a child
// element.
func isAttribute(s *smithy.Schema) bool {
	_, ok := smithy.SchemaTrait[*traits.XMLAttribute](s)
	return ok
}

// isFlattened reports whether s carries smithy.api#xmlFlattened.
func isFlattened(s *smithy.Schema) bool {
	_, ok := smithy.SchemaTrait[*traits.XMLFlattened](s)
	return ok
}

// namespaceAttr returns the xmlns attribute declared by s's
// smithy.api#xmlNamespace trait, or nil if s doesn't carry one.
func namespaceAttr(s *smithy.Schema) *xmlenc.Attr {
	ns, ok := smithy.SchemaTrait[*traits.XMLNamespace](s)
	if !ok {
		return nil
	}
	return xmlenc.NewNamespaceAttribute(ns.Prefix, ns.URI)
}

// listMemberName returns the element name wrapping each member of a
// (non-flattened) list, defaulting to "member".
func listMemberName(s *smithy.Schema) string {
	if m, ok := s.MemberByName("member"); ok {
		return elementName(m)
	}
	return "member"
}

// memberByElementName finds s's member whose rendered element name
// (respecting smithy.api#xmlName) equals name.
func memberByElementName(s *smithy.Schema, name string) (*smithy.Schema, bool) {
	for _, m := range s.Members() {
		if elementName(m) == name {
			return m, true
		}
	}
	return nil, false
}
