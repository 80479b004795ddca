package xml

import "strings"

// Object represents the encoding of structured data within an XML node.
type Object struct {
	w       writer
	scratch *[]byte

	endElement *EndElement
}

// newObject returns a new object encoder type.
func newObject(w writer, scratch *[]byte, endElement *EndElement) *Object {
	return &Object{w: w, scratch: scratch, endElement: endElement}
}

// Key returns a Value encoder for the named child element. attr, if
// non-nil, carries the attributes to set on the element's start tag. A name
// containing a colon is split into a namespace prefix and local name.
func (o *Object) Key(name string, attr *[]Attr) Value {
	space := ""
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		space, name = name[:idx], name[idx+1:]
	}

	var attrs []Attr
	if attr != nil {
		attrs = *attr
	}

	start := StartElement{Name: Name{Space: space, Local: name}, Attr: attrs}
	end := start.End()

	return newValue(o.w, o.scratch, &start, &end)
}

// Close writes the object's closing tag.
func (o *Object) Close() {
	writeEndElement(o.w, o.endElement)
}

/*
TagMetadata represents the metadata required when building the
xml element tag.

Namespaces are stored as key value pairs in a map where Namespace URI is the key,
and the namespace prefix corresponds to the value. The namespace prefix can be empty,
whereas namespace URI is required if a namespace is set.

Attributes are stored as key value pairs in a map where Attribute name is the key,
and Attribute value corresponds to the value.

This is in accordance to https://awslabs.github.io/smithy/1.0/spec/core/xml-traits.html#xmlattribute-trait
*/
type TagMetadata struct {
	Namespaces map[string]string
	Attributes map[string]string
}
