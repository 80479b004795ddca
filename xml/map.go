package xml

// mapEntryWrapper is the default member wrapper start element for XML Map entry
var mapEntryWrapper = StartElement{
	Name: Name{Local: "entry"},
}

// Map represents the encoding of a XML map type
type Map struct {
	w       writer
	scratch *[]byte

	// member start element is the map entry wrapper start element
	memberStartElement StartElement

	// map start element is the start element for the map
	// This is used by wrapped map serializers
	mapStartElement StartElement
}

// newMap returns a map encoder which sets the default map
// entry wrapper to `entry`.
//
// for eg. someMap : {{key:"abc", value:"123"}} is represented as
// <someMap><entry><key>abc</key><value>123</value></entry></someMap>
// The returned Map must be closed.
func newMap(w writer, scratch *[]byte, startElement StartElement) *Map {
	// write map start element
	writeStartElement(w, startElement)

	return &Map{
		w:                  w,
		scratch:            scratch,
		memberStartElement: mapEntryWrapper,
		mapStartElement:    startElement,
	}
}

// newFlattenedMap returns a map Encoder. It takes in the member start element as argument;
// that element, and the end element derived from it, wrap each entry of the flattened map.
//
// for eg. a map `someMap : {{key:"abc", value:"123"}}` is represented as
// `<someMap><key>abc</key><value>123</value></someMap>`.
func newFlattenedMap(w writer, scratch *[]byte, memberStartElement StartElement) *Map {
	return &Map{
		w:                  w,
		scratch:            scratch,
		memberStartElement: memberStartElement,
	}
}

// Entry returns an Object encoder for the map's next entry, having already
// written the entry wrapper's start tag (the fixed `entry` element for a
// wrapped map, or the map's own field element for a flattened one).
func (m *Map) Entry() *Object {
	start := m.memberStartElement
	end := start.End()

	writeStartElement(m.w, start)

	return newObject(m.w, m.scratch, &end)
}

// Close closes a map.
func (m *Map) Close() {
	// Flattened map close is a noOp.
	// mapStartElement is zero for flattened map.
	if m.mapStartElement.isZero() {
		return
	}

	end := m.mapStartElement.End()
	writeEndElement(m.w, &end)
}
