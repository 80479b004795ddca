package xml

import "encoding/xml"

// escQuot is how encoding/xml.EscapeText renders a literal double quote,
// used by tests to build expected output without hardcoding the entity.
const escQuot = "&#34;"

// escapeString writes s to w, escaping characters not valid inside XML
// character data or attribute values.
func escapeString(w writer, s string) {
	xml.EscapeText(w, []byte(s))
}

// escapeText writes b to w, escaping characters not valid inside XML
// character data.
func escapeText(w writer, b []byte) {
	xml.EscapeText(w, b)
}
