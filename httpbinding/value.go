package httpbinding

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// HeaderValue sets or appends a single HTTP header value, formatting
// whichever scalar type the binding calls for the way the REST-JSON and
// REST-XML protocols expect on the wire.
type HeaderValue struct {
	header http.Header
	key    string
	append bool
}

func newHeaderValue(header http.Header, key string, append bool) HeaderValue {
	return HeaderValue{header: header, key: key, append: append}
}

func (h HeaderValue) write(v string) {
	if h.append {
		h.header.Add(h.key, v)
	} else {
		h.header.Set(h.key, v)
	}
}

func (h HeaderValue) String(v string)  { h.write(v) }
func (h HeaderValue) Boolean(v bool)   { h.write(strconv.FormatBool(v)) }
func (h HeaderValue) Integer(v int64)  { h.write(strconv.FormatInt(v, 10)) }
func (h HeaderValue) Float(v float64)  { h.write(strconv.FormatFloat(v, 'f', -1, 64)) }
func (h HeaderValue) Blob(v []byte)    { h.write(base64.StdEncoding.EncodeToString(v)) }

// Headers scopes a group of headers under a common prefix, used for
// smithy.api#httpPrefixHeaders map members.
type Headers struct {
	header http.Header
	prefix string
}

func (h Headers) AddHeader(key string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+key, true)
}

func (h Headers) SetHeader(key string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+key, false)
}

// QueryValue sets or appends a single query string value.
type QueryValue struct {
	query  url.Values
	key    string
	append bool
}

func newQueryValue(query url.Values, key string, append bool) QueryValue {
	return QueryValue{query: query, key: key, append: append}
}

func (q QueryValue) write(v string) {
	if q.append {
		q.query.Add(q.key, v)
	} else {
		q.query.Set(q.key, v)
	}
}

func (q QueryValue) String(v string)  { q.write(v) }
func (q QueryValue) Boolean(v bool)   { q.write(strconv.FormatBool(v)) }
func (q QueryValue) Integer(v int64)  { q.write(strconv.FormatInt(v, 10)) }
func (q QueryValue) Float(v float64)  { q.write(strconv.FormatFloat(v, 'f', -1, 64)) }
func (q QueryValue) Blob(v []byte)    { q.write(base64.StdEncoding.EncodeToString(v)) }

// URIValue substitutes one {key} (or greedy {key+}) label in both the
// human-readable and percent-escaped forms of the request path.
type URIValue struct {
	path, rawPath, pathBuffer *[]byte
	key                       string
}

func newURIValue(path, rawPath, pathBuffer *[]byte, key string) URIValue {
	return URIValue{path: path, rawPath: rawPath, pathBuffer: pathBuffer, key: key}
}

// String substitutes a non-greedy {key} label, percent-escaping the
// value including any '/' it contains.
func (v URIValue) String(value string) error {
	return v.replace(value, false)
}

// GreedyLabel substitutes a greedy {key+} label, leaving '/' unescaped
// in the value so it can span multiple path segments.
func (v URIValue) GreedyLabel(value string) error {
	return v.replace(value, true)
}

func (v URIValue) replace(value string, greedy bool) error {
	if value == "" {
		return fmt.Errorf("label %q may not be empty", v.key)
	}

	token := []byte(fmt.Sprintf("{%s}", v.key))
	if greedy {
		token = []byte(fmt.Sprintf("{%s+}", v.key))
	}

	*v.path = bytes.Replace(*v.path, token, []byte(value), 1)

	*v.pathBuffer = escapePath((*v.pathBuffer)[:0], value, greedy)
	*v.rawPath = bytes.Replace(*v.rawPath, token, *v.pathBuffer, 1)
	return nil
}

const uriUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~"

// escapePath percent-encodes every byte of s outside the RFC 3986
// unreserved set, leaving '/' alone when greedy is true.
func escapePath(dst []byte, s string, greedy bool) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if bytes.IndexByte([]byte(uriUnreserved), c) != -1 || (greedy && c == '/') {
			dst = append(dst, c)
			continue
		}
		dst = append(dst, '%', upperHex(c>>4), upperHex(c&0xf))
	}
	return dst
}

func upperHex(nibble byte) byte {
	if nibble < 10 {
		return '0' + nibble
	}
	return 'A' + nibble - 10
}
