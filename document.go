package smithy

import (
	"fmt"
	"math/big"
	"time"
)

// DocumentKind discriminates the value held by a Document.
type DocumentKind int

// Enumerates DocumentKind.
const (
	DocumentKindNull DocumentKind = iota
	DocumentKindBoolean
	DocumentKindByte
	DocumentKindShort
	DocumentKindInteger
	DocumentKindLong
	DocumentKindFloat
	DocumentKindDouble
	DocumentKindBigInteger
	DocumentKindBigDecimal
	DocumentKindString
	DocumentKindBlob
	DocumentKindTimestamp
	DocumentKindList
	DocumentKindMap
	DocumentKindStructure
)

// A Document is a protocol-agnostic, polymorphic value: one of null,
// boolean, a numeric value (byte/short/integer/long/float/double/
// bigInteger/bigDecimal), string, blob, timestamp, a list of documents, a
// string-keyed map of documents (insertion order preserved), or a
// structure, which additionally carries the Schema it was read with and an
// optional discriminator shape ID used to pick a concrete type when
// deserializing a union/polymorphic document.
//
// Document equality (Equal) is defined by value, independent of the codec
// that produced it, and follows numeric promotion: an integer 1 equals a
// decimal 1.0.
//
// The zero Document is DocumentKindNull.
type Document struct {
	kind DocumentKind

	boolVal bool
	intVal  int64
	fltVal  float64
	bigInt  *big.Int
	bigDec  *big.Float
	strVal  string
	blobVal []byte
	tsVal   time.Time

	listVal []Document
	mapKeys []string
	mapVals map[string]Document

	schema        *Schema
	discriminator *ShapeID
}

// NullDocument returns the null document value.
func NullDocument() Document { return Document{kind: DocumentKindNull} }

// BoolDocument wraps a boolean value.
func BoolDocument(v bool) Document { return Document{kind: DocumentKindBoolean, boolVal: v} }

// ByteDocument wraps an int8 value.
func ByteDocument(v int8) Document { return Document{kind: DocumentKindByte, intVal: int64(v)} }

// ShortDocument wraps an int16 value.
func ShortDocument(v int16) Document { return Document{kind: DocumentKindShort, intVal: int64(v)} }

// IntegerDocument wraps an int32 value.
func IntegerDocument(v int32) Document {
	return Document{kind: DocumentKindInteger, intVal: int64(v)}
}

// LongDocument wraps an int64 value.
func LongDocument(v int64) Document { return Document{kind: DocumentKindLong, intVal: v} }

// FloatDocument wraps a float32 value.
func FloatDocument(v float32) Document {
	return Document{kind: DocumentKindFloat, fltVal: float64(v)}
}

// DoubleDocument wraps a float64 value.
func DoubleDocument(v float64) Document { return Document{kind: DocumentKindDouble, fltVal: v} }

// BigIntegerDocument wraps an arbitrary precision integer.
func BigIntegerDocument(v big.Int) Document {
	n := new(big.Int).Set(&v)
	return Document{kind: DocumentKindBigInteger, bigInt: n}
}

// BigDecimalDocument wraps an arbitrary precision decimal.
func BigDecimalDocument(v big.Float) Document {
	n := new(big.Float).Set(&v)
	return Document{kind: DocumentKindBigDecimal, bigDec: n}
}

// StringDocument wraps a string value.
func StringDocument(v string) Document { return Document{kind: DocumentKindString, strVal: v} }

// BlobDocument wraps a byte slice.
func BlobDocument(v []byte) Document { return Document{kind: DocumentKindBlob, blobVal: v} }

// TimestampDocument wraps a time value.
func TimestampDocument(v time.Time) Document { return Document{kind: DocumentKindTimestamp, tsVal: v} }

// ListDocument wraps an ordered list of documents.
func ListDocument(v []Document) Document { return Document{kind: DocumentKindList, listVal: v} }

// MapDocument wraps a string-keyed map of documents. keys gives the
// iteration order; every entry in keys must exist in vals.
func MapDocument(keys []string, vals map[string]Document) Document {
	return Document{kind: DocumentKindMap, mapKeys: keys, mapVals: vals}
}

// StructureDocument wraps a structure value: an ordered set of member name
// to document value pairs, the schema it was read with, and an optional
// discriminator used to pick a concrete type for a union/polymorphic
// document.
func StructureDocument(schema *Schema, keys []string, vals map[string]Document, discriminator *ShapeID) Document {
	return Document{
		kind:          DocumentKindStructure,
		schema:        schema,
		mapKeys:       keys,
		mapVals:       vals,
		discriminator: discriminator,
	}
}

// Kind returns the document's value kind.
func (d Document) Kind() DocumentKind { return d.kind }

// IsNull reports whether the document is null.
func (d Document) IsNull() bool { return d.kind == DocumentKindNull }

// Bool returns the boolean value and whether the document held one.
func (d Document) Bool() (bool, bool) { return d.boolVal, d.kind == DocumentKindBoolean }

// Int64 returns any integral numeric kind (byte/short/integer/long) widened
// to int64, and whether the document held one.
func (d Document) Int64() (int64, bool) {
	switch d.kind {
	case DocumentKindByte, DocumentKindShort, DocumentKindInteger, DocumentKindLong:
		return d.intVal, true
	}
	return 0, false
}

// Float64 returns a float or double kind widened to float64, and whether
// the document held one.
func (d Document) Float64() (float64, bool) {
	switch d.kind {
	case DocumentKindFloat, DocumentKindDouble:
		return d.fltVal, true
	}
	return 0, false
}

// BigInt returns the arbitrary precision integer value, if any.
func (d Document) BigInt() (*big.Int, bool) {
	if d.kind != DocumentKindBigInteger {
		return nil, false
	}
	return d.bigInt, true
}

// BigFloat returns the arbitrary precision decimal value, if any.
func (d Document) BigFloat() (*big.Float, bool) {
	if d.kind != DocumentKindBigDecimal {
		return nil, false
	}
	return d.bigDec, true
}

// String returns the string value, if any.
func (d Document) String() (string, bool) {
	return d.strVal, d.kind == DocumentKindString
}

// Blob returns the blob value, if any.
func (d Document) Blob() ([]byte, bool) {
	return d.blobVal, d.kind == DocumentKindBlob
}

// Timestamp returns the timestamp value, if any.
func (d Document) Timestamp() (time.Time, bool) {
	return d.tsVal, d.kind == DocumentKindTimestamp
}

// List returns the list elements, if any.
func (d Document) List() ([]Document, bool) {
	return d.listVal, d.kind == DocumentKindList
}

// Keys returns the ordered key set of a map or structure document.
func (d Document) Keys() []string {
	return d.mapKeys
}

// Get returns the value at key for a map or structure document.
func (d Document) Get(key string) (Document, bool) {
	v, ok := d.mapVals[key]
	return v, ok
}

// Schema returns the schema a structure document was read with, if any.
func (d Document) Schema() *Schema {
	return d.schema
}

// Discriminator returns the shape ID used to select a concrete type for a
// union/polymorphic document, if any.
func (d Document) Discriminator() *ShapeID {
	return d.discriminator
}

// numericValue returns a *big.Float representation of d for any numeric
// kind, used by Equal to implement cross-kind numeric promotion.
func (d Document) numericValue() (*big.Float, bool) {
	switch d.kind {
	case DocumentKindByte, DocumentKindShort, DocumentKindInteger, DocumentKindLong:
		return new(big.Float).SetInt64(d.intVal), true
	case DocumentKindFloat, DocumentKindDouble:
		return big.NewFloat(d.fltVal), true
	case DocumentKindBigInteger:
		return new(big.Float).SetInt(d.bigInt), true
	case DocumentKindBigDecimal:
		return d.bigDec, true
	}
	return nil, false
}

// Equal reports whether d and other represent the same value, independent
// of which codec produced them. Numeric kinds compare by promoted value (an
// integer 1 equals a decimal 1.0); lists and maps compare element-wise;
// structures compare by member set, ignoring schema identity.
func (d Document) Equal(other Document) bool {
	if dn, ok := d.numericValue(); ok {
		on, ok := other.numericValue()
		return ok && dn.Cmp(on) == 0
	}

	if d.kind != other.kind {
		return false
	}

	switch d.kind {
	case DocumentKindNull:
		return true
	case DocumentKindBoolean:
		return d.boolVal == other.boolVal
	case DocumentKindString:
		return d.strVal == other.strVal
	case DocumentKindBlob:
		return string(d.blobVal) == string(other.blobVal)
	case DocumentKindTimestamp:
		return d.tsVal.Equal(other.tsVal)
	case DocumentKindList:
		if len(d.listVal) != len(other.listVal) {
			return false
		}
		for i := range d.listVal {
			if !d.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case DocumentKindMap, DocumentKindStructure:
		if len(d.mapKeys) != len(other.mapKeys) {
			return false
		}
		for _, k := range d.mapKeys {
			dv, ok := d.mapVals[k]
			if !ok {
				return false
			}
			ov, ok := other.mapVals[k]
			if !ok || !dv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// Serialize writes the document to ser, dispatching on Kind. Lists and maps
// stream their elements via ser's WriteList/WriteMap rather than building an
// intermediate representation.
func (d Document) Serialize(schema *Schema, ser ShapeSerializer) {
	switch d.kind {
	case DocumentKindNull:
		ser.WriteNil(schema)
	case DocumentKindBoolean:
		ser.WriteBool(schema, d.boolVal)
	case DocumentKindByte:
		ser.WriteInt8(schema, int8(d.intVal))
	case DocumentKindShort:
		ser.WriteInt16(schema, int16(d.intVal))
	case DocumentKindInteger:
		ser.WriteInt32(schema, int32(d.intVal))
	case DocumentKindLong:
		ser.WriteInt64(schema, d.intVal)
	case DocumentKindFloat:
		ser.WriteFloat32(schema, float32(d.fltVal))
	case DocumentKindDouble:
		ser.WriteFloat64(schema, d.fltVal)
	case DocumentKindBigInteger:
		ser.WriteBigInteger(schema, *d.bigInt)
	case DocumentKindBigDecimal:
		ser.WriteBigDecimal(schema, *d.bigDec)
	case DocumentKindString:
		ser.WriteString(schema, d.strVal)
	case DocumentKindBlob:
		ser.WriteBlob(schema, d.blobVal)
	case DocumentKindTimestamp:
		ser.WriteTime(schema, d.tsVal)
	case DocumentKindList:
		ser.WriteList(schema)
		for _, v := range d.listVal {
			v.Serialize(schema, ser)
		}
		ser.CloseList()
	case DocumentKindMap, DocumentKindStructure:
		ser.WriteMap(schema)
		for _, k := range d.mapKeys {
			ser.WriteKey(schema, k)
			d.mapVals[k].Serialize(schema, ser)
		}
		ser.CloseMap()
	default:
		panic(fmt.Sprintf("smithy: unknown document kind %d", d.kind))
	}
}
