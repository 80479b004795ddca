package cbor

import (
	"fmt"
	"math/big"
	"time"

	"github.com/smithykit/runtime"
)

// valueToDocument converts a decoded cbor.Value into a protocol-agnostic
// smithy.Document, used for members typed as Smithy document shapes. There
// is no schema to guide the conversion, so the mapping picks the Document
// kind that best matches the CBOR major type: integers become
// LongDocument, maps lose key ordering (CBOR maps are unordered), and
// unrecognized tags unwrap to their tagged value.
func valueToDocument(v Value) (smithy.Document, error) {
	switch t := v.(type) {
	case nil:
		return smithy.NullDocument(), nil
	case *Nil:
		return smithy.NullDocument(), nil
	case *Undefined:
		return smithy.NullDocument(), nil
	case Bool:
		return smithy.BoolDocument(bool(t)), nil
	case Uint:
		return smithy.LongDocument(int64(t)), nil
	case NegInt:
		return smithy.LongDocument(-int64(t)), nil
	case Float32:
		return smithy.FloatDocument(float32(t)), nil
	case Float64:
		return smithy.DoubleDocument(float64(t)), nil
	case String:
		return smithy.StringDocument(string(t)), nil
	case Slice:
		return smithy.BlobDocument([]byte(t)), nil
	case List:
		docs := make([]smithy.Document, len(t))
		for i, item := range t {
			dd, err := valueToDocument(item)
			if err != nil {
				return smithy.NullDocument(), err
			}
			docs[i] = dd
		}
		return smithy.ListDocument(docs), nil
	case Map:
		keys := make([]string, 0, len(t))
		vals := make(map[string]smithy.Document, len(t))
		for k, mv := range t {
			dd, err := valueToDocument(mv)
			if err != nil {
				return smithy.NullDocument(), err
			}
			keys = append(keys, k)
			vals[k] = dd
		}
		return smithy.MapDocument(keys, vals), nil
	case *Tag:
		return tagToDocument(t)
	default:
		return smithy.NullDocument(), fmt.Errorf("unsupported cbor value type %T", v)
	}
}

func tagToDocument(t *Tag) (smithy.Document, error) {
	switch t.ID {
	case 1: // epoch-based date/time
		var secs float64
		switch n := t.Value.(type) {
		case Float64:
			secs = float64(n)
		case Float32:
			secs = float64(n)
		case Uint:
			secs = float64(n)
		case NegInt:
			secs = -float64(n)
		default:
			return smithy.NullDocument(), fmt.Errorf("unexpected timestamp value type %T", t.Value)
		}
		whole := int64(secs)
		frac := secs - float64(whole)
		return smithy.TimestampDocument(time.Unix(whole, int64(frac*1e9)).UTC()), nil
	case 2, 3: // positive/negative bignum
		sl, ok := t.Value.(Slice)
		if !ok {
			return smithy.NullDocument(), fmt.Errorf("unexpected bignum value type %T", t.Value)
		}
		n := new(big.Int).SetBytes([]byte(sl))
		if t.ID == 3 {
			n.Add(n, big.NewInt(1))
			n.Neg(n)
		}
		return smithy.BigIntegerDocument(*n), nil
	default:
		return valueToDocument(t.Value)
	}
}
