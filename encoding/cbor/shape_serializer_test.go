package cbor

import (
	"math/big"
	"testing"
	"time"

	smithy "github.com/smithykit/runtime"
)

func stringMember(name string) *smithy.Schema {
	target := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "String"}, smithy.ShapeTypeString, nil, nil)
	return smithy.NewMember(name, target)
}

func intMember(name string) *smithy.Schema {
	target := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "Integer"}, smithy.ShapeTypeInteger, nil, nil)
	return smithy.NewMember(name, target)
}

// widget is a minimal Serializable used to drive WriteStruct.
type widget struct {
	name  string
	count int32
}

func (w *widget) Serialize(s smithy.ShapeSerializer) {
	s.WriteString(stringMember("name"), w.name)
	s.WriteInt32(intMember("count"), w.count)
}

func structSchema() *smithy.Schema {
	nameTarget := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "String"}, smithy.ShapeTypeString, nil, nil)
	countTarget := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "Integer"}, smithy.ShapeTypeInteger, nil, nil)
	return smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "Widget"}, smithy.ShapeTypeStructure, nil, []smithy.StructureMember{
		{Schema: smithy.NewMember("name", nameTarget), Required: true},
		{Schema: smithy.NewMember("count", countTarget), Required: true},
	})
}

func TestShapeSerializer_WriteStruct(t *testing.T) {
	ss := &ShapeSerializer{}
	ss.WriteStruct(structSchema(), &widget{name: "gear", count: 3})

	m, ok := ss.root.(Map)
	if !ok {
		t.Fatalf("expected root Map, got %T", ss.root)
	}

	if m["name"] != String("gear") {
		t.Errorf("expected name=gear, got %v", m["name"])
	}
	if m["count"] != Uint(3) {
		t.Errorf("expected count=3, got %v", m["count"])
	}
}

func TestShapeSerializer_WriteStruct_NegativeInt(t *testing.T) {
	ss := &ShapeSerializer{}
	ss.WriteStruct(structSchema(), &widget{name: "gear", count: -7})

	m := ss.root.(Map)
	if m["count"] != NegInt(7) {
		t.Errorf("expected count=NegInt(7), got %v", m["count"])
	}
}

func TestShapeSerializer_WriteList(t *testing.T) {
	ss := &ShapeSerializer{}
	listSchema := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "Strings"}, smithy.ShapeTypeList, nil, nil)

	ss.WriteList(listSchema)
	ss.WriteString(stringMember("member"), "a")
	ss.WriteString(stringMember("member"), "b")
	ss.CloseList()

	l, ok := ss.root.(List)
	if !ok {
		t.Fatalf("expected root List, got %T", ss.root)
	}
	if len(l) != 2 || l[0] != String("a") || l[1] != String("b") {
		t.Errorf("unexpected list contents: %v", l)
	}
}

func TestShapeSerializer_WriteMap_ExplicitKeys(t *testing.T) {
	ss := &ShapeSerializer{}
	mapSchema := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "Map"}, smithy.ShapeTypeMap, nil, nil)
	valSchema := stringMember("value")

	ss.WriteMap(mapSchema)
	ss.WriteKey(nil, "a")
	ss.WriteString(valSchema, "1")
	ss.WriteKey(nil, "b")
	ss.WriteString(valSchema, "2")
	ss.CloseMap()

	m, ok := ss.root.(Map)
	if !ok {
		t.Fatalf("expected root Map, got %T", ss.root)
	}
	if m["a"] != String("1") || m["b"] != String("2") {
		t.Errorf("unexpected map contents: %v", m)
	}
}

func TestShapeSerializer_NestedMapInStruct(t *testing.T) {
	ss := &ShapeSerializer{}
	outer := structSchema()
	mapMember := smithy.NewMember("tags", smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "Tags"}, smithy.ShapeTypeMap, nil, nil))

	ss.WriteMap(outer) // pretend outer struct itself is the open frame
	ss.WriteMap(mapMember)
	ss.WriteKey(nil, "env")
	ss.WriteString(stringMember("value"), "prod")
	ss.CloseMap()
	ss.CloseMap()

	m := ss.root.(Map)
	inner, ok := m["tags"].(Map)
	if !ok {
		t.Fatalf("expected nested map under 'tags', got %v", m)
	}
	if inner["env"] != String("prod") {
		t.Errorf("expected env=prod, got %v", inner)
	}
}

func TestShapeSerializer_WriteTime(t *testing.T) {
	ss := &ShapeSerializer{}
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ss.WriteTime(stringMember("when"), ts)

	tag, ok := ss.root.(*Tag)
	if !ok || tag.ID != 1 {
		t.Fatalf("expected tag 1, got %v", ss.root)
	}
	if tag.Value != Float64(float64(ts.Unix())) {
		t.Errorf("expected epoch seconds %d, got %v", ts.Unix(), tag.Value)
	}
}

func TestShapeSerializer_WriteBigInteger(t *testing.T) {
	ss := &ShapeSerializer{}
	// -2^70 does not fit in an int64, so it cannot collapse to a plain NegInt.
	ss.WriteBigInteger(stringMember("n"), *new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 70)))

	tag, ok := ss.root.(*Tag)
	if !ok || tag.ID != 3 {
		t.Fatalf("expected tag 3 (negative bignum), got %v", ss.root)
	}
}

func TestShapeSerializer_Bytes_RoundTrips(t *testing.T) {
	ss := &ShapeSerializer{}
	ss.WriteStruct(structSchema(), &widget{name: "gear", count: 3})

	encoded := ss.Bytes()
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}

	m, ok := decoded.(Map)
	if !ok || m["name"] != String("gear") || m["count"] != Uint(3) {
		t.Errorf("round-trip mismatch: %v", decoded)
	}
}
