package smithy

import (
	"fmt"
	"maps"
	"strings"
)

// ShapeType is a type of Smithy shape.
// See https://smithy.io/2.0/spec/idl.html#defining-shapes.
type ShapeType int

// Enumerates ShapeType per the Smithy IDL.
const (
	ShapeTypeBlob ShapeType = iota
	ShapeTypeBoolean
	ShapeTypeString
	ShapeTypeTimestamp
	ShapeTypeByte
	ShapeTypeShort
	ShapeTypeInteger
	ShapeTypeLong
	ShapeTypeFloat
	ShapeTypeDocument
	ShapeTypeDouble
	ShapeTypeBigDecimal
	ShapeTypeBigInteger
	ShapeTypeEnum
	ShapeTypeIntEnum
	ShapeTypeList
	ShapeTypeSet
	ShapeTypeMap
	ShapeTypeStructure
	ShapeTypeUnion
	ShapeTypeMember
	ShapeTypeService
	ShapeTypeResource
	ShapeTypeOperation
)

// ShapeID fields of a Smithy shape ID.
type ShapeID struct {
	Namespace, Name, Member string
}

// String returns the IDL microformat for the shape ID.
func (s *ShapeID) String() string {
	if s.Member == "" {
		return fmt.Sprintf("%s#%s", s.Namespace, s.Name)
	}
	return fmt.Sprintf("%s#%s$%s", s.Namespace, s.Name, s.Member)
}

func stoid(s string) ShapeID {
	ns, n, _ := strings.Cut(s, "#")
	n, m, _ := strings.Cut(n, "$")
	return ShapeID{ns, n, m}
}

// maxBitfieldMembers is the largest member count for which
// Schema.RequiredBitfield is populated. Above this, presence must be
// checked member-by-member; RequiredBitfield reads back as 0.
const maxBitfieldMembers = 64

// Schema encodes information about a shape from a Smithy model.
//
// Generated clients use schemas at runtime to dynamically (de)serialize
// request/responses. A Schema is immutable once constructed: every field is
// populated at construction time (by generated code, or by NewStructure /
// NewMember / NewEnum below) and never mutated afterward, so a single Schema
// value can be shared across goroutines for the process lifetime.
type Schema struct {
	ID     ShapeID
	Type   ShapeType
	Traits map[string]Trait // trait ID -> trait

	members     []*Schema
	memberIndex map[string]int

	// RequiredBitfield is the bitwise OR of every required member's bit
	// (1<<index). It is 0 when the shape has more than 64 members or no
	// required members.
	RequiredBitfield uint64

	enumStrings []string
	enumInts    []int32
}

// NewMember creates a member schema from a target schema, overriding traits.
//
// Traits provided for the member override any traits on the target if there
// is collision. A member's target is never itself a member: resolving
// through NewMember always yields the underlying shape's members/enum
// values, never another member's.
func NewMember(name string, target *Schema, traits ...Trait) *Schema {
	m := &Schema{
		ID:          ShapeID{Member: name},
		Type:        target.Type,
		members:     target.members,
		memberIndex: target.memberIndex,
		Traits:      maps.Clone(target.Traits),
		enumStrings: target.enumStrings,
		enumInts:    target.enumInts,
	}

	if len(m.Traits) == 0 && len(traits) != 0 {
		m.Traits = map[string]Trait{}
	}
	for _, t := range traits {
		m.Traits[t.TraitID()] = t
	}

	return m
}

// StructureMember describes one member passed to NewStructure: its member
// schema plus whether the member is required for validation purposes.
type StructureMember struct {
	Schema   *Schema
	Required bool
}

// NewStructure builds a structure (or union) schema from an ordered list of
// members. Indices are assigned densely in the order given: 0-based, dense,
// and stable, per the structure member invariants.
//
// RequiredBitfield is the OR of each required member's bit, valid only when
// len(members) <= 64; a larger member list leaves it 0.
func NewStructure(id ShapeID, shapeType ShapeType, traits []Trait, members []StructureMember) *Schema {
	s := &Schema{
		ID:          id,
		Type:        shapeType,
		members:     make([]*Schema, len(members)),
		memberIndex: make(map[string]int, len(members)),
	}
	if len(traits) != 0 {
		s.Traits = map[string]Trait{}
		for _, t := range traits {
			s.Traits[t.TraitID()] = t
		}
	}

	for i, m := range members {
		s.members[i] = m.Schema
		s.memberIndex[m.Schema.ID.Member] = i
		if m.Required && len(members) <= maxBitfieldMembers {
			s.RequiredBitfield |= 1 << uint(i)
		}
	}

	return s
}

// NewEnum builds a string enum schema with the given permitted values.
func NewEnum(id ShapeID, traits []Trait, values []string) *Schema {
	s := &Schema{ID: id, Type: ShapeTypeEnum, enumStrings: values}
	if len(traits) != 0 {
		s.Traits = map[string]Trait{}
		for _, t := range traits {
			s.Traits[t.TraitID()] = t
		}
	}
	return s
}

// NewIntEnum builds an integer enum schema with the given permitted values.
func NewIntEnum(id ShapeID, traits []Trait, values []int32) *Schema {
	s := &Schema{ID: id, Type: ShapeTypeIntEnum, enumInts: values}
	if len(traits) != 0 {
		s.Traits = map[string]Trait{}
		for _, t := range traits {
			s.Traits[t.TraitID()] = t
		}
	}
	return s
}

// MemberByName returns the member schema with the given name in O(1), and
// whether it was found.
func (s *Schema) MemberByName(name string) (*Schema, bool) {
	i, ok := s.memberIndex[name]
	if !ok {
		return nil, false
	}
	return s.members[i], true
}

// Members returns the schema's members in declaration order.
func (s *Schema) Members() []*Schema {
	return s.members
}

// IsEnumString reports whether the schema is a string enum.
func (s *Schema) IsEnumString() bool {
	return s.Type == ShapeTypeEnum
}

// IsEnumInt reports whether the schema is an int enum.
func (s *Schema) IsEnumInt() bool {
	return s.Type == ShapeTypeIntEnum
}

// EnumValues returns the permitted string values of a string enum schema.
func (s *Schema) EnumValues() []string {
	return s.enumStrings
}

// IntEnumValues returns the permitted values of an int enum schema.
func (s *Schema) IntEnumValues() []int32 {
	return s.enumInts
}

// SchemaTrait returns the target trait on the schema if it exists.
func SchemaTrait[T Trait](s *Schema) (T, bool) {
	var trait T

	opaque, ok := s.Traits[trait.TraitID()]
	if !ok {
		return trait, false
	}

	tt, ok := opaque.(T)
	return tt, ok
}

// FilterMembers invokes fn for each member of s whose schema matches pred,
// in declaration order. HTTP binding and event-stream encoding use this to
// project a subset of a structure's members into a serializer without
// allocating an intermediate copy of the structure.
func FilterMembers(s *Schema, pred func(*Schema) bool, fn func(*Schema)) {
	for _, m := range s.members {
		if pred(m) {
			fn(m)
		}
	}
}
