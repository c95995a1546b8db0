// Package schema describes the layout of fixed-width files: which record
// types exist, how wide their lines are, and which byte ranges carry which
// fields. Schemas are validated once at construction and never mutated.
package schema

import (
	"fmt"
	"sort"
)

// FieldKind determines how a field's bytes are interpreted.
type FieldKind string

const (
	KindText    FieldKind = "text"    // raw characters, padding stripped
	KindNumeric FieldKind = "numeric" // unsigned integer, leading zeros ignored
	KindDecimal FieldKind = "decimal" // scaled integer with an implied decimal point
)

// Justify determines which side of a field the value sits on.
type Justify string

const (
	JustifyLeft  Justify = "left"
	JustifyRight Justify = "right"
)

// Role marks the part a record type plays in the file, so operations like
// "append a transaction" or "insert before the footer" can find their targets
// without hard-coding type names.
type Role string

const (
	RoleNone        Role = ""
	RoleHeader      Role = "header"
	RoleTransaction Role = "transaction"
	RoleFooter      Role = "footer"
)

// AggregateOp is the derivation rule for an aggregate field.
type AggregateOp string

const (
	OpCount AggregateOp = "count"
	OpSum   AggregateOp = "sum"
)

// FieldSpec describes a single field within a record type.
type FieldSpec struct {
	Name    string    `yaml:"name"`
	Offset  int       `yaml:"offset"`
	Length  int       `yaml:"length"`
	Kind    FieldKind `yaml:"kind"`
	Justify Justify   `yaml:"justify,omitempty"`
	Pad     string    `yaml:"pad,omitempty"`
	Scale   int       `yaml:"scale,omitempty"`
	Enum    []string  `yaml:"enum,omitempty"`
}

// End returns the exclusive end offset of the field's byte range.
func (f *FieldSpec) End() int {
	return f.Offset + f.Length
}

// PadByte returns the padding byte for the field.
func (f *FieldSpec) PadByte() byte {
	return f.Pad[0]
}

// normalize fills in the per-kind defaults: numeric and decimal fields are
// right-justified and zero-filled, text fields left-justified and
// space-filled.
func (f *FieldSpec) normalize() {
	if f.Justify == "" {
		switch f.Kind {
		case KindNumeric, KindDecimal:
			f.Justify = JustifyRight
		default:
			f.Justify = JustifyLeft
		}
	}
	if f.Pad == "" {
		switch f.Kind {
		case KindNumeric, KindDecimal:
			f.Pad = "0"
		default:
			f.Pad = " "
		}
	}
}

// RecordTypeSpec describes one record type: its identifying tag, line width
// and field layout.
type RecordTypeSpec struct {
	Name          string      `yaml:"name"`
	Tag           string      `yaml:"tag"`
	Width         int         `yaml:"width"`
	Role          Role        `yaml:"role,omitempty"`
	TagField      string      `yaml:"tag_field"`
	SelectorField string      `yaml:"selector_field,omitempty"`
	AmountField   string      `yaml:"amount_field,omitempty"`
	CurrencyField string      `yaml:"currency_field,omitempty"`
	Fields        []FieldSpec `yaml:"fields"`
}

// Field returns the named field's spec.
func (rt *RecordTypeSpec) Field(name string) (*FieldSpec, error) {
	for i := range rt.Fields {
		if rt.Fields[i].Name == name {
			return &rt.Fields[i], nil
		}
	}
	return nil, &UnknownFieldError{Type: rt.Name, Field: name}
}

// TagSpec returns the field that carries the record tag. The schema
// validation guarantees it exists.
func (rt *RecordTypeSpec) TagSpec() *FieldSpec {
	fs, _ := rt.Field(rt.TagField)
	return fs
}

// Selector returns the field used to disambiguate records of this type, if
// one is declared.
func (rt *RecordTypeSpec) Selector() (*FieldSpec, bool) {
	if rt.SelectorField == "" {
		return nil, false
	}
	fs, err := rt.Field(rt.SelectorField)
	return fs, err == nil
}

// AggregateSpec declares a derived field: Record.Field is recomputed from the
// source records after every mutation. OpCount counts SourceRecord records,
// OpSum totals their SourceField values.
type AggregateSpec struct {
	Record       string      `yaml:"record"`
	Field        string      `yaml:"field"`
	Op           AggregateOp `yaml:"op"`
	SourceRecord string      `yaml:"source_record"`
	SourceField  string      `yaml:"source_field,omitempty"`
}

// Schema is the validated, immutable set of record types for one file layout.
type Schema struct {
	types      []*RecordTypeSpec
	byName     map[string]*RecordTypeSpec
	byTag      map[string]*RecordTypeSpec
	aggregates []AggregateSpec
}

// New builds a Schema from record type specs and aggregate declarations,
// validating the whole layout. It returns an *InvalidSchemaError describing
// the first violation found.
func New(types []*RecordTypeSpec, aggregates []AggregateSpec) (*Schema, error) {
	if len(types) == 0 {
		return nil, &InvalidSchemaError{Reason: "no record types defined"}
	}
	s := &Schema{
		types:      types,
		byName:     make(map[string]*RecordTypeSpec, len(types)),
		byTag:      make(map[string]*RecordTypeSpec, len(types)),
		aggregates: aggregates,
	}
	for _, rt := range types {
		if err := validateType(rt); err != nil {
			return nil, err
		}
		if _, dup := s.byName[rt.Name]; dup {
			return nil, &InvalidSchemaError{Type: rt.Name, Reason: "duplicate record type name"}
		}
		if _, dup := s.byTag[rt.Tag]; dup {
			return nil, &InvalidSchemaError{Type: rt.Name, Reason: fmt.Sprintf("tag %q already used by another record type", rt.Tag)}
		}
		s.byName[rt.Name] = rt
		s.byTag[rt.Tag] = rt
	}
	for _, agg := range aggregates {
		if err := s.validateAggregate(agg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Types returns the record types in declaration order.
func (s *Schema) Types() []*RecordTypeSpec {
	return s.types
}

// Type returns the record type with the given name.
func (s *Schema) Type(name string) (*RecordTypeSpec, error) {
	rt, ok := s.byName[name]
	if !ok {
		return nil, &UnknownRecordTypeError{Name: name}
	}
	return rt, nil
}

// TypeByTag returns the record type identified by the given tag bytes.
func (s *Schema) TypeByTag(tag string) (*RecordTypeSpec, bool) {
	rt, ok := s.byTag[tag]
	return rt, ok
}

// RoleType returns the first record type declared with the given role.
func (s *Schema) RoleType(role Role) (*RecordTypeSpec, bool) {
	for _, rt := range s.types {
		if rt.Role == role {
			return rt, true
		}
	}
	return nil, false
}

// Aggregates returns the aggregate field declarations.
func (s *Schema) Aggregates() []AggregateSpec {
	return s.aggregates
}

func validateType(rt *RecordTypeSpec) error {
	fail := func(field, reason string) error {
		return &InvalidSchemaError{Type: rt.Name, Field: field, Reason: reason}
	}
	if rt.Name == "" {
		return &InvalidSchemaError{Reason: "record type with empty name"}
	}
	if rt.Width <= 0 {
		return fail("", fmt.Sprintf("width must be positive, got %d", rt.Width))
	}
	if rt.Tag == "" {
		return fail("", "empty tag")
	}
	switch rt.Role {
	case RoleNone, RoleHeader, RoleTransaction, RoleFooter:
	default:
		return fail("", fmt.Sprintf("unknown role %q", rt.Role))
	}
	if len(rt.Fields) == 0 {
		return fail("", "no fields defined")
	}

	seen := make(map[string]bool, len(rt.Fields))
	for i := range rt.Fields {
		f := &rt.Fields[i]
		if f.Name == "" {
			return fail("", fmt.Sprintf("field %d has an empty name", i))
		}
		if seen[f.Name] {
			return fail(f.Name, "duplicate field name")
		}
		seen[f.Name] = true
		if f.Length <= 0 {
			return fail(f.Name, fmt.Sprintf("length must be positive, got %d", f.Length))
		}
		if f.Offset < 0 {
			return fail(f.Name, fmt.Sprintf("negative offset %d", f.Offset))
		}
		if f.End() > rt.Width {
			return fail(f.Name, fmt.Sprintf("range [%d,%d) exceeds record width %d", f.Offset, f.End(), rt.Width))
		}
		switch f.Kind {
		case KindText, KindNumeric, KindDecimal:
		default:
			return fail(f.Name, fmt.Sprintf("unknown kind %q", f.Kind))
		}
		f.normalize()
		switch f.Justify {
		case JustifyLeft, JustifyRight:
		default:
			return fail(f.Name, fmt.Sprintf("unknown justify %q", f.Justify))
		}
		if len(f.Pad) != 1 {
			return fail(f.Name, fmt.Sprintf("pad must be a single byte, got %q", f.Pad))
		}
		if f.Kind != KindDecimal && f.Scale != 0 {
			return fail(f.Name, "scale is only valid for decimal fields")
		}
		if f.Scale < 0 || (f.Kind == KindDecimal && f.Scale >= f.Length) {
			return fail(f.Name, fmt.Sprintf("scale %d does not fit in %d bytes", f.Scale, f.Length))
		}
	}

	// Non-overlap check over the sorted ranges.
	sorted := make([]*FieldSpec, 0, len(rt.Fields))
	for i := range rt.Fields {
		sorted = append(sorted, &rt.Fields[i])
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Offset < prev.End() {
			return fail(cur.Name, fmt.Sprintf("range [%d,%d) overlaps field %s [%d,%d)",
				cur.Offset, cur.End(), prev.Name, prev.Offset, prev.End()))
		}
	}

	tag, err := rt.Field(rt.TagField)
	if err != nil {
		return fail(rt.TagField, "tag field is not defined")
	}
	if tag.Length != len(rt.Tag) {
		return fail(rt.TagField, fmt.Sprintf("tag %q does not fit tag field of %d bytes", rt.Tag, tag.Length))
	}
	for _, ref := range []string{rt.SelectorField, rt.AmountField, rt.CurrencyField} {
		if ref == "" {
			continue
		}
		if _, err := rt.Field(ref); err != nil {
			return fail(ref, "referenced field is not defined")
		}
	}
	return nil
}

func (s *Schema) validateAggregate(agg AggregateSpec) error {
	fail := func(reason string) error {
		return &InvalidSchemaError{Type: agg.Record, Field: agg.Field, Reason: reason}
	}
	target, ok := s.byName[agg.Record]
	if !ok {
		return fail("aggregate record type is not defined")
	}
	tf, err := target.Field(agg.Field)
	if err != nil {
		return fail("aggregate field is not defined")
	}
	if tf.Kind == KindText {
		return fail("aggregate field must be numeric or decimal")
	}
	source, ok := s.byName[agg.SourceRecord]
	if !ok {
		return fail(fmt.Sprintf("aggregate source record type %q is not defined", agg.SourceRecord))
	}
	switch agg.Op {
	case OpCount:
	case OpSum:
		sf, err := source.Field(agg.SourceField)
		if err != nil {
			return fail(fmt.Sprintf("aggregate source field %q is not defined on %s", agg.SourceField, source.Name))
		}
		if sf.Kind == KindText {
			return fail(fmt.Sprintf("aggregate source field %q must be numeric or decimal", agg.SourceField))
		}
	default:
		return fail(fmt.Sprintf("unknown aggregate op %q", agg.Op))
	}
	return nil
}
