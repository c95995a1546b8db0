// Package ledger appends transactions to a fixed-width file and keeps
// schema-declared aggregate fields (counts, totals) consistent with the
// record set.
package ledger

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/fixedfile/pkg/access"
	"github.com/ledgerkit/fixedfile/pkg/codec"
	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// Appender constructs transaction records for one schema.
type Appender struct {
	schema *schema.Schema
}

// New creates an appender for the schema.
func New(s *schema.Schema) *Appender {
	return &Appender{schema: s}
}

// Add builds a new transaction record, assigns it the next counter value,
// inserts it immediately before the first footer record (at the end of the
// file when no footer exists) and recomputes all aggregate fields. The file
// is only mutated in memory.
func (a *Appender) Add(f *codec.File, amount, currency string) error {
	rt, ok := a.schema.RoleType(schema.RoleTransaction)
	if !ok {
		return &SchemaMismatchError{Reason: "schema defines no transaction record type"}
	}
	if rt.AmountField == "" || rt.CurrencyField == "" {
		return &SchemaMismatchError{Reason: "transaction record type " + rt.Name + " declares no amount or currency field"}
	}

	rec := &codec.Record{Type: rt, Raw: blankLine(rt)}

	if sel, ok := rt.Selector(); ok {
		next, err := a.nextCounter(f, rt, sel)
		if err != nil {
			return err
		}
		if err := writeField(rec, sel, strconv.FormatInt(next, 10)); err != nil {
			return err
		}
	}
	amountSpec, err := rt.Field(rt.AmountField)
	if err != nil {
		return err
	}
	if err := writeField(rec, amountSpec, amount); err != nil {
		return err
	}
	currencySpec, err := rt.Field(rt.CurrencyField)
	if err != nil {
		return err
	}
	if err := writeField(rec, currencySpec, currency); err != nil {
		return err
	}

	// Insertion before the footer is the documented policy, not an
	// accident of implementation.
	inserted := false
	for i, r := range f.Records {
		if r.Type.Role == schema.RoleFooter {
			f.InsertBefore(i, rec)
			inserted = true
			break
		}
	}
	if !inserted {
		f.Append(rec)
	}

	return a.Refresh(f)
}

// Refresh recomputes every aggregate field from the current record set, so
// footers stay a pure function of the file body.
func (a *Appender) Refresh(f *codec.File) error {
	for _, agg := range a.schema.Aggregates() {
		value, err := a.aggregateValue(f, agg)
		if err != nil {
			return err
		}
		target, err := a.schema.Type(agg.Record)
		if err != nil {
			return err
		}
		fs, err := target.Field(agg.Field)
		if err != nil {
			return err
		}
		for _, rec := range f.RecordsOf(target.Name) {
			if err := writeField(rec, fs, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Appender) aggregateValue(f *codec.File, agg schema.AggregateSpec) (string, error) {
	sources := f.RecordsOf(agg.SourceRecord)
	if agg.Op == schema.OpCount {
		return strconv.Itoa(len(sources)), nil
	}

	source, err := a.schema.Type(agg.SourceRecord)
	if err != nil {
		return "", err
	}
	fs, err := source.Field(agg.SourceField)
	if err != nil {
		return "", err
	}
	total := decimal.Zero
	for _, rec := range sources {
		v, err := access.DecodeValue(fs, rec.FieldBytes(fs))
		if err != nil {
			return "", err
		}
		n, err := decimal.NewFromString(v)
		if err != nil {
			return "", err
		}
		total = total.Add(n)
	}
	if fs.Kind == schema.KindDecimal {
		return total.StringFixed(int32(fs.Scale)), nil
	}
	return total.String(), nil
}

// nextCounter returns one greater than the maximum counter among existing
// transaction records, starting at 1 for a file with none.
func (a *Appender) nextCounter(f *codec.File, rt *schema.RecordTypeSpec, sel *schema.FieldSpec) (int64, error) {
	var max int64
	for _, rec := range f.RecordsOf(rt.Name) {
		v, err := access.DecodeValue(sel, rec.FieldBytes(sel))
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, &access.InvalidValueError{Field: sel.Name, Value: v, Reason: "existing counter is not an integer"}
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

// blankLine builds an empty record image: every field region filled with its
// own pad byte (zeros for numerics, spaces for text), gaps filled with
// spaces, and the tag written into the tag field.
func blankLine(rt *schema.RecordTypeSpec) []byte {
	raw := bytes.Repeat([]byte{' '}, rt.Width)
	for i := range rt.Fields {
		fs := &rt.Fields[i]
		for j := fs.Offset; j < fs.End(); j++ {
			raw[j] = fs.PadByte()
		}
	}
	tag := rt.TagSpec()
	copy(raw[tag.Offset:tag.End()], rt.Tag)
	return raw
}

func writeField(rec *codec.Record, fs *schema.FieldSpec, value string) error {
	encoded, err := access.EncodeValue(fs, value)
	if err != nil {
		return err
	}
	copy(rec.FieldBytes(fs), encoded)
	return nil
}
