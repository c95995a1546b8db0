package codec

import "github.com/ledgerkit/fixedfile/pkg/schema"

// Record is one decoded line: its record type and the exclusively-owned raw
// bytes, always exactly Type.Width long. Field edits are bounded writes into
// Raw; the slice is never reallocated.
type Record struct {
	Type *schema.RecordTypeSpec
	Raw  []byte
}

// FieldBytes returns the sub-slice of Raw holding the given field. The slice
// aliases Raw, so writes through it mutate the record.
func (r *Record) FieldBytes(fs *schema.FieldSpec) []byte {
	return r.Raw[fs.Offset:fs.End()]
}

// File is an in-memory fixed-width file: an ordered record sequence under one
// schema. Order is meaningful and preserved across edits.
type File struct {
	Schema  *schema.Schema
	Records []*Record

	// terminated remembers whether the source ended with the line
	// terminator, so Encode can reproduce it exactly.
	terminated bool
}

// RecordsOf returns the records of the named type, in file order.
func (f *File) RecordsOf(typeName string) []*Record {
	var out []*Record
	for _, r := range f.Records {
		if r.Type.Name == typeName {
			out = append(out, r)
		}
	}
	return out
}

// Append adds a record at the end of the file.
func (f *File) Append(r *Record) {
	f.Records = append(f.Records, r)
}

// InsertBefore inserts a record so that it ends up at index i.
func (f *File) InsertBefore(i int, r *Record) {
	f.Records = append(f.Records, nil)
	copy(f.Records[i+1:], f.Records[i:])
	f.Records[i] = r
}
