// Package access resolves (record type, field name, optional selector)
// triples to exact byte ranges and performs typed reads and writes on them.
package access

import (
	"github.com/ledgerkit/fixedfile/pkg/codec"
	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// Get resolves a field and returns its logical value. When more than one
// record carries the type tag a selector is required; Get is side-effect
// free.
func Get(f *codec.File, typeName, fieldName, selector string) (string, error) {
	rec, fs, err := resolve(f, typeName, fieldName, selector)
	if err != nil {
		return "", err
	}
	return DecodeValue(fs, rec.FieldBytes(fs))
}

// Set resolves a field like Get and overwrites exactly its byte range with
// the encoded value. No other byte of the record or file changes; the file is
// only mutated in memory.
func Set(f *codec.File, typeName, fieldName, value, selector string) error {
	rec, fs, err := resolve(f, typeName, fieldName, selector)
	if err != nil {
		return err
	}
	encoded, err := EncodeValue(fs, value)
	if err != nil {
		return err
	}
	copy(rec.FieldBytes(fs), encoded)
	return nil
}

// resolve picks the single record the (type, selector) pair designates and
// the spec of the named field on it.
func resolve(f *codec.File, typeName, fieldName, selector string) (*codec.Record, *schema.FieldSpec, error) {
	rt, err := f.Schema.Type(typeName)
	if err != nil {
		return nil, nil, err
	}
	fs, err := rt.Field(fieldName)
	if err != nil {
		return nil, nil, err
	}

	candidates := f.RecordsOf(rt.Name)
	if len(candidates) == 0 {
		return nil, nil, &RecordNotFoundError{Type: rt.Name}
	}
	if selector == "" {
		if len(candidates) > 1 {
			return nil, nil, &AmbiguousSelectionError{Type: rt.Name, Count: len(candidates)}
		}
		return candidates[0], fs, nil
	}

	sel, ok := rt.Selector()
	if !ok {
		return nil, nil, &NoSelectorError{Type: rt.Name}
	}
	var matched []*codec.Record
	for _, rec := range candidates {
		same, err := selectorMatches(sel, rec.FieldBytes(sel), selector)
		if err != nil {
			return nil, nil, err
		}
		if same {
			matched = append(matched, rec)
		}
	}
	switch len(matched) {
	case 0:
		return nil, nil, &RecordNotFoundError{Type: rt.Name, Selector: selector}
	case 1:
		return matched[0], fs, nil
	default:
		return nil, nil, &AmbiguousSelectionError{Type: rt.Name, Count: len(matched), Selector: selector}
	}
}

// selectorMatches compares a record's selector field against the requested
// value. Numeric selectors compare by value, so "3" matches a stored
// "000003".
func selectorMatches(sel *schema.FieldSpec, raw []byte, selector string) (bool, error) {
	stored, err := DecodeValue(sel, raw)
	if err != nil {
		return false, err
	}
	if sel.Kind == schema.KindText {
		return stored == selector, nil
	}
	want, err := DecodeValue(sel, []byte(selector))
	if err != nil {
		return false, err
	}
	return stored == want, nil
}
