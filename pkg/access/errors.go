package access

import "fmt"

// AmbiguousSelectionError reports that several records carry the requested
// type tag and the selection could not be narrowed to one.
type AmbiguousSelectionError struct {
	Type     string
	Count    int
	Selector string
}

func (e *AmbiguousSelectionError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("%d %s records match selector %q", e.Count, e.Type, e.Selector)
	}
	return fmt.Sprintf("%d %s records in file, a selector is required", e.Count, e.Type)
}

// RecordNotFoundError reports that no record matched the requested type and
// selector.
type RecordNotFoundError struct {
	Type     string
	Selector string
}

func (e *RecordNotFoundError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("no %s record with selector %q", e.Type, e.Selector)
	}
	return fmt.Sprintf("no %s record in file", e.Type)
}

// NoSelectorError reports a selector given for a record type that declares no
// selector field.
type NoSelectorError struct {
	Type string
}

func (e *NoSelectorError) Error() string {
	return fmt.Sprintf("record type %s has no selector field", e.Type)
}

// ValueTooLongError reports a value whose encoded form exceeds the field
// width.
type ValueTooLongError struct {
	Field  string
	Value  string
	Length int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("value %q is %d bytes, field %s holds %d", e.Value, len(e.Value), e.Field, e.Length)
}

// InvalidValueError reports a value the field kind cannot represent, or one
// outside the field's allowed set.
type InvalidValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s: %s", e.Value, e.Field, e.Reason)
}
