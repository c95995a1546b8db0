package schema

import "fmt"

// InvalidSchemaError reports a schema that failed construction-time
// validation. Type and Field narrow down where the violation sits; either may
// be empty for schema-level problems.
type InvalidSchemaError struct {
	Type   string
	Field  string
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	switch {
	case e.Type != "" && e.Field != "":
		return fmt.Sprintf("invalid schema: record type %s, field %s: %s", e.Type, e.Field, e.Reason)
	case e.Type != "":
		return fmt.Sprintf("invalid schema: record type %s: %s", e.Type, e.Reason)
	default:
		return fmt.Sprintf("invalid schema: %s", e.Reason)
	}
}

// UnknownRecordTypeError reports a lookup of a record type the schema does
// not define.
type UnknownRecordTypeError struct {
	Name string
}

func (e *UnknownRecordTypeError) Error() string {
	return fmt.Sprintf("unknown record type %q", e.Name)
}

// UnknownFieldError reports a lookup of a field a record type does not
// define.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("record type %s has no field %q", e.Type, e.Field)
}
