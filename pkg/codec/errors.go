package codec

import "fmt"

// MalformedRecordError reports a line whose length or tag matches no record
// type in the schema. Line is 1-based.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
}
