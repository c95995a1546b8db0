package ledger

// SchemaMismatchError reports an operation that requires a record type or
// field the schema does not declare.
type SchemaMismatchError struct {
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return e.Reason
}
