package schema

// Banking returns the builtin banking flat file layout: 118-byte lines, a
// HEADER with the account holder's details, TRANSACTION records carrying a
// six-digit counter and an amount stored as twelve implied-cents digits, and
// a FOOTER whose total_count and control_sum are derived from the
// transaction set.
func Banking() *Schema {
	types := []*RecordTypeSpec{
		{
			Name:     "HEADER",
			Tag:      "01",
			Width:    118,
			Role:     RoleHeader,
			TagField: "field_id",
			Fields: []FieldSpec{
				{Name: "field_id", Offset: 0, Length: 2, Kind: KindText},
				{Name: "name", Offset: 2, Length: 28, Kind: KindText},
				{Name: "surname", Offset: 30, Length: 30, Kind: KindText},
				{Name: "patronymic", Offset: 60, Length: 30, Kind: KindText},
				{Name: "address", Offset: 90, Length: 28, Kind: KindText},
			},
		},
		{
			Name:          "TRANSACTION",
			Tag:           "02",
			Width:         118,
			Role:          RoleTransaction,
			TagField:      "field_id",
			SelectorField: "counter",
			AmountField:   "amount",
			CurrencyField: "currency",
			Fields: []FieldSpec{
				{Name: "field_id", Offset: 0, Length: 2, Kind: KindText},
				{Name: "counter", Offset: 2, Length: 6, Kind: KindNumeric},
				{Name: "amount", Offset: 8, Length: 12, Kind: KindDecimal, Scale: 2},
				{Name: "currency", Offset: 20, Length: 3, Kind: KindText, Enum: []string{"USD", "EUR", "GBP"}},
				{Name: "reserved", Offset: 23, Length: 95, Kind: KindText},
			},
		},
		{
			Name:     "FOOTER",
			Tag:      "03",
			Width:    118,
			Role:     RoleFooter,
			TagField: "field_id",
			Fields: []FieldSpec{
				{Name: "field_id", Offset: 0, Length: 2, Kind: KindText},
				{Name: "total_count", Offset: 2, Length: 6, Kind: KindNumeric},
				{Name: "control_sum", Offset: 8, Length: 12, Kind: KindDecimal, Scale: 2},
				{Name: "reserved", Offset: 20, Length: 98, Kind: KindText},
			},
		},
	}
	aggregates := []AggregateSpec{
		{Record: "FOOTER", Field: "total_count", Op: OpCount, SourceRecord: "TRANSACTION"},
		{Record: "FOOTER", Field: "control_sum", Op: OpSum, SourceRecord: "TRANSACTION", SourceField: "amount"},
	}
	s, err := New(types, aggregates)
	if err != nil {
		panic("builtin banking schema is invalid: " + err.Error())
	}
	return s
}
