// Package codec converts between raw fixed-width file bytes and structured
// records, and back.
//
// # Line Format
//
// A file is a sequence of lines separated by a fixed terminator (newline by
// default). Every line is exactly as wide as the record type it belongs to,
// and the bytes of its tag field identify that type:
//
//	01John                        Smith ...            <- HEADER (tag "01")
//	02000001000000012550USD                ...         <- TRANSACTION (tag "02")
//	03000002000000025100                   ...         <- FOOTER (tag "03")
//
// There are no delimiters inside a line; fields are located purely by byte
// offset, so the codec never trims, reflows or reorders anything.
//
// # Fidelity Contract
//
// Downstream consumers of these files are column-position sensitive, so the
// codec's central guarantee is byte-for-byte fidelity:
//
//	Encode(Decode(data)) == data
//
// for any data that decodes successfully, including the presence or absence
// of a terminator on the final line. Decoding is also idempotent through a
// round trip: re-decoding an encoded file yields equal records.
//
// # Error Handling
//
// A line whose length or tag matches no record type in the schema fails
// decoding with a *MalformedRecordError carrying the 1-based line number and
// a reason that names the expected and actual widths. Nothing is returned on
// failure; a file either decodes completely or not at all.
package codec
