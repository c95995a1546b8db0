package access

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// DecodeValue strips padding from a field's raw bytes and interprets them per
// the field kind. Numeric fields decode as integers with leading zeros
// dropped; decimal fields shift the stored digits by the field's scale, so
// "000000050000" at scale 2 decodes to "500.00".
func DecodeValue(fs *schema.FieldSpec, raw []byte) (string, error) {
	trimmed := trimPad(fs, raw)
	switch fs.Kind {
	case schema.KindNumeric:
		if trimmed == "" {
			return "0", nil
		}
		n, err := decimal.NewFromString(trimmed)
		if err != nil || !n.IsInteger() {
			return "", &InvalidValueError{Field: fs.Name, Value: trimmed, Reason: "not a valid integer"}
		}
		return n.String(), nil
	case schema.KindDecimal:
		if trimmed == "" {
			trimmed = "0"
		}
		n, err := decimal.NewFromString(trimmed)
		if err != nil || !n.IsInteger() {
			return "", &InvalidValueError{Field: fs.Name, Value: trimmed, Reason: "not a valid scaled integer"}
		}
		return n.Shift(int32(-fs.Scale)).StringFixed(int32(fs.Scale)), nil
	default:
		return trimmed, nil
	}
}

// EncodeValue renders a logical value into exactly Length bytes, applying the
// field's kind, justification and padding. A representation longer than the
// field fails with *ValueTooLongError; a value the kind cannot represent
// fails with *InvalidValueError.
func EncodeValue(fs *schema.FieldSpec, value string) ([]byte, error) {
	if len(fs.Enum) > 0 && !contains(fs.Enum, value) {
		return nil, &InvalidValueError{
			Field:  fs.Name,
			Value:  value,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(fs.Enum, ", ")),
		}
	}

	digits := value
	switch fs.Kind {
	case schema.KindNumeric:
		n, err := decimal.NewFromString(value)
		if err != nil || !n.IsInteger() {
			return nil, &InvalidValueError{Field: fs.Name, Value: value, Reason: "must be an integer"}
		}
		if n.IsNegative() {
			return nil, &InvalidValueError{Field: fs.Name, Value: value, Reason: "must not be negative"}
		}
		digits = n.String()
	case schema.KindDecimal:
		n, err := decimal.NewFromString(value)
		if err != nil {
			return nil, &InvalidValueError{Field: fs.Name, Value: value, Reason: "must be a decimal number"}
		}
		if n.IsNegative() {
			return nil, &InvalidValueError{Field: fs.Name, Value: value, Reason: "must not be negative"}
		}
		scaled := n.Shift(int32(fs.Scale))
		if !scaled.IsInteger() {
			return nil, &InvalidValueError{
				Field:  fs.Name,
				Value:  value,
				Reason: fmt.Sprintf("more than %d decimal places", fs.Scale),
			}
		}
		digits = scaled.String()
	}

	return pad(fs, digits)
}

// pad places the rendered value inside a Length-sized buffer filled with the
// pad byte, on the side the justification dictates.
func pad(fs *schema.FieldSpec, s string) ([]byte, error) {
	if len(s) > fs.Length {
		return nil, &ValueTooLongError{Field: fs.Name, Value: s, Length: fs.Length}
	}
	buf := bytes.Repeat([]byte{fs.PadByte()}, fs.Length)
	if fs.Justify == schema.JustifyRight {
		copy(buf[fs.Length-len(s):], s)
	} else {
		copy(buf, s)
	}
	return buf, nil
}

func trimPad(fs *schema.FieldSpec, raw []byte) string {
	cut := string(fs.PadByte())
	if fs.Justify == schema.JustifyRight {
		return strings.TrimLeft(string(raw), cut)
	}
	return strings.TrimRight(string(raw), cut)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
