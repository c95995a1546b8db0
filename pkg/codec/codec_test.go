package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ledgerkit/fixedfile/pkg/schema"
)

func padRight(s string, n int) string {
	return s + strings.Repeat(" ", n-len(s))
}

func headerLine() string {
	return "01" + padRight("John", 28) + padRight("Smith", 30) + padRight("Edward", 30) + padRight("742 Evergreen Terrace", 28)
}

func transactionLine(counter, cents, currency string) string {
	return "02" + counter + cents + currency + strings.Repeat(" ", 95)
}

func footerLine(count, sum string) string {
	return "03" + count + sum + strings.Repeat(" ", 98)
}

func fixture() []byte {
	lines := []string{
		headerLine(),
		transactionLine("000001", "000000012550", "USD"),
		transactionLine("000003", "000000020000", "EUR"),
		footerLine("000002", "000000032550"),
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestDecode(t *testing.T) {
	c := New(schema.Banking())

	f, err := c.Decode(fixture())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(f.Records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(f.Records))
	}
	wantTypes := []string{"HEADER", "TRANSACTION", "TRANSACTION", "FOOTER"}
	for i, want := range wantTypes {
		if f.Records[i].Type.Name != want {
			t.Errorf("record %d: got type %s, want %s", i, f.Records[i].Type.Name, want)
		}
	}
	if got := len(f.RecordsOf("TRANSACTION")); got != 2 {
		t.Errorf("RecordsOf(TRANSACTION): got %d, want 2", got)
	}
}

func TestEncodeDecode_ByteFidelity(t *testing.T) {
	c := New(schema.Banking())

	testCases := []struct {
		name string
		data []byte
	}{
		{"trailing newline", fixture()},
		{"no trailing newline", bytes.TrimSuffix(fixture(), []byte("\n"))},
		{"empty file", []byte{}},
		{"single record", []byte(headerLine() + "\n")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := c.Decode(tc.data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			encoded := c.Encode(f)
			if !bytes.Equal(encoded, tc.data) {
				t.Errorf("round trip not byte-identical:\ngot  %q\nwant %q", encoded, tc.data)
			}
		})
	}
}

func TestDecode_Idempotent(t *testing.T) {
	c := New(schema.Banking())

	first, err := c.Decode(fixture())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	second, err := c.Decode(c.Encode(first))
	if err != nil {
		t.Fatalf("re-Decode failed: %v", err)
	}
	if len(first.Records) != len(second.Records) {
		t.Fatalf("record count changed across round trip: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		if !bytes.Equal(first.Records[i].Raw, second.Records[i].Raw) {
			t.Errorf("record %d changed across round trip", i)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	c := New(schema.Banking())

	testCases := []struct {
		name       string
		data       []byte
		wantLine   int
		wantReason string
	}{
		{
			name:       "short transaction line",
			data:       []byte(headerLine() + "\n" + "02000001\n"),
			wantLine:   2,
			wantReason: "TRANSACTION records are 118 bytes wide",
		},
		{
			name:       "unknown tag",
			data:       []byte("99" + strings.Repeat(" ", 116) + "\n"),
			wantLine:   1,
			wantReason: "no record type matches",
		},
		{
			name:       "blank line in the middle",
			data:       []byte(headerLine() + "\n\n" + footerLine("000000", "000000000000") + "\n"),
			wantLine:   2,
			wantReason: "no record type matches",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Decode(tc.data)
			var malformed *MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedRecordError, got %v", err)
			}
			if malformed.Line != tc.wantLine {
				t.Errorf("line: got %d, want %d", malformed.Line, tc.wantLine)
			}
			if !strings.Contains(malformed.Reason, tc.wantReason) {
				t.Errorf("reason %q does not mention %q", malformed.Reason, tc.wantReason)
			}
		})
	}
}

func TestCRLFTerminator(t *testing.T) {
	c := NewWithTerminator(schema.Banking(), "\r\n")

	data := []byte(headerLine() + "\r\n" + footerLine("000000", "000000000000") + "\r\n")
	f, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(f.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(f.Records))
	}
	if !bytes.Equal(c.Encode(f), data) {
		t.Error("CRLF round trip not byte-identical")
	}
}

func TestFile_InsertBefore(t *testing.T) {
	c := New(schema.Banking())
	f, err := c.Decode(fixture())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	rec := f.Records[1]
	extra := &Record{Type: rec.Type, Raw: append([]byte(nil), rec.Raw...)}
	f.InsertBefore(3, extra)

	if len(f.Records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(f.Records))
	}
	if f.Records[3] != extra {
		t.Error("inserted record is not at index 3")
	}
	if f.Records[4].Type.Name != "FOOTER" {
		t.Errorf("footer is no longer last, got %s", f.Records[4].Type.Name)
	}
}
