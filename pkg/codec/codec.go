package codec

import (
	"bytes"
	"fmt"

	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// DefaultTerminator separates lines unless the codec is configured otherwise.
const DefaultTerminator = "\n"

// Codec decodes and encodes fixed-width files for one schema with a fixed
// line terminator.
type Codec struct {
	schema     *schema.Schema
	terminator []byte
}

// New creates a codec using the default newline terminator.
func New(s *schema.Schema) *Codec {
	return NewWithTerminator(s, DefaultTerminator)
}

// NewWithTerminator creates a codec with an explicit line terminator,
// e.g. "\r\n" for CRLF files.
func NewWithTerminator(s *schema.Schema, terminator string) *Codec {
	if terminator == "" {
		terminator = DefaultTerminator
	}
	return &Codec{schema: s, terminator: []byte(terminator)}
}

// Decode parses raw file content into a File, preserving record order. It
// returns a *MalformedRecordError for the first line that matches no record
// type.
func (c *Codec) Decode(data []byte) (*File, error) {
	f := &File{Schema: c.schema, terminated: true}
	if len(data) == 0 {
		return f, nil
	}

	lines := bytes.Split(data, c.terminator)
	if last := lines[len(lines)-1]; len(last) == 0 {
		lines = lines[:len(lines)-1]
	} else {
		f.terminated = false
	}

	for i, line := range lines {
		rt, reason := c.match(line)
		if rt == nil {
			return nil, &MalformedRecordError{Line: i + 1, Reason: reason}
		}
		raw := make([]byte, len(line))
		copy(raw, line)
		f.Records = append(f.Records, &Record{Type: rt, Raw: raw})
	}
	return f, nil
}

// Encode serializes the file back to raw bytes: each record's raw line joined
// by the terminator, reproducing the original trailing-terminator convention.
func (c *Codec) Encode(f *File) []byte {
	var buf bytes.Buffer
	for i, r := range f.Records {
		buf.Write(r.Raw)
		if i < len(f.Records)-1 || f.terminated {
			buf.Write(c.terminator)
		}
	}
	return buf.Bytes()
}

// match selects the record type whose tag and width both fit the line. The
// returned reason distinguishes a width mismatch on a known tag from a tag no
// record type claims.
func (c *Codec) match(line []byte) (*schema.RecordTypeSpec, string) {
	var widthMismatch *schema.RecordTypeSpec
	for _, rt := range c.schema.Types() {
		tag := rt.TagSpec()
		if len(line) < tag.End() {
			continue
		}
		if !bytes.Equal(line[tag.Offset:tag.End()], []byte(rt.Tag)) {
			continue
		}
		if len(line) != rt.Width {
			widthMismatch = rt
			continue
		}
		return rt, ""
	}
	if widthMismatch != nil {
		return nil, fmt.Sprintf("line is %d bytes, %s records are %d bytes wide",
			len(line), widthMismatch.Name, widthMismatch.Width)
	}
	return nil, fmt.Sprintf("no record type matches a %d byte line", len(line))
}
