// Package csvimport reads spreadsheet exports of directory data (customers,
// suppliers) into validated rows.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser reads a CSV file whose first row names the columns
type Parser struct {
	reader  *csv.Reader
	headers []string
	index   map[string]int
	line    int
}

// Row is one data row keyed by normalised header name
type Row struct {
	Line int
	data map[string]string
}

// Get returns the trimmed value of a column, empty when absent
func (r *Row) Get(column string) string {
	return r.data[column]
}

func (r *Row) empty() bool {
	for _, v := range r.data {
		if v != "" {
			return false
		}
	}
	return true
}

// NewParser strips a UTF-8 byte order mark, rejects input whose leading
// bytes are not UTF-8 and reads the header row. Next checks every later
// field.
func NewParser(r io.Reader) (*Parser, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); string(head) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	sample, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(strings.TrimSpace(string(sample))) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(trimPartialRune(sample)) {
		return nil, ErrInvalidEncoding
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	record, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, ErrMalformed.WithMessage("Could not read CSV header: " + err.Error())
	}
	for _, h := range record {
		if !utf8.ValidString(h) {
			return nil, ErrInvalidEncoding
		}
	}

	p := &Parser{reader: cr, index: make(map[string]int, len(record)), line: 1}
	for i, h := range record {
		name := NormalizeHeader(h)
		p.headers = append(p.headers, name)
		if _, dup := p.index[name]; !dup && name != "" {
			p.index[name] = i
		}
	}
	return p, nil
}

// NormalizeHeader lower-cases a header and joins its words with underscores
// so "Contact Number" and "contact_number" address the same column
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(h, "_", " "))), "_")
}

// Headers returns the normalised header names in file order
func (p *Parser) Headers() []string {
	return p.headers
}

// Missing returns the required columns the header row lacks
func (p *Parser) Missing(required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := p.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// Next returns the next non-blank row, or io.EOF. A field that is not
// valid UTF-8 fails with ErrInvalidEncoding.
func (p *Parser) Next() (*Row, error) {
	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		p.line++
		if err != nil {
			return nil, ErrMalformed.WithMessage(fmt.Sprintf("Row %d could not be parsed: %v", p.line, err))
		}
		for _, field := range record {
			if !utf8.ValidString(field) {
				return nil, ErrInvalidEncoding
			}
		}

		row := &Row{Line: p.line, data: make(map[string]string, len(p.index))}
		for name, i := range p.index {
			if i < len(record) {
				row.data[name] = strings.TrimSpace(record[i])
			}
		}
		if !row.empty() {
			return row, nil
		}
	}
}

// trimPartialRune drops a rune cut in half at the end of a peeked sample
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}
