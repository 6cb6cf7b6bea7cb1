package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_HeadersAndRows(t *testing.T) {
	input := "\xEF\xBB\xBFName, Contact Number ,Address\n" +
		"Ravi Traders,98765,Old Rd\n" +
		",,\n" +
		"  Shyam Bricks ,,\"Main St, Rohtak\"\n"

	p, err := NewParser(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "contact_number", "address"}, p.Headers())
	assert.Empty(t, p.Missing([]string{"name"}))
	assert.Equal(t, []string{"phone"}, p.Missing([]string{"name", "phone"}))

	row, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "Ravi Traders", row.Get("name"))
	assert.Equal(t, "98765", row.Get("contact_number"))

	// the blank line is skipped
	row, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, row.Line)
	assert.Equal(t, "Shyam Bricks", row.Get("name"))
	assert.Equal(t, "Main St, Rohtak", row.Get("address"))
	assert.Equal(t, "", row.Get("unknown"))

	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParser_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyFile},
		{"whitespace only", " \n\n", ErrEmptyFile},
		{"latin-1", "name\nCaf\xe9\n", ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(strings.NewReader(tt.input))
			assert.Equal(t, tt.want, err)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestParser_RejectsBadBytesPastLeadingSample(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,phone\n")
	for b.Len() < 5000 {
		b.WriteString("Ravi Traders,98765\n")
	}
	b.WriteString("Jos\xe9 Traders,12345\n")

	p, err := NewParser(strings.NewReader(b.String()))
	require.NoError(t, err)

	for {
		_, err = p.Next()
		if err != nil {
			break
		}
	}
	assert.Equal(t, ErrInvalidEncoding, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "contact_number", NormalizeHeader("  Contact   Number "))
	assert.Equal(t, "material_type", NormalizeHeader("MATERIAL_TYPE"))
	assert.Equal(t, "", NormalizeHeader("   "))
}

func TestTrimPartialRune(t *testing.T) {
	full := []byte("ab€")
	assert.Equal(t, full, trimPartialRune(full))
	assert.Equal(t, []byte("ab"), trimPartialRune(full[:len(full)-1]))
}
