package csvimport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerRules() []*FieldRule {
	return []*FieldRule{
		Field("name").Required().MaxLength(20).Unique(),
		Field("phone").Pattern(`^[0-9 +-]{5,20}$`, "a phone number"),
	}
}

func TestImporter_Run(t *testing.T) {
	input := strings.Join([]string{
		"Name,Phone",
		"Ravi Traders,98765 43210",
		",12345",
		"ravi traders,11111",
		"A name that is far too long,",
		"Shyam,call me",
		"Existing Co,",
		"Gopal,",
	}, "\n")

	var applied []string
	res, err := NewImporter(customerRules()).Run(context.Background(), strings.NewReader(input),
		func(_ context.Context, row *Row) error {
			if row.Get("name") == "Existing Co" {
				return RowError{Column: "name", Code: CodeExists, Message: "already in directory"}
			}
			applied = append(applied, row.Get("name"))
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"Ravi Traders", "Gopal"}, applied)
	assert.Equal(t, 7, res.TotalRows)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 5, res.Skipped)
	assert.False(t, res.ErrorsTruncated)

	codes := map[int]string{}
	for _, e := range res.Errors {
		codes[e.Row] = e.Code
	}
	assert.Equal(t, map[int]string{
		3: CodeRequired,
		4: CodeDuplicate,
		5: CodeTooLong,
		6: CodeFormat,
		7: CodeExists,
	}, codes)
}

func TestImporter_MissingColumns(t *testing.T) {
	_, err := NewImporter(customerRules()).Run(context.Background(), strings.NewReader("phone\n123456\n"),
		func(context.Context, *Row) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name")
}

func TestImporter_Limits(t *testing.T) {
	var b strings.Builder
	b.WriteString("name\n")
	for i := range 5 {
		fmt.Fprintf(&b, "Customer %d\n", i)
	}
	noop := func(context.Context, *Row) error { return nil }

	_, err := NewImporter(customerRules(), WithMaxRows(3)).Run(context.Background(), strings.NewReader(b.String()), noop)
	assert.Equal(t, ErrTooManyRows, err)

	res, err := NewImporter(customerRules(), WithMaxErrors(2)).Run(context.Background(), strings.NewReader(b.String()),
		func(context.Context, *Row) error { return shared.ErrInvalidInput.WithMessage("nope") })
	require.NoError(t, err)
	assert.Len(t, res.Errors, 2)
	assert.True(t, res.ErrorsTruncated)
	assert.Equal(t, CodeRejected, res.Errors[0].Code)
	assert.Equal(t, "nope", res.Errors[0].Message)
}

func TestImporter_ApplyFailureStops(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewImporter(customerRules()).Run(context.Background(), strings.NewReader("name\nA\nB\n"),
		func(context.Context, *Row) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestImporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewImporter(customerRules()).Run(ctx, strings.NewReader("name\nA\n"),
		func(context.Context, *Row) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
