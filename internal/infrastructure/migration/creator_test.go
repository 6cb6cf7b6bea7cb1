package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add sales index", "add_sales_index"},
		{"Add-Sales-Index", "add_sales_index"},
		{"ADD__SALES__INDEX", "add_sales_index"},
		{"  spaces  ", "spaces"},
		{"special!@#chars", "special_chars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input))
		})
	}
}

func TestCreator_CreateNumbersSequentially(t *testing.T) {
	dir := t.TempDir()
	creator := NewCreator(dir)
	creator.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	first, err := creator.Create("create kilns", "Kiln tracking")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_kilns.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_kilns.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Kiln tracking")
	assert.Contains(t, string(up), "2025-01-02T03:04:05Z")

	second, err := creator.Create("Add kiln index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "-- Rollback: Add kiln index")
}

func TestCreator_CreateRejectsEmptyName(t *testing.T) {
	_, err := NewCreator(t.TempDir()).Create("!!!", "")
	assert.Error(t, err)
}

func TestCreator_List(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_b.up.sql", "000002_b.down.sql",
		"000010_c.up.sql",
		"000001_a.up.sql", "000001_a.down.sql",
		"README.md", "embed.go",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}

	files, err := NewCreator(dir).List()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []uint{1, 2, 10}, []uint{files[0].Version, files[1].Version, files[2].Version})
	assert.Equal(t, "a", files[0].Name)
	assert.Empty(t, files[2].DownPath)
}

func TestCreator_ListMissingDir(t *testing.T) {
	files, err := NewCreator(filepath.Join(t.TempDir(), "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCreator_ListRepositoryMigrations(t *testing.T) {
	files, err := NewCreator(filepath.Join("..", "..", "..", "migrations")).List()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for i, f := range files {
		assert.Equal(t, uint(i+1), f.Version, "migrations must be numbered without gaps")
		assert.NotEmpty(t, f.UpPath, f.Name)
		assert.NotEmpty(t, f.DownPath, f.Name)
	}
}
