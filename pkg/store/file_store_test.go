package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pad(s string, n int) string { return s + strings.Repeat(" ", n-len(s)) }

func fixtureContent() string {
	lines := []string{
		"01" + pad("John", 28) + pad("Smith", 30) + pad("Edward", 30) + pad("742 Evergreen Terrace", 28),
		"02" + "000001" + "000000012550" + "USD" + strings.Repeat(" ", 95),
		"02" + "000003" + "000000020000" + "EUR" + strings.Repeat(" ", 95),
		"03" + "000002" + "000000032550" + strings.Repeat(" ", 98),
	}
	return strings.Join(lines, "\n") + "\n"
}

func fixtureFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statements.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixtureContent()), 0644))
	return path
}

func TestFileStore_Get(t *testing.T) {
	path := fixtureFile(t)
	s := NewFileStore(FileStoreConfig{Path: path})

	value, err := s.Get("HEADER", "address", "")
	require.NoError(t, err)
	assert.Equal(t, "742 Evergreen Terrace", value)

	value, err = s.Get("TRANSACTION", "amount", "000003")
	require.NoError(t, err)
	assert.Equal(t, "200.00", value)

	// Get never writes.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixtureContent(), string(data))
}

func TestFileStore_Set(t *testing.T) {
	path := fixtureFile(t)
	s := NewFileStore(FileStoreConfig{Path: path})

	require.NoError(t, s.Set("TRANSACTION", "amount", "10.00", "000003"))

	value, err := s.Get("TRANSACTION", "amount", "000003")
	require.NoError(t, err)
	assert.Equal(t, "10.00", value)

	// The amount feeds the control_sum aggregate, so the footer follows.
	sum, err := s.Get("FOOTER", "control_sum", "")
	require.NoError(t, err)
	assert.Equal(t, "135.50", sum)

	// Bytes of the other transaction are untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "02"+"000001"+"000000012550"+"USD"+strings.Repeat(" ", 95), lines[1])
}

func TestFileStore_SetNonAggregateField(t *testing.T) {
	path := fixtureFile(t)
	s := NewFileStore(FileStoreConfig{Path: path})

	require.NoError(t, s.Set("HEADER", "address", "12 New Street", ""))

	value, err := s.Get("HEADER", "address", "")
	require.NoError(t, err)
	assert.Equal(t, "12 New Street", value)

	// Aggregates stay as they were.
	sum, err := s.Get("FOOTER", "control_sum", "")
	require.NoError(t, err)
	assert.Equal(t, "325.50", sum)
}

func TestFileStore_Add(t *testing.T) {
	path := fixtureFile(t)
	s := NewFileStore(FileStoreConfig{Path: path})

	require.NoError(t, s.Add("500.00", "USD"))

	count, err := s.Get("FOOTER", "total_count", "")
	require.NoError(t, err)
	assert.Equal(t, "3", count)

	amount, err := s.Get("TRANSACTION", "amount", "000004")
	require.NoError(t, err)
	assert.Equal(t, "500.00", amount)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "02"), "new transaction should sit before the footer")
	assert.True(t, strings.HasPrefix(lines[4], "03"), "footer should stay last")
}

func TestFileStore_FailedMutationLeavesFileUntouched(t *testing.T) {
	path := fixtureFile(t)
	s := NewFileStore(FileStoreConfig{Path: path})

	testCases := []struct {
		name string
		run  func() error
	}{
		{"value too long", func() error { return s.Set("TRANSACTION", "amount", "99999999999.00", "000003") }},
		{"enum violation", func() error { return s.Add("1.00", "JPY") }},
		{"unknown field", func() error { return s.Set("TRANSACTION", "memo", "x", "000003") }},
		{"ambiguous selection", func() error { return s.Set("TRANSACTION", "amount", "1.00", "") }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.run())
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, fixtureContent(), string(data), "original file must be byte-identical after a failed mutation")
		})
	}
}

func TestFileStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.txt")
	require.NoError(t, os.WriteFile(path, []byte("01short\n"), 0644))

	s := NewFileStore(FileStoreConfig{Path: path})
	_, err := s.Get("HEADER", "name", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestFileStore_MissingFile(t *testing.T) {
	s := NewFileStore(FileStoreConfig{Path: filepath.Join(t.TempDir(), "nope.txt")})
	_, err := s.Get("HEADER", "name", "")
	require.Error(t, err)

	err = s.Set("HEADER", "name", "x", "")
	require.Error(t, err)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	path := fixtureFile(t)
	s := NewFileStore(FileStoreConfig{Path: path})

	require.NoError(t, s.Set("HEADER", "name", "Jane", ""))
	require.Error(t, s.Add("1.00", "JPY"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestAtomicWrite_PreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0600))

	require.NoError(t, atomicWrite(path, []byte("after"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
