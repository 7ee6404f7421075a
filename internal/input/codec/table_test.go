package codec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsBlankAndComments(t *testing.T) {
	src := "/ kinds\nClosed\n\n  Resized  \n/ trailing\nKeyPressed\n"
	table, err := Parse("kinds", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, Table{"Closed", "Resized", "KeyPressed"}, table)
}

func TestParseDuplicate(t *testing.T) {
	_, err := Parse("keys", strings.NewReader("A\nB\nA\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Line)
	assert.Equal(t, "keys", fe.Path)
}

func TestTableLookup(t *testing.T) {
	table := Table{"A", "B", "C"}

	for i, name := range table {
		idx, ok := table.NameToIndex(name)
		require.True(t, ok)
		assert.Equal(t, i, idx)

		back, ok := table.IndexToName(idx)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}

	_, ok := table.NameToIndex("D")
	assert.False(t, ok)
	_, ok = table.IndexToName(-1)
	assert.False(t, ok)
	_, ok = table.IndexToName(3)
	assert.False(t, ok)
	assert.True(t, table.Contains("B"))
	assert.Equal(t, 3, table.Len())
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys")
	require.NoError(t, os.WriteFile(path, []byte("A\nB\n"), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, Table{"A", "B"}, table)

	_, err = LoadTable(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.False(t, errors.Is(err, ErrParse))
}

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	kinds := filepath.Join(dir, "kinds")
	keys := filepath.Join(dir, "keys")
	require.NoError(t, os.WriteFile(kinds, []byte("Closed\nKeyPressed\n"), 0o644))
	require.NoError(t, os.WriteFile(keys, []byte("A\n"), 0o644))

	set, err := LoadSet(kinds, keys)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Kinds.Len())
	assert.Equal(t, 1, set.Keys.Len())

	_, err = LoadSet(kinds, filepath.Join(dir, "nope"))
	assert.True(t, errors.Is(err, ErrIO))
}

func TestFileErrorMessage(t *testing.T) {
	err := ParseError("bindings/player", 4, "unknown key %q", "Foo")
	assert.Equal(t, `bindings/player:4: config parse error: unknown key "Foo"`, err.Error())

	err = &FileError{Path: "keys", Err: ErrIO}
	assert.Equal(t, "keys: config file unreadable", err.Error())
}
