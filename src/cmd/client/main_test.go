package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pnathan/wordtrie/src/lib/wordstore"
)

func TestImportWords(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(file, []byte("stock\nbear\n"), 0o644))
	dbFile := filepath.Join(dir, "words.db")

	require.NoError(t, importWords(file, dbFile, "market"))

	db, err := wordstore.OpenBolt(dbFile)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Load("market")
	require.NoError(t, err)
	assert.Equal(t, []string{"stock", "bear"}, got.Words())
}

func TestDumpRejectsEmptyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(file, []byte("\n\n"), 0o644))
	assert.Error(t, dump(file))
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(MustMarshal(map[string]int{"a": 1})))
}
