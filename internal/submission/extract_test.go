package submission

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Ada_Lovelace.java", "class Engine {}")

	files, err := ReadSourceFile(path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Ada_Lovelace.java", files[0].Filename)
	assert.Equal(t, "class Engine {}", files[0].Content)
}

func TestReadSourceFile_Missing(t *testing.T) {
	_, err := ReadSourceFile(filepath.Join(t.TempDir(), "nope.java"))
	require.Error(t, err)
	var readErr *ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestReadSourceFile_InvalidEncoding(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Bad_Bytes.java", string([]byte{0xff, 0xfe, 0x00, 0x80}))

	_, err := ReadSourceFile(path)
	require.Error(t, err)
	var readErr *ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestExtractArchive(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "Grace_Hopper.zip", map[string]string{
		"src/Main.java":   "class Main {}",
		"src/Util.java":   "class Util {}",
		"build/out.class": "binary junk",
		"README.md":       "docs",
	})

	files, err := ExtractArchive(path)
	require.NoError(t, err)
	require.Len(t, files, 2)

	var names []string
	for _, f := range files {
		names = append(names, f.Filename)
	}
	assert.ElementsMatch(t, []string{"src/Main.java", "src/Util.java"}, names)
}

func TestExtractArchive_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "corrupt.zip", "not a zip")

	_, err := ExtractArchive(path)
	require.Error(t, err)
	var archErr *ArchiveError
	assert.True(t, errors.As(err, &archErr))
}

func TestExtractArchive_NoJavaEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "empty.zip", map[string]string{
		"notes.txt": "nothing gradeable",
	})

	files, err := ExtractArchive(path)
	require.NoError(t, err)
	assert.Empty(t, files)
}
