package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTailReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\nfour\n")

	assert.Equal(t, "three\nfour\n", readTail(path, 2))
	assert.Equal(t, "four\n", readTail(path, 1))
}

func TestReadTailFewerLinesThanRequested(t *testing.T) {
	path := writeLog(t, "only\nlines\n")

	assert.Equal(t, "only\nlines\n", readTail(path, 100))
}

func TestReadTailNoTrailingNewline(t *testing.T) {
	path := writeLog(t, "first\nsecond\npartial")

	assert.Equal(t, "second\npartial", readTail(path, 2))
}

func TestReadTailEmptyFile(t *testing.T) {
	path := writeLog(t, "")

	assert.Empty(t, readTail(path, 10))
}

func TestReadTailMissingFile(t *testing.T) {
	assert.Empty(t, readTail(filepath.Join(t.TempDir(), "nope.log"), 10))
	assert.Empty(t, readTail("", 10))
}

func TestReadTailNonPositiveCount(t *testing.T) {
	path := writeLog(t, "line\n")

	assert.Empty(t, readTail(path, 0))
	assert.Empty(t, readTail(path, -5))
}

func TestTouchCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker")
	require.NoError(t, touch(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
