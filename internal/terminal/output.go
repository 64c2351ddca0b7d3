package terminal

import (
	"os"
	"strings"
)

// readTail returns the trailing n lines of the file at path, newline
// terminators preserved, original order. The whole file is re-read on
// every call; there is no persisted cursor. Missing or unreadable files
// yield the empty string.
func readTail(path string, n int) string {
	if path == "" || n <= 0 {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if len(data) == 0 {
		return ""
	}

	lines := strings.SplitAfter(string(data), "\n")
	// A trailing newline leaves an empty final element.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "")
}

// touch creates an empty file, truncating any existing content.
func touch(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}
