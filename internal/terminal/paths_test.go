package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowsToWSLPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:\Users\dev\AppData\Local\Temp`, "/mnt/c/Users/dev/AppData/Local/Temp"},
		{`D:\work`, "/mnt/d/work"},
		{`C:\`, "/mnt/c/"},
		{"already/unix/path", "already/unix/path"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, windowsToWSLPath(tt.in), "input %q", tt.in)
	}
}

func TestWSLToWindowsPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/mnt/c/Users/dev", `C:\Users\dev`},
		{"/mnt/d/work/project", `D:\work\project`},
		{"/mnt/c", `C:\`},
		{"/home/dev", "/home/dev"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, wslToWindowsPath(tt.in), "input %q", tt.in)
	}
}

func TestPathConversionRoundTrip(t *testing.T) {
	win := `C:\Temp\termbridge\term_x_input.txt`
	assert.Equal(t, win, wslToWindowsPath(windowsToWSLPath(win)))
}
