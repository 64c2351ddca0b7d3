package terminal

import "strings"

// Manual WSL <-> Windows path conversions, used when wslpath is not
// available or fails. They only understand drive-letter mappings
// (C:\x <-> /mnt/c/x); anything else passes through unchanged.

func windowsToWSLPath(winPath string) string {
	path := strings.ReplaceAll(winPath, `\`, "/")
	if len(path) >= 2 && path[1] == ':' {
		drive := strings.ToLower(path[:1])
		return "/mnt/" + drive + path[2:]
	}
	return path
}

func wslToWindowsPath(wslPath string) string {
	if !strings.HasPrefix(wslPath, "/mnt/") {
		return wslPath
	}
	rest := wslPath[len("/mnt/"):]
	parts := strings.SplitN(rest, "/", 2)
	drive := strings.ToUpper(parts[0])
	tail := ""
	if len(parts) > 1 {
		tail = parts[1]
	}
	return drive + `:\` + strings.ReplaceAll(tail, "/", `\`)
}
