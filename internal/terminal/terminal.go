package terminal

import (
	"errors"
	"os"
	"time"
)

// Platform tags the driver family that created a session.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
	PlatformWSL     Platform = "wsl"
)

// ErrUnsupported is returned by New when no terminal mechanism can be
// found for the running environment. It is fatal at startup and never
// raised mid-session.
var ErrUnsupported = errors.New("terminal: no supported terminal mechanism found")

// Session is the unit of identity and lifecycle for one terminal window.
//
// Channel paths are fixed at creation and removed exactly once, by the
// driver that created them. PID meaning varies by platform: the agent
// shell's pid on linux, absent on macos, the launcher's pid on windows/wsl
// where liveness is tracked through the marker file instead.
type Session struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Platform   Platform  `json:"platform"`
	PID        int       `json:"pid,omitempty"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
	CreatedAt  time.Time `json:"created_at"`

	// Driver-owned artifacts, cleaned up by the owning driver.
	MarkerPath string `json:"-"`
	ScriptPath string `json:"-"`
	PIDPath    string `json:"-"`
}

// Driver is the per-platform capability contract. One concrete driver is
// selected once at startup by New; callers never re-probe the platform.
//
// Per-call native failures (missing pipe, broken pipe, bridge failure)
// are absorbed into false/empty results rather than propagated.
type Driver interface {
	// Platform reports the driver family.
	Platform() Platform

	// Create launches a visible terminal window and allocates its
	// channel artifacts. name may be empty; workingDir may be empty.
	Create(name, workingDir string) (*Session, error)

	// SendInput delivers one line of text to the window's shell.
	SendInput(sess *Session, text string) bool

	// Output returns the trailing n lines of the session transcript.
	Output(sess *Session, lines int) string

	// Alive probes whether the backing process or window still exists.
	// The result is never cached.
	Alive(sess *Session) bool

	// Close tears the window down best-effort and unconditionally
	// removes the session's channel artifacts.
	Close(sess *Session)

	// Cleanup runs once at shutdown after all sessions are closed.
	Cleanup()
}

// Options configures driver construction.
type Options struct {
	// ScratchDir holds per-session channel artifacts. Empty selects
	// <os temp>/termbridge.
	ScratchDir string

	// CloseGrace is the wait after signaling a polling session to exit,
	// before its artifacts are removed. Only the windows/wsl family
	// uses it.
	CloseGrace time.Duration

	// SpawnWait is the wait for a freshly launched agent script to
	// report its pid.
	SpawnWait time.Duration
}

func (o Options) withDefaults() Options {
	if o.ScratchDir == "" {
		o.ScratchDir = defaultScratchDir()
	}
	if o.CloseGrace <= 0 {
		o.CloseGrace = 2 * time.Second
	}
	if o.SpawnWait <= 0 {
		o.SpawnWait = 500 * time.Millisecond
	}
	return o
}

func defaultScratchDir() string {
	return os.TempDir() + string(os.PathSeparator) + "termbridge"
}

// removeArtifacts deletes every channel artifact attached to a session.
// Missing files are fine; removal happens at most once per path because
// the registry evicts a session before any second close could run.
func removeArtifacts(sess *Session) {
	for _, path := range []string{sess.InputPath, sess.OutputPath, sess.MarkerPath, sess.ScriptPath, sess.PIDPath} {
		if path != "" {
			os.Remove(path)
		}
	}
}
