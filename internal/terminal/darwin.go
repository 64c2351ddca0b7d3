//go:build darwin

package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/shared/id"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// darwinDriver drives Terminal.app through osascript. The window is
// addressed by its custom title, which is set to the session name; that
// title is also the liveness anchor, with FIFO existence as the fallback
// when the bridge call fails.
type darwinDriver struct {
	scratch string
	log     *logging.Logger
}

// pipeWriteTimeout bounds a FIFO write when the window's reader is gone.
const pipeWriteTimeout = 2 * time.Second

func newDarwinDriver(opts Options, log *logging.Logger) (*darwinDriver, error) {
	opts = opts.withDefaults()
	if err := os.MkdirAll(opts.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("terminal: create scratch dir: %w", err)
	}
	return &darwinDriver{scratch: opts.ScratchDir, log: log}, nil
}

func (d *darwinDriver) Platform() Platform { return PlatformMacOS }

func (d *darwinDriver) Create(name, workingDir string) (*Session, error) {
	sid := id.NewSessionID().String()
	if name == "" {
		name = "Terminal-" + sid
	}

	inputPath := filepath.Join(d.scratch, sid+"_input.fifo")
	outputPath := filepath.Join(d.scratch, sid+"_output.log")
	scriptPath := filepath.Join(d.scratch, sid+"_agent.sh")

	if err := unix.Mkfifo(inputPath, 0o600); err != nil {
		return nil, fmt.Errorf("terminal: create input fifo: %w", err)
	}
	if err := touch(outputPath); err != nil {
		os.Remove(inputPath)
		return nil, fmt.Errorf("terminal: create output log: %w", err)
	}

	script := "#!/bin/bash\n" + shellScript{
		SessionID:  sid,
		WorkingDir: workingDir,
		InputPath:  inputPath,
		OutputPath: outputPath,
		ScriptPath: scriptPath,
	}.Render()
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		os.Remove(inputPath)
		os.Remove(outputPath)
		return nil, fmt.Errorf("terminal: write agent script: %w", err)
	}

	osa := fmt.Sprintf(`
tell application "Terminal"
    activate
    do script "%s"
    set custom title of front window to "%s"
end tell
`, scriptPath, name)

	if err := exec.Command("osascript", "-e", osa).Run(); err != nil {
		os.Remove(inputPath)
		os.Remove(outputPath)
		os.Remove(scriptPath)
		return nil, fmt.Errorf("terminal: open Terminal.app window: %w", err)
	}

	sess := &Session{
		ID:         sid,
		Name:       name,
		Platform:   PlatformMacOS,
		InputPath:  inputPath,
		OutputPath: outputPath,
		CreatedAt:  time.Now(),
		ScriptPath: scriptPath,
	}

	d.log.Info("terminal window created",
		zap.String("session_id", sid),
		zap.String("name", name))
	return sess, nil
}

// SendInput writes to the FIFO from a separate goroutine: opening a FIFO
// for writing blocks until a reader shows up, and the caller must not
// stall on a window whose reader died.
func (d *darwinDriver) SendInput(sess *Session, text string) bool {
	if sess.InputPath == "" {
		return false
	}
	if _, err := os.Stat(sess.InputPath); err != nil {
		return false
	}

	done := make(chan bool, 1)
	go func() {
		f, err := os.OpenFile(sess.InputPath, os.O_WRONLY, 0)
		if err != nil {
			done <- false
			return
		}
		defer f.Close()
		_, err = f.WriteString(text + "\n")
		done <- err == nil
	}()

	select {
	case ok := <-done:
		return ok
	case <-time.After(pipeWriteTimeout):
		return false
	}
}

func (d *darwinDriver) Output(sess *Session, lines int) string {
	return readTail(sess.OutputPath, lines)
}

func (d *darwinDriver) Alive(sess *Session) bool {
	if sess.InputPath == "" {
		return false
	}
	if _, err := os.Stat(sess.InputPath); err != nil {
		return false
	}

	osa := fmt.Sprintf(`
tell application "Terminal"
    set windowCount to count of (every window whose custom title is "%s")
    return windowCount
end tell
`, sess.Name)

	out, err := exec.Command("osascript", "-e", osa).Output()
	if err != nil {
		// Bridge failure: fall back to channel existence.
		_, statErr := os.Stat(sess.InputPath)
		return statErr == nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		_, statErr := os.Stat(sess.InputPath)
		return statErr == nil
	}
	return count > 0
}

func (d *darwinDriver) Close(sess *Session) {
	osa := fmt.Sprintf(`
tell application "Terminal"
    close (every window whose custom title is "%s")
end tell
`, sess.Name)
	exec.Command("osascript", "-e", osa).Run()

	removeArtifacts(sess)
	d.log.Info("terminal window closed", zap.String("session_id", sess.ID))
}

// Cleanup leaves the scratch directory intact; it is a fixed location
// shared across runs.
func (d *darwinDriver) Cleanup() {}
