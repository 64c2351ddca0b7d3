//go:build windows

package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/shared/id"
	"go.uber.org/zap"
)

// windowsDriver launches Windows Terminal when available, the classic
// console host otherwise. The window runs a batch script that polls a
// plain input file; the launcher pid says nothing about the inner loop,
// so liveness is the marker file's existence.
type windowsDriver struct {
	scratch    string
	useWT      bool
	closeGrace time.Duration
	log        *logging.Logger
}

func newWindowsDriver(opts Options, log *logging.Logger) (*windowsDriver, error) {
	opts = opts.withDefaults()
	if err := os.MkdirAll(opts.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("terminal: create scratch dir: %w", err)
	}

	_, err := exec.LookPath("wt.exe")
	return &windowsDriver{
		scratch:    opts.ScratchDir,
		useWT:      err == nil,
		closeGrace: opts.CloseGrace,
		log:        log,
	}, nil
}

func (d *windowsDriver) Platform() Platform { return PlatformWindows }

func (d *windowsDriver) Create(name, workingDir string) (*Session, error) {
	sid := id.NewSessionID().String()
	if name == "" {
		name = "Terminal-" + sid
	}

	inputPath := filepath.Join(d.scratch, sid+"_input.txt")
	outputPath := filepath.Join(d.scratch, sid+"_output.log")
	markerPath := filepath.Join(d.scratch, sid+"_running.marker")
	scriptPath := filepath.Join(d.scratch, sid+"_agent.bat")

	for _, p := range []string{inputPath, outputPath, markerPath} {
		if err := touch(p); err != nil {
			return nil, fmt.Errorf("terminal: create channel file: %w", err)
		}
	}

	script := batchScript{
		WorkingDir: workingDir,
		InputPath:  inputPath,
		OutputPath: outputPath,
		MarkerPath: markerPath,
	}.Render()
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return nil, fmt.Errorf("terminal: write agent script: %w", err)
	}

	var cmd *exec.Cmd
	if d.useWT {
		cmd = exec.Command("wt.exe", "-w", "0", "nt", "--title", name, "cmd.exe", "/k", scriptPath)
	} else {
		cmd = exec.Command("cmd.exe", "/c", "start", name, "cmd.exe", "/k", scriptPath)
	}
	if err := cmd.Start(); err != nil {
		removeArtifacts(&Session{InputPath: inputPath, OutputPath: outputPath, MarkerPath: markerPath, ScriptPath: scriptPath})
		return nil, fmt.Errorf("terminal: launch console window: %w", err)
	}
	go cmd.Wait()

	sess := &Session{
		ID:         sid,
		Name:       name,
		Platform:   PlatformWindows,
		PID:        cmd.Process.Pid,
		InputPath:  inputPath,
		OutputPath: outputPath,
		CreatedAt:  time.Now(),
		MarkerPath: markerPath,
		ScriptPath: scriptPath,
	}

	d.log.Info("terminal window created",
		zap.String("session_id", sid),
		zap.String("name", name),
		zap.Bool("windows_terminal", d.useWT))
	return sess, nil
}

// SendInput overwrites the polled input file. If two inputs land inside
// one poll interval the earlier one is lost; last write wins.
func (d *windowsDriver) SendInput(sess *Session, text string) bool {
	if sess.InputPath == "" {
		return false
	}
	if _, err := os.Stat(sess.InputPath); err != nil {
		return false
	}
	return os.WriteFile(sess.InputPath, []byte(text), 0o644) == nil
}

func (d *windowsDriver) Output(sess *Session, lines int) string {
	return readTail(sess.OutputPath, lines)
}

func (d *windowsDriver) Alive(sess *Session) bool {
	if sess.MarkerPath == "" {
		return false
	}
	_, err := os.Stat(sess.MarkerPath)
	return err == nil
}

// Close removes the marker so the polling loop exits on its next tick,
// waits out the grace period, then removes the channel artifacts.
func (d *windowsDriver) Close(sess *Session) {
	if sess.MarkerPath != "" {
		os.Remove(sess.MarkerPath)
	}
	time.Sleep(d.closeGrace)
	removeArtifacts(sess)
	d.log.Info("terminal window closed", zap.String("session_id", sess.ID))
}

// Cleanup leaves the scratch directory intact; it is a fixed location
// shared across runs.
func (d *windowsDriver) Cleanup() {}
