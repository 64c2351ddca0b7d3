//go:build linux

package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/shared/id"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// wslDriver opens windows on the Windows side from inside WSL. It is the
// Windows mechanism reached through the cmd.exe process bridge, with
// every path living in a directory both namespaces can see and translated
// to Windows form before it reaches the batch script.
type wslDriver struct {
	scratch    string
	disposable bool // scratch is a generated Windows temp dir, removed at shutdown
	useWT      bool
	closeGrace time.Duration
	log        *logging.Logger
}

func newWSLDriver(opts Options, log *logging.Logger) (*wslDriver, error) {
	opts = opts.withDefaults()

	scratch, disposable, err := wslScratchDir(opts.ScratchDir)
	if err != nil {
		return nil, err
	}

	useWT := false
	if out, err := exec.Command("cmd.exe", "/c", "where wt.exe").Output(); err == nil && len(out) > 0 {
		useWT = true
	}

	return &wslDriver{
		scratch:    scratch,
		disposable: disposable,
		useWT:      useWT,
		closeGrace: opts.CloseGrace,
		log:        log,
	}, nil
}

// wslScratchDir picks a directory visible from both WSL and Windows. A
// configured dir already on a Windows mount is used as-is; otherwise a
// disposable directory is created under the Windows %TEMP%.
func wslScratchDir(configured string) (string, bool, error) {
	if abs, err := filepath.Abs(configured); configured != "" && err == nil && strings.HasPrefix(abs, "/mnt/") {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", false, fmt.Errorf("terminal: create scratch dir: %w", err)
		}
		return abs, false, nil
	}

	suffix := "termbridge_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]

	if out, err := exec.Command("cmd.exe", "/c", "echo %TEMP%").Output(); err == nil {
		winTemp := strings.TrimSpace(string(out))
		if winTemp != "" && !strings.Contains(winTemp, "%") {
			dir := filepath.Join(windowsPathToWSL(winTemp), suffix)
			if err := os.MkdirAll(dir, 0o755); err == nil {
				return dir, true, nil
			}
		}
	}

	dir := filepath.Join("/mnt/c/temp", suffix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("terminal: create scratch dir: %w", err)
	}
	return dir, true, nil
}

// windowsPathToWSL translates through wslpath, falling back to the manual
// drive-letter mapping.
func windowsPathToWSL(winPath string) string {
	if out, err := exec.Command("wslpath", "-u", winPath).Output(); err == nil {
		if p := strings.TrimSpace(string(out)); p != "" {
			return p
		}
	}
	return windowsToWSLPath(winPath)
}

// wslPathToWindows translates through wslpath, falling back to the manual
// drive-letter mapping.
func wslPathToWindows(wslPath string) string {
	if out, err := exec.Command("wslpath", "-w", wslPath).Output(); err == nil {
		if p := strings.TrimSpace(string(out)); p != "" {
			return p
		}
	}
	return wslToWindowsPath(wslPath)
}

func (d *wslDriver) Platform() Platform { return PlatformWSL }

func (d *wslDriver) Create(name, workingDir string) (*Session, error) {
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

	winWorkingDir := ""
	if workingDir != "" {
		winWorkingDir = wslPathToWindows(workingDir)
	}

	// The batch script runs on the Windows side and needs Windows paths.
	script := batchScript{
		WorkingDir: winWorkingDir,
		InputPath:  wslPathToWindows(inputPath),
		OutputPath: wslPathToWindows(outputPath),
		MarkerPath: wslPathToWindows(markerPath),
	}.Render()
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return nil, fmt.Errorf("terminal: write agent script: %w", err)
	}
	winScriptPath := wslPathToWindows(scriptPath)

	var cmd *exec.Cmd
	if d.useWT {
		cmd = exec.Command("cmd.exe", "/c", "wt.exe", "-w", "0", "nt", "--title", name, "cmd.exe", "/k", winScriptPath)
	} else {
		cmd = exec.Command("cmd.exe", "/c", "start", name, "cmd.exe", "/k", winScriptPath)
	}
	if err := cmd.Start(); err != nil {
		removeArtifacts(&Session{InputPath: inputPath, OutputPath: outputPath, MarkerPath: markerPath, ScriptPath: scriptPath})
		return nil, fmt.Errorf("terminal: launch console window via cmd.exe: %w", err)
	}
	go cmd.Wait()

	sess := &Session{
		ID:         sid,
		Name:       name,
		Platform:   PlatformWSL,
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

// SendInput overwrites the polled input file; last write wins within a
// poll interval, same as the native Windows driver.
func (d *wslDriver) SendInput(sess *Session, text string) bool {
	if sess.InputPath == "" {
		return false
	}
	if _, err := os.Stat(sess.InputPath); err != nil {
		return false
	}
	return os.WriteFile(sess.InputPath, []byte(text), 0o644) == nil
}

func (d *wslDriver) Output(sess *Session, lines int) string {
	return readTail(sess.OutputPath, lines)
}

func (d *wslDriver) Alive(sess *Session) bool {
	if sess.MarkerPath == "" {
		return false
	}
	_, err := os.Stat(sess.MarkerPath)
	return err == nil
}

func (d *wslDriver) Close(sess *Session) {
	if sess.MarkerPath != "" {
		os.Remove(sess.MarkerPath)
	}
	time.Sleep(d.closeGrace)
	removeArtifacts(sess)
	d.log.Info("terminal window closed", zap.String("session_id", sess.ID))
}

// Cleanup discards the scratch directory only when it is a generated
// Windows temp dir, never a configured project location.
func (d *wslDriver) Cleanup() {
	if d.disposable {
		os.RemoveAll(d.scratch)
	}
}
