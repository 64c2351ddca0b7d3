//go:build linux

package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/shared/id"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// emulator is one entry of the launch preference list. The args shape
// differs per emulator: most take the script as a bash -c argument,
// xfce4-terminal wants the whole command line as one -e argument.
type emulator struct {
	name string
	args []string
}

var linuxEmulators = []emulator{
	{"gnome-terminal", []string{"gnome-terminal", "--", "bash", "-c"}},
	{"konsole", []string{"konsole", "-e", "bash", "-c"}},
	{"xfce4-terminal", []string{"xfce4-terminal", "-e"}},
	{"mate-terminal", []string{"mate-terminal", "-e"}},
	{"lxterminal", []string{"lxterminal", "-e"}},
	{"xterm", []string{"xterm", "-hold", "-e", "bash", "-c"}},
	{"x-terminal-emulator", []string{"x-terminal-emulator", "-e", "bash", "-c"}},
}

// linuxDriver bridges a visible emulator window over a named pipe. The
// agent script reports its own pid through a pid file; that pid, not the
// emulator launcher's, is the liveness anchor.
type linuxDriver struct {
	scratch    string
	launchArgs []string
	spawnWait  time.Duration
	log        *logging.Logger
}

func newLinuxDriver(opts Options, log *logging.Logger) (*linuxDriver, error) {
	opts = opts.withDefaults()
	if err := os.MkdirAll(opts.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("terminal: create scratch dir: %w", err)
	}

	var launchArgs []string
	for _, em := range linuxEmulators {
		if _, err := exec.LookPath(em.name); err == nil {
			launchArgs = em.args
			break
		}
	}
	if launchArgs == nil {
		return nil, fmt.Errorf("%w: install one of gnome-terminal, konsole, xfce4-terminal, mate-terminal, lxterminal, xterm", ErrUnsupported)
	}

	return &linuxDriver{
		scratch:    opts.ScratchDir,
		launchArgs: launchArgs,
		spawnWait:  opts.SpawnWait,
		log:        log,
	}, nil
}

func (d *linuxDriver) Platform() Platform { return PlatformLinux }

func (d *linuxDriver) Create(name, workingDir string) (*Session, error) {
	sid := id.NewSessionID().String()
	if name == "" {
		name = "Terminal-" + sid
	}
	if workingDir == "" {
		workingDir, _ = os.Getwd()
	}

	inputPath := filepath.Join(d.scratch, sid+"_input.fifo")
	outputPath := filepath.Join(d.scratch, sid+"_output.log")
	pidPath := filepath.Join(d.scratch, sid+".pid")

	if err := unix.Mkfifo(inputPath, 0o600); err != nil {
		return nil, fmt.Errorf("terminal: create input fifo: %w", err)
	}
	if err := touch(outputPath); err != nil {
		os.Remove(inputPath)
		return nil, fmt.Errorf("terminal: create output log: %w", err)
	}

	script := shellScript{
		SessionID:  sid,
		WorkingDir: workingDir,
		InputPath:  inputPath,
		OutputPath: outputPath,
		PIDPath:    pidPath,
	}.Render()

	argv := append([]string{}, d.launchArgs...)
	if argv[0] == "xfce4-terminal" {
		// -e takes the whole command line as a single argument
		argv = append(argv, fmt.Sprintf("bash -c \"%s\"", script))
	} else {
		argv = append(argv, script)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		os.Remove(inputPath)
		os.Remove(outputPath)
		return nil, fmt.Errorf("terminal: launch %s: %w", argv[0], err)
	}
	go cmd.Wait()

	// Give the agent script a moment to start and report its pid.
	time.Sleep(d.spawnWait)

	pid := cmd.Process.Pid
	if data, err := os.ReadFile(pidPath); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && v > 0 {
			pid = v
		}
	}

	sess := &Session{
		ID:         sid,
		Name:       name,
		Platform:   PlatformLinux,
		PID:        pid,
		InputPath:  inputPath,
		OutputPath: outputPath,
		CreatedAt:  time.Now(),
		PIDPath:    pidPath,
	}

	d.log.Info("terminal window created",
		zap.String("session_id", sid),
		zap.String("name", name),
		zap.String("emulator", argv[0]),
		zap.Int("pid", pid))
	return sess, nil
}

func (d *linuxDriver) SendInput(sess *Session, text string) bool {
	if sess.InputPath == "" {
		return false
	}
	// Non-blocking open: if the window's reader is gone this fails
	// instead of stalling the caller.
	fd, err := unix.Open(sess.InputPath, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return false
	}
	defer unix.Close(fd)

	_, err = unix.Write(fd, []byte(text+"\n"))
	return err == nil
}

func (d *linuxDriver) Output(sess *Session, lines int) string {
	return readTail(sess.OutputPath, lines)
}

func (d *linuxDriver) Alive(sess *Session) bool {
	if sess.PID <= 0 {
		return false
	}
	// Signal 0 is a pure existence check.
	return unix.Kill(sess.PID, 0) == nil
}

func (d *linuxDriver) Close(sess *Session) {
	if sess.PID > 0 {
		if pgid, err := unix.Getpgid(sess.PID); err == nil {
			unix.Kill(-pgid, unix.SIGTERM)
		}
		unix.Kill(sess.PID, unix.SIGTERM)
	}
	removeArtifacts(sess)
	d.log.Info("terminal window closed", zap.String("session_id", sess.ID))
}

// Cleanup leaves the scratch directory intact; it is a fixed location
// shared across runs.
func (d *linuxDriver) Cleanup() {}
