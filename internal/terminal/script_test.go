package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellScriptRender(t *testing.T) {
	script := shellScript{
		SessionID:  "term_01ABC",
		WorkingDir: "/home/dev/project",
		InputPath:  "/tmp/termbridge/term_01ABC_input.fifo",
		OutputPath: "/tmp/termbridge/term_01ABC_output.log",
		PIDPath:    "/tmp/termbridge/term_01ABC.pid",
	}.Render()

	// Transcript capture stays live in the visible window.
	assert.Contains(t, script, "exec > >(tee -a '/tmp/termbridge/term_01ABC_output.log') 2>&1")
	assert.Contains(t, script, "cd '/home/dev/project'")
	assert.Contains(t, script, "echo $$ > '/tmp/termbridge/term_01ABC.pid'")

	// Controller commands are echoed before evaluation.
	assert.Contains(t, script, `read -r cmd < '/tmp/termbridge/term_01ABC_input.fifo'`)
	assert.Contains(t, script, `echo "$ $cmd"`)
	assert.Contains(t, script, `eval "$cmd"`)

	// Artifacts are removed however the window exits.
	assert.Contains(t, script, "trap cleanup EXIT INT TERM")
	assert.Contains(t, script, "rm -f '/tmp/termbridge/term_01ABC_input.fifo'")
	assert.Contains(t, script, "rm -f '/tmp/termbridge/term_01ABC_output.log'")
	assert.Contains(t, script, "rm -f '/tmp/termbridge/term_01ABC.pid'")

	// The human keeps an interactive prompt.
	assert.Contains(t, script, `read -p "> " user_cmd`)
}

func TestShellScriptRenderOptionalParts(t *testing.T) {
	script := shellScript{
		SessionID:  "term_01DEF",
		InputPath:  "/tmp/in.fifo",
		OutputPath: "/tmp/out.log",
		ScriptPath: "/tmp/agent.sh",
	}.Render()

	assert.NotContains(t, script, "cd '")
	assert.NotContains(t, script, "echo $$")
	assert.Contains(t, script, "rm -f '/tmp/agent.sh'")
}

func TestBatchScriptRender(t *testing.T) {
	script := batchScript{
		WorkingDir: `C:\Users\dev\project`,
		InputPath:  `C:\Temp\termbridge\term_01GHI_input.txt`,
		OutputPath: `C:\Temp\termbridge\term_01GHI_output.log`,
		MarkerPath: `C:\Temp\termbridge\term_01GHI_running.marker`,
	}.Render()

	assert.True(t, strings.HasPrefix(script, "@echo off"))
	assert.Contains(t, script, "setlocal EnableDelayedExpansion")
	assert.Contains(t, script, `cd /d "C:\Users\dev\project"`)

	// Marker removal is the exit signal.
	assert.Contains(t, script, `if not exist "C:\Temp\termbridge\term_01GHI_running.marker"`)
	assert.Contains(t, script, "exit /b 0")

	// One-second poll of the input file, cleared after reading.
	assert.Contains(t, script, `for /f "usebackq delims=" %%i in ("C:\Temp\termbridge\term_01GHI_input.txt")`)
	assert.Contains(t, script, `echo. > "C:\Temp\termbridge\term_01GHI_input.txt"`)
	assert.Contains(t, script, "timeout /t 1 /nobreak > nul")

	// Commands are mirrored into the log before execution.
	assert.Contains(t, script, `echo ^> !cmd! >> "C:\Temp\termbridge\term_01GHI_output.log"`)
	assert.Contains(t, script, `cmd /c "!cmd!" >> "C:\Temp\termbridge\term_01GHI_output.log" 2>&1`)
}

func TestBatchScriptRenderNoWorkingDir(t *testing.T) {
	script := batchScript{
		InputPath:  `C:\Temp\in.txt`,
		OutputPath: `C:\Temp\out.log`,
		MarkerPath: `C:\Temp\run.marker`,
	}.Render()

	assert.NotContains(t, script, "cd /d")
}
