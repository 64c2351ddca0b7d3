package terminal

import (
	"fmt"
	"strings"
)

// shellScript describes the bash agent that runs inside a unix window.
type shellScript struct {
	SessionID  string
	WorkingDir string
	InputPath  string
	OutputPath string
	PIDPath    string // optional: agent writes $$ here after startup
	ScriptPath string // optional: removed by the exit trap
}

// Render produces the wrapper script. The script tees its own output into
// the log so the visible window stays live, runs a background loop that
// evals lines arriving on the FIFO (echoing "$ cmd" first so controller
// commands are distinguishable in the transcript), keeps an interactive
// prompt for the human, and removes its own artifacts on exit however the
// window dies.
func (s shellScript) Render() string {
	var b strings.Builder
	if s.WorkingDir != "" {
		fmt.Fprintf(&b, "cd '%s'\n", s.WorkingDir)
	}
	fmt.Fprintf(&b, "exec > >(tee -a '%s') 2>&1\n", s.OutputPath)
	if s.PIDPath != "" {
		fmt.Fprintf(&b, "echo $$ > '%s'\n", s.PIDPath)
	}
	fmt.Fprintf(&b, `echo "TermBridge agent started (session: %s)"
echo "Working directory: $(pwd)"
echo "You can type commands directly or they will arrive from the controller."
echo ""

(
    while true; do
        if read -r cmd < '%s'; then
            if [ -n "$cmd" ]; then
                echo "$ $cmd"
                eval "$cmd"
            fi
        fi
    done
) &
READER_PID=$!

cleanup() {
    kill $READER_PID 2>/dev/null
    rm -f '%s' 2>/dev/null
    rm -f '%s' 2>/dev/null
`, s.SessionID, s.InputPath, s.InputPath, s.OutputPath)
	if s.PIDPath != "" {
		fmt.Fprintf(&b, "    rm -f '%s' 2>/dev/null\n", s.PIDPath)
	}
	if s.ScriptPath != "" {
		fmt.Fprintf(&b, "    rm -f '%s' 2>/dev/null\n", s.ScriptPath)
	}
	b.WriteString(`    exit 0
}
trap cleanup EXIT INT TERM

while true; do
    read -p "> " user_cmd
    if [ -n "$user_cmd" ]; then
        echo "$ $user_cmd"
        eval "$user_cmd"
    fi
done
`)
	return b.String()
}

// batchScript describes the polling agent that runs inside a Windows
// console. Paths must be in Windows form (the WSL driver translates them
// before rendering).
type batchScript struct {
	WorkingDir string // optional
	InputPath  string
	OutputPath string
	MarkerPath string
}

// Render produces the batch agent. The loop exits when the marker file
// disappears; otherwise it reads the single input file once per second,
// clears it, mirrors the command into the log and the console, and runs
// it. Two inputs written inside one poll interval collapse to the last
// write.
func (s batchScript) Render() string {
	cd := ""
	if s.WorkingDir != "" {
		cd = fmt.Sprintf("cd /d \"%s\"\n", s.WorkingDir)
	}
	return fmt.Sprintf(`@echo off
setlocal EnableDelayedExpansion
%secho TermBridge agent started >> "%s"
echo Working directory: %%CD%% >> "%s"
echo.

:loop
    if not exist "%s" (
        echo Session terminated >> "%s"
        exit /b 0
    )

    set "cmd="
    for /f "usebackq delims=" %%%%i in ("%s") do set "cmd=%%%%i"

    if defined cmd (
        echo. > "%s"
        echo ^> !cmd! >> "%s"
        echo ^> !cmd!
        cmd /c "!cmd!" >> "%s" 2>&1
        echo. >> "%s"
    )

    timeout /t 1 /nobreak > nul
goto loop
`, cd, s.OutputPath, s.OutputPath, s.MarkerPath, s.OutputPath, s.InputPath, s.InputPath, s.OutputPath, s.OutputPath, s.OutputPath)
}
