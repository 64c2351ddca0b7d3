// Package terminal exposes visible terminal windows as service tools.
//
// Unlike a PTY-backed emulator, every session here is a real window on
// the user's desktop: the user watches commands run and can type into
// the same shell. The provider is a thin dispatch layer over the
// session manager; parameter coercion and the output line clamp live
// here, everything stateful lives below.
//
// Tools:
//   - terminal.create_or_get: open a window, or reuse the live one with the given name
//   - terminal.send_input: send a command to the window's shell
//   - terminal.get_output: read the trailing transcript lines
//   - terminal.list: list sessions whose windows are still open
//   - terminal.close: close the window and delete its artifacts
package terminal
