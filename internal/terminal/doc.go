// Package terminal drives visible, user-observable terminal windows.
//
// A Driver owns the native mechanism for one platform family:
//   - linux:   spawns the first available terminal emulator from a fixed
//     preference list, bridged over a named pipe
//   - macos:   Terminal.app via osascript, windows addressed by custom title
//   - windows: Windows Terminal (or classic console host) running a batch
//     script that polls an input file
//   - wsl:     the Windows mechanism driven through cmd.exe from inside WSL,
//     with paths translated between the two filesystem namespaces
//
// Every driver speaks the same channel protocol: an input channel (true
// pipe or polled file), an append-only output log that doubles as the
// transcript, and on the polled platforms a marker file whose removal tells
// the window's agent loop to exit. The wrapper script inside each window
// mirrors controller commands into the log as "$ cmd" lines so they are
// distinguishable from human-typed input, and removes its own artifacts on
// exit however the window dies.
//
// Output retrieval re-reads the whole log and returns the trailing N lines;
// there is no read cursor, so long-lived chatty sessions pay a growing scan
// cost. On the polled platforms, two inputs submitted inside one poll
// interval collapse to the last write.
//
// Commands are evaluated verbatim by the shell in the window. This is a
// single-trusted-user automation tool; nothing here sanitizes input.
package terminal
