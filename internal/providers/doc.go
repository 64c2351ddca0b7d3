// Package providers holds the service provider implementations.
//
// Each provider lives in its own subpackage and implements the registry's
// Provider interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Available Providers:
//   - terminal: visible terminal window sessions
package providers
