// Package types defines the shared service vocabulary.
//
// Core types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Parameter: Tool parameter schema
//   - Result: Standard operation result
//   - ExecuteRequest: Service tool execution
package types
