// Package server assembles the HTTP surface.
//
// A Server owns the gin router, the service registry with the terminal
// provider registered, and the metrics collector. Routes are a thin
// JSON shim over registry.Execute; the interesting behavior lives in
// the provider and the session manager.
package server
