// Package service routes tool calls to registered providers.
//
// A Provider exposes a Definition (metadata plus tool schemas) and an
// Execute entry point; the Registry resolves "service.tool" ids to the
// owning provider. All session and platform logic lives below this layer.
package service
