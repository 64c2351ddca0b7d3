//go:build !linux && !darwin && !windows

package terminal

import "github.com/GriffinCanCode/TermBridge/internal/logging"

// New selects the driver for this environment, once per process.
func New(opts Options, log *logging.Logger) (Driver, error) {
	return nil, ErrUnsupported
}
