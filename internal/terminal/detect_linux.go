//go:build linux

package terminal

import (
	"os"
	"strings"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
)

// New selects the driver for this environment, once per process. A WSL
// kernel is Linux that should defer to the Windows-facing driver.
func New(opts Options, log *logging.Logger) (Driver, error) {
	if isWSL() {
		return newWSLDriver(opts, log)
	}
	return newLinuxDriver(opts, log)
}

func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}
