package device

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the package-level logger.
func UseLogger(logger slog.Logger) {
	log = logger
}
