package serviceutil

import (
	"log/slog"
	"os"
)

// Fatal logs the error and exits. For use at process startup, before
// a real error path exists.
func Fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
