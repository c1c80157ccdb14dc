// Package obs provides the structured logger shared by the CLI and
// the store façade's adapters.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the global structured logger instance, JSON-formatted to
// stdout, matching every other entry point in this module.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))
