package cliconfig

import (
	"os"

	"github.com/bft-labs/i2p/pkg/log"
)

// Logger returns a console logger on stderr at the given level.
func Logger(level string) *log.ZerologAdapter {
	return log.NewConsoleLogger(os.Stderr, level)
}
