package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the diagnostic logger. It writes to stderr so stdout stays
// clean for --json. --verbose forces debug; otherwise level comes from the
// user config and defaults to warn.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level = strings.TrimSpace(level); level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableCaller = true
	zc.DisableStacktrace = true
	zc.EncoderConfig.TimeKey = ""
	if isJSONOutput() {
		zc.Encoding = "json"
	}
	return zc.Build()
}
