package logger

import (
	"io"
	"sync"

	"github.com/fatih/color" // Colored console output
)

// Log lines go to stderr so that listings printed on stdout stay clean for piping.
var (
	mu  sync.Mutex
	out io.Writer = color.Error

	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Info logs informational messages in green.
func Info(format string, a ...any) { write(infoColor, format, a...) }

// Warn logs warnings in bright magenta.
func Warn(format string, a ...any) { write(warnColor, format, a...) }

// Error logs errors in red.
func Error(format string, a ...any) { write(errorColor, format, a...) }

// Debug logs cyan debug messages when enabled through Init, otherwise it is a no-op.
// It starts out disabled so packages can call it before the CLI has parsed --debug.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = func(format string, a ...any) { write(debugColor, format, a...) }
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects every log level to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// write serializes log lines; sync workers log from their own goroutines.
func write(c *color.Color, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = c.Fprintf(out, format, a...)
}
