package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Style represents a log message style.
type Style string

const (
	StyleInfo    Style = "info"
	StyleSuccess Style = "success"
	StyleWarning Style = "warning"
	StyleError   Style = "error"
	StyleDim     Style = "dim"
)

// Logger provides styled progress logging. It is the reporting sink for
// the dispatcher: per-task outcome lines and batch-level messages all go
// through it. Safe for concurrent use; tasks finishing at the same time
// log from separate goroutines.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	isTTY bool
}

// NewLogger creates a logger writing to stderr.
func NewLogger() *Logger {
	return &Logger{
		out:   os.Stderr,
		isTTY: IsStderrTTY(),
	}
}

// NewLoggerTo creates a logger writing to w, with TTY behavior disabled.
// Tests use it to capture report lines without touching real console
// state.
func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{out: w}
}

// Log prints a styled log message.
func (l *Logger) Log(msg string, style Style) {
	styleColor := Cyan
	switch style {
	case StyleInfo:
		styleColor = Cyan
	case StyleSuccess:
		styleColor = Green
	case StyleWarning:
		styleColor = Yellow
	case StyleError:
		styleColor = Red
	case StyleDim:
		styleColor = Dim
	}

	tag := fmt.Sprintf("%s[%s%spromptfan%s%s]%s",
		Color(Dim), Color(Reset), Color(styleColor), Color(Reset), Color(Dim), Color(Reset))

	l.mu.Lock()
	defer l.mu.Unlock()

	// Clear the spinner line if on a TTY
	if l.isTTY {
		fmt.Fprint(l.out, "\r"+strings.Repeat(" ", 100)+"\r")
	}
	fmt.Fprintf(l.out, "%s %s\n", tag, msg)
}

// Logf prints a formatted styled log message.
func (l *Logger) Logf(style Style, format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...), style)
}
