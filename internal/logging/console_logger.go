package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ConsoleLogger writes log messages to a writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	styled  bool
	mu      sync.Mutex
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithWriter redirects output. Default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(l *ConsoleLogger) { l.out = w }
}

// WithStyle forces styling on or off. By default styling is enabled only when
// stdout is a terminal and NO_COLOR is unset.
func WithStyle(styled bool) Option {
	return func(l *ConsoleLogger) { l.styled = styled }
}

// NewConsoleLogger creates a new ConsoleLogger.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool, opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		out:     os.Stdout,
		verbose: verbose,
		styled:  StdoutSupportsStyle(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// StdoutSupportsStyle reports whether stdout is a terminal that should receive colors.
func StdoutSupportsStyle() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(&verboseStyle, "[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(nil, "", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(&errorStyle, "[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(style *lipgloss.Style, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	line := prefix + msg
	if l.styled && style != nil {
		line = style.Render(line)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, line+"\n")
}
