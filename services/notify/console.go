// Package notifysvc shows toasts and the loading state on the terminal.
package notifysvc

import (
	"fmt"
	"io"
	"sync"

	"github.com/labstack/gommon/color"

	"github.com/trezcool/edulearn/core"
)

const loadingText = "Loading course content..."

type ConsoleNotifier struct {
	out    io.Writer
	color  *color.Color
	logger core.Logger

	mu      sync.Mutex
	loading bool
}

var _ core.Notifier = (*ConsoleNotifier)(nil)

// NewConsoleNotifier writes to `out`, colored when it is a terminal. Toasts are also logged.
func NewConsoleNotifier(out io.Writer, logger core.Logger) *ConsoleNotifier {
	c := color.New()
	c.SetOutput(out)
	return &ConsoleNotifier{out: out, color: c, logger: logger}
}

func (n *ConsoleNotifier) Toast(kind core.ToastKind, msg string) {
	switch kind {
	case core.ToastError:
		_, _ = fmt.Fprintln(n.out, n.color.Red("✗ "+msg))
		n.logger.Warn(msg)
	default:
		_, _ = fmt.Fprintln(n.out, n.color.Green("✓ "+msg))
		n.logger.Info(msg)
	}
}

// Loading prints the loading text when it starts; repeated calls are no-ops.
func (n *ConsoleNotifier) Loading(show bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if show == n.loading {
		return
	}
	n.loading = show
	if show {
		_, _ = fmt.Fprintln(n.out, n.color.Dim(loadingText))
	}
}
