package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/10up/scaffold/internal/scaffold"
	"github.com/charmbracelet/lipgloss"
)

const (
	markOK   = "✔"
	markFail = "✘"
)

// Console prints ✔/✘ progress lines. It is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	prefix bool

	success lipgloss.Style
	strong  lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewConsole returns a Console writing to w. Colors are used only when w is
// a terminal that supports them. With prefix set, every line is tagged with
// the target name, which keeps concurrent nested targets readable.
func NewConsole(w io.Writer, prefix bool) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		prefix:  prefix,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		strong:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

var _ scaffold.Reporter = (*Console)(nil)

// Begin implements scaffold.Reporter.
func (c *Console) Begin(t scaffold.Target) {
	c.println(t, c.muted.Render(fmt.Sprintf("Setting up your %s in %s. This might take a bit.", t.Name, t.Dir)))
}

// Step implements scaffold.Reporter.
func (c *Console) Step(t scaffold.Target, state scaffold.State, msg string) {
	style := c.success
	if state == scaffold.StateSubstituting {
		style = c.strong
	}
	c.println(t, style.Render(markOK+" "+msg))
}

// Warn implements scaffold.Reporter.
func (c *Console) Warn(t scaffold.Target, msg string) {
	c.println(t, c.warning.Render(markFail+" Warning: ")+msg)
}

// Fail implements scaffold.Reporter.
func (c *Console) Fail(t scaffold.Target, err error) {
	c.println(t, c.failure.Render(markFail+" Error: ")+err.Error())
}

// Done implements scaffold.Reporter.
func (c *Console) Done(t scaffold.Target) {
	c.println(t, c.strong.Render(fmt.Sprintf("%s %s ready in %s", markOK, t.Name, t.Dir)))
}

func (c *Console) println(t scaffold.Target, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prefix {
		fmt.Fprintf(c.w, "[%s] %s\n", t.Name, line)
		return
	}
	fmt.Fprintln(c.w, line)
}
