// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Console writes messages to a terminal, one rendered message per line
// group. Writes are serialised so concurrent jobs never interleave within a
// message.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	color  bool
	styles map[Kind]lipgloss.Style
	header lipgloss.Style
}

// NewConsole returns a console notifier writing to w. With color false,
// messages are written as plain text.
func NewConsole(w io.Writer, color bool) *Console {
	r := lipgloss.NewRenderer(w)
	red := r.NewStyle().Foreground(lipgloss.Color("9"))
	return &Console{
		w:     w,
		color: color,
		styles: map[Kind]lipgloss.Style{
			KindUsage:         red,
			KindRejected:      red,
			KindProgress:      r.NewStyle().Foreground(lipgloss.Color("11")),
			KindFileConverted: r.NewStyle().Foreground(lipgloss.Color("10")),
			KindFileFailed:    red,
			KindSummary:       r.NewStyle().Foreground(lipgloss.Color("10")),
		},
		header: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// Notify renders m and writes it followed by a newline.
func (c *Console) Notify(m Message) {
	text := c.render(m)
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, text)
}

func (c *Console) render(m Message) string {
	if !c.color {
		return m.Text
	}
	style, ok := c.styles[m.Kind]
	if !ok {
		return m.Text
	}
	if m.Kind != KindSummary {
		return style.Render(m.Text)
	}
	head, rest, _ := strings.Cut(m.Text, "\n")
	lines := []string{c.header.Render(head)}
	for _, l := range strings.Split(rest, "\n") {
		lines = append(lines, style.Render(l))
	}
	return strings.Join(lines, "\n")
}

// Write writes p unchanged, serialised with Notify, so other output can share
// the terminal.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}
