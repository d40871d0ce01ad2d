package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

// Console пишет человекочитаемые строки в терминал.
// Debug-строки выводятся только в verbose-режиме.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// NewConsole создает консольный логгер поверх w.
func NewConsole(w io.Writer, verbose bool) *Console {
	return &Console{out: w, verbose: verbose}
}

func (c *Console) Info(msg string, args ...any)    { c.write(infoStyle, "ℹ", msg, args) }
func (c *Console) Success(msg string, args ...any) { c.write(successStyle, "✔", msg, args) }
func (c *Console) Warning(msg string, args ...any) { c.write(warningStyle, "⚠", msg, args) }
func (c *Console) Error(msg string, args ...any)   { c.write(errorStyle, "✖", msg, args) }
func (c *Console) Step(msg string, args ...any)    { c.write(stepStyle, "→", msg, args) }

func (c *Console) Debug(msg string, args ...any) {
	if !c.verbose {
		return
	}
	c.write(debugStyle, "·", msg, args)
}

func (c *Console) write(style lipgloss.Style, symbol, msg string, args []any) {
	line := style.Render(symbol) + " " + msg
	if attrs := formatAttrs(args); attrs != "" {
		line += " " + debugStyle.Render(attrs)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// formatAttrs раскладывает пары ключ/значение в стиле slog.
func formatAttrs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			parts = append(parts, fmt.Sprintf("!BADKEY=%v", args[i]))
			break
		}
		parts = append(parts, fmt.Sprintf("%v=%v", args[i], args[i+1]))
	}
	return strings.Join(parts, " ")
}
