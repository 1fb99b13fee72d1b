// Package display executes draw commands against a character grid, giving
// the CLI a toolkit-free preview of the timeline track.
package display

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-window-recorder/internal/presentation/render"
)

const (
	rowRuler       = 0
	rowTickLabel   = 1
	rowMarkerLabel = 2
	rowBaseline    = 3
	gridRows       = 4

	defaultColumns = 100
)

// TerminalAdapter rasterizes draw commands into text columns.
type TerminalAdapter struct {
	columns int
}

// NewTerminalAdapter sizes the adapter from the attached terminal, falling
// back to a fixed width when stdout is not a terminal.
func NewTerminalAdapter() *TerminalAdapter {
	columns := defaultColumns
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		columns = w
	}
	return &TerminalAdapter{columns: columns}
}

// NewTerminalAdapterWithWidth creates an adapter with a fixed column count.
func NewTerminalAdapterWithWidth(columns int) *TerminalAdapter {
	if columns < 20 {
		columns = 20
	}
	return &TerminalAdapter{columns: columns}
}

// Columns returns the adapter's character width.
func (a *TerminalAdapter) Columns() int {
	return a.columns
}

// Execute renders the command list produced for a track of trackWidth
// pixels and returns the finished text block.
func (a *TerminalAdapter) Execute(cmds []render.DrawCommand, trackWidth float64) string {
	grid := make([][]rune, gridRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", a.columns))
	}

	var footer []string
	col := func(x float64) int {
		if trackWidth <= 0 {
			return 0
		}
		c := int(x / trackWidth * float64(a.columns-1))
		if c < 0 {
			c = 0
		}
		if c >= a.columns {
			c = a.columns - 1
		}
		return c
	}

	for _, cmd := range cmds {
		switch cmd.Role {
		case render.RoleRuler:
			a.hline(grid[rowRuler], col(cmd.X1), col(cmd.X2), '─')
		case render.RoleTick:
			grid[rowRuler][col(cmd.X1)] = '┬'
		case render.RoleTickLabel:
			a.placeText(grid[rowTickLabel], col(cmd.X), cmd.Text)
		case render.RoleBaseline:
			a.hline(grid[rowBaseline], col(cmd.X1), col(cmd.X2), '─')
		case render.RoleGap:
			a.hline(grid[rowBaseline], col(cmd.X1), col(cmd.X2), '┄')
		case render.RoleMarker:
			grid[rowBaseline][col(cmd.X)] = '●'
		case render.RoleMarkerLabel:
			a.placeText(grid[rowMarkerLabel], col(cmd.X), cmd.Text)
		case render.RoleLegend:
			footer = append(footer, cmd.Text)
		case render.RolePreviewText:
			footer = append(footer, a.truncate(cmd.Text))
		case render.RolePreviewImage:
			footer = append(footer, a.truncate("[thumbnail "+cmd.ImagePath+"]"))
		case render.RoleEmpty:
			return cmd.Text + "\n"
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	for _, line := range footer {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (a *TerminalAdapter) hline(row []rune, from, to int, ch rune) {
	if from > to {
		from, to = to, from
	}
	for c := from; c <= to && c < len(row); c++ {
		row[c] = ch
	}
}

// placeText centers text on a column, accounting for wide runes so CJK
// window titles line up.
func (a *TerminalAdapter) placeText(row []rune, center int, text string) {
	width := runewidth.StringWidth(text)
	start := center - width/2
	if start < 0 {
		start = 0
	}
	c := start
	for _, r := range text {
		if c >= len(row) {
			break
		}
		row[c] = r
		c += runewidth.RuneWidth(r)
	}
}

// truncate bounds a footer line to the terminal width.
func (a *TerminalAdapter) truncate(text string) string {
	if runewidth.StringWidth(text) <= a.columns {
		return text
	}
	return runewidth.Truncate(text, a.columns-1, "…")
}
