package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-window-recorder/internal/presentation/render"
)

func TestWidthFloor(t *testing.T) {
	assert.Equal(t, 20, NewTerminalAdapterWithWidth(5).Columns())
	assert.Equal(t, 80, NewTerminalAdapterWithWidth(80).Columns())
}

func TestExecuteEmptyRole(t *testing.T) {
	a := NewTerminalAdapterWithWidth(80)
	out := a.Execute([]render.DrawCommand{
		{Op: render.OpText, Role: render.RoleEmpty, Text: "no records"},
	}, 800)

	assert.Equal(t, "no records\n", out)
}

func TestExecuteDrawsRulerBaselineAndMarkers(t *testing.T) {
	a := NewTerminalAdapterWithWidth(80)
	cmds := []render.DrawCommand{
		{Op: render.OpLine, Role: render.RoleRuler, X1: 40, Y1: 14, X2: 760, Y2: 14},
		{Op: render.OpLine, Role: render.RoleTick, X1: 400, Y1: 14, X2: 400, Y2: 20},
		{Op: render.OpText, Role: render.RoleTickLabel, X: 400, Y: 10, Text: "12:00"},
		{Op: render.OpLine, Role: render.RoleBaseline, X1: 40, Y1: 56, X2: 760, Y2: 56},
		{Op: render.OpCircle, Role: render.RoleMarker, X: 400, Y: 56, Radius: 3},
	}

	out := a.Execute(cmds, 800)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	assert.Contains(t, lines[0], "─")
	assert.Contains(t, lines[0], "┬")
	assert.Contains(t, lines[1], "12:00")
	assert.Contains(t, lines[3], "●")

	// The tick and the marker share a column
	assert.Equal(t, strings.IndexRune(lines[0], '┬'), strings.IndexRune(lines[3], '●'))
}

func TestExecuteGapOverlaysBaseline(t *testing.T) {
	a := NewTerminalAdapterWithWidth(80)
	cmds := []render.DrawCommand{
		{Op: render.OpLine, Role: render.RoleBaseline, X1: 0, Y1: 56, X2: 800, Y2: 56},
		{Op: render.OpDashedLine, Role: render.RoleGap, X1: 200, Y1: 56, X2: 600, Y2: 56},
	}

	out := a.Execute(cmds, 800)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[3], "┄")
	assert.Contains(t, lines[3], "─")
}

func TestExecuteFooterLines(t *testing.T) {
	a := NewTerminalAdapterWithWidth(80)
	cmds := []render.DrawCommand{
		{Op: render.OpText, Role: render.RoleLegend, X: 40, Y: 96, Text: "legend line"},
		{Op: render.OpText, Role: render.RolePreviewText, X: 40, Y: 116, Text: "Some Window"},
		{Op: render.OpImage, Role: render.RolePreviewImage, ImagePath: "shots/a.png"},
	}

	out := a.Execute(cmds, 800)
	assert.Contains(t, out, "legend line\n")
	assert.Contains(t, out, "Some Window\n")
	assert.Contains(t, out, "[thumbnail shots/a.png]\n")
}

func TestExecuteTruncatesLongFooter(t *testing.T) {
	a := NewTerminalAdapterWithWidth(20)
	long := strings.Repeat("x", 100)

	out := a.Execute([]render.DrawCommand{
		{Op: render.OpText, Role: render.RolePreviewText, Text: long},
	}, 800)

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
	assert.Contains(t, out, "…")
}

func TestExecuteClampsOutOfRangeColumns(t *testing.T) {
	a := NewTerminalAdapterWithWidth(40)
	cmds := []render.DrawCommand{
		{Op: render.OpCircle, Role: render.RoleMarker, X: -500},
		{Op: render.OpCircle, Role: render.RoleMarker, X: 5000},
	}

	out := a.Execute(cmds, 800)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "●", string(lines[3][0:len("●")]))
	assert.Contains(t, lines[3], "●")
}
