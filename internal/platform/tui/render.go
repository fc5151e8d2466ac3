package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/robopath/internal/render"
)

// cellStyles maps render cells to lipgloss styles.
var cellStyles = map[render.Cell]lipgloss.Style{
	render.CellFree:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	render.CellObstacle:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
	render.CellStart:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	render.CellGoal:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	render.CellExplored:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	render.CellPath:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	render.CellCollision: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	render.CellAgent:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
}

// RenderFrame converts a frame to a styled string for display. Cells are
// padded to two columns so the board keeps a square aspect in terminals.
// Adjacent cells of the same kind share one style run.
func RenderFrame(f *render.Frame) string {
	var sb strings.Builder
	sb.Grow(f.Width()*f.Height()*4 + f.Height())

	for y, h := 0, f.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < f.Width() {
			kind := f.At(x, y)

			var run strings.Builder
			for x < f.Width() && f.At(x, y) == kind {
				run.WriteRune(f.Glyph(x, y))
				run.WriteRune(' ')
				x++
			}

			style, ok := cellStyles[kind]
			if !ok {
				style = cellStyles[render.CellFree]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// centerText centers text within the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
