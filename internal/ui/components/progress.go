package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

// ProgressBar displays a labelled horizontal bar for Value out of Max.
type ProgressBar struct {
	Label      string
	LabelWidth int // pads labels so bars line up
	Value      float64
	Max        float64
	Width      int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, value, maxValue float64, width int) ProgressBar {
	return ProgressBar{Label: label, Value: value, Max: maxValue, Width: width}
}

// Fraction returns Value/Max clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(p.Value/p.Max, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := p.Label
	if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	result := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "

	value := fmt.Sprintf("  %4.1f", p.Value)
	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(value), 4)

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled))
	result += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(value)
	return result
}
