package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the available height for screen content.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the application header bar: the app name, the
// screen title centered, and status items on the right.
func RenderHeader(title string, status []string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  BitVoyager")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Join(status, "   "))

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints. Hints that do not fit in width are
// dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	var content string
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		next := part
		if content != "" {
			next = content + "   " + part
		}
		if lipgloss.Width(next)+2 > max(width-4, 0) {
			break
		}
		content = next
	}
	return bar(width).Render("  " + content)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := max(height-headerHeight-footerHeight, 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// Centered renders lines centered in width, one per line.
func Centered(width int, lines ...string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, l)
	}
	return strings.Join(out, "\n")
}
