package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

const titleArt = `┳┓•  ┓┏
┣┫┓╋ ┃┃┏┓┓┏┏┓┏┓┏┓┏┓
┻┛┗┗ ┗┛┗┛┗┫┗┻┗┫┗━┛
          ┛   ┛`

const titleCompact = "B I T V O Y A G E R"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleArt
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders streak, overall skill and shell level in a
// double-bordered box matching content width.
func renderStatsBar(st session.Stats, loaded bool, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if !loaded {
		return statsBox(dim.Render("loading..."), cw)
	}

	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	skill := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	level := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	days := st.Profile.ConsecutiveDays
	unit := "DAYS"
	if days == 1 {
		unit = "DAY"
	}
	line := fmt.Sprintf("%s  %s  %s",
		streak.Render(fmt.Sprintf("🔥 %d %s", days, unit)),
		skill.Render(fmt.Sprintf("◆ SKILL %.1f", st.Profile.OverallSkill())),
		level.Render(fmt.Sprintf("$ LEVEL %d", st.Level)),
	)
	return statsBox(line, cw)
}

func statsBox(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// renderOfflineNote tells the learner hints are generated locally.
func renderOfflineNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render("Offline hints (set an LLM API key for richer ones)")
}

// renderFrame wraps content in a rounded border centered in the area.
func renderFrame(content string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func joinSections(sections ...string) string {
	var out []string
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}
