package menu

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/history"
	"git.lost.host/meutraa/tapline/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(textColor).
	Padding(0, 2)

func tierStyle(t game.Tier) lipgloss.Style {
	c := theme.TierColor(t)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
}

// Card renders a finished run. best is the previous best, if any.
func Card(chart *game.Chart, r game.Result, best *history.History) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%v [%v]", chart.Title, chart.Difficulty.Name)))
	b.WriteString("\n\n")

	rank := highlightStyle
	if r.Failed {
		rank = lipgloss.NewStyle().Foreground(failColor).Bold(true)
	}
	b.WriteString(fmt.Sprintf("       Rank:  %s\n", rank.Render(r.Rank.String())))
	b.WriteString(fmt.Sprintf("      Score:  %8d\n", r.Score))
	b.WriteString(fmt.Sprintf("   Accuracy:  %7.2f%%\n", r.Accuracy*100))
	b.WriteString(fmt.Sprintf("  Max Combo:  %8d\n", r.MaxCombo))
	for t := game.Perfect; t < game.TierCount; t++ {
		b.WriteString(fmt.Sprintf("%s:  %8d\n", tierStyle(t).Render(fmt.Sprintf("%11v", t)), r.Counts[t]))
	}
	if nil != best {
		b.WriteString(helpStyle.Render(fmt.Sprintf("       Best:  %8d (%v)", best.Score, best.Rank)))
		b.WriteString("\n")
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}
