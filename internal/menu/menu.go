// Package menu holds the screens shown outside of play: the difficulty
// picker and the result card.
package menu

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/tapline/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var ErrCancelled = errors.New("menu: cancelled")

var (
	accentColor = lipgloss.Color("226")
	textColor   = lipgloss.Color("250")
	failColor   = lipgloss.Color("196")

	titleStyle     = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(textColor)
)

// Picker lists the charts of a song and lets the player choose one
type Picker struct {
	Title  string
	Charts []*game.Chart

	index  int
	chosen *game.Chart
	quit   bool
}

func (m Picker) Init() tea.Cmd {
	return nil
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.index > 0 {
			m.index--
		}
	case "down", "j":
		if m.index < len(m.Charts)-1 {
			m.index++
		}
	case "enter", " ":
		if len(m.Charts) > 0 {
			m.chosen = m.Charts[m.index]
		}
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Picker) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n\n")
	for i, c := range m.Charts {
		line := fmt.Sprintf("%3v  %-10v %5v notes", c.Difficulty.Level, c.Difficulty.Name, c.Len())
		if i == m.index {
			b.WriteString(highlightStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down to move, Enter to play, Q to quit"))
	b.WriteString("\n")
	return b.String()
}

// Pick runs the picker on the terminal. A single chart is returned
// without asking.
func Pick(title string, charts []*game.Chart) (*game.Chart, error) {
	switch len(charts) {
	case 0:
		return nil, errors.New("no playable charts")
	case 1:
		return charts[0], nil
	}

	model, err := tea.NewProgram(Picker{Title: title, Charts: charts}).Run()
	if nil != err {
		return nil, errors.Wrap(err, "unable to run chart picker")
	}
	picker := model.(Picker)
	if picker.quit || nil == picker.chosen {
		return nil, ErrCancelled
	}
	return picker.chosen, nil
}
