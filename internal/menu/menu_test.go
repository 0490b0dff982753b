package menu

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/history"
	"git.lost.host/meutraa/tapline/internal/parser"
	"git.lost.host/meutraa/tapline/internal/testdata"
	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func charts(t *testing.T) []*game.Chart {
	charts, err := (&parser.YAMLParser{}).Decode(testdata.Song)
	if nil != err {
		t.Fatal(err)
	}
	return charts
}

func press(m tea.Model, keys ...string) (Picker, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(key(k))
	}
	return m.(Picker), cmd
}

func TestPickerMoves(t *testing.T) {
	cs := charts(t)
	var tests = []struct {
		keys  []string
		index int
	}{
		{[]string{}, 0},
		{[]string{"down"}, 1},
		{[]string{"down", "down", "down"}, len(cs) - 1},
		{[]string{"j", "k"}, 0},
		{[]string{"up"}, 0},
	}
	for _, test := range tests {
		m, _ := press(Picker{Charts: cs}, test.keys...)
		if m.index != test.index {
			t.Log("Keys    ", test.keys)
			t.Log("Index   ", m.index)
			t.Log("Expected", test.index)
			t.Fail()
		}
	}
}

func TestPickerChooses(t *testing.T) {
	cs := charts(t)
	m, cmd := press(Picker{Charts: cs}, "down", "enter")
	if m.chosen != cs[1] || nil == cmd {
		t.Errorf("expected the second chart to be chosen, got %v", m.chosen)
	}

	m, cmd = press(Picker{Charts: cs}, "q")
	if !m.quit || nil != m.chosen || nil == cmd {
		t.Error("q did not cancel the picker")
	}
}

func TestPickerView(t *testing.T) {
	cs := charts(t)
	view := Picker{Title: "Starlight Stage", Charts: cs}.View()
	for _, c := range cs {
		if !strings.Contains(view, c.Difficulty.Name) {
			t.Errorf("view is missing %v", c.Difficulty.Name)
		}
	}
	if !strings.Contains(view, "> ") {
		t.Error("view has no cursor")
	}
}

func TestPickSingle(t *testing.T) {
	c := testdata.Single()
	got, err := Pick("test", []*game.Chart{c})
	if nil != err || got != c {
		t.Errorf("single chart was not picked: %v", err)
	}
	if _, err := Pick("test", nil); nil == err {
		t.Error("expected an error without charts")
	}
}

func TestCard(t *testing.T) {
	c := testdata.Single()
	rules := game.DefaultRules()
	s := rules.Apply(game.Perfect, rules.NewState())
	r := rules.Result(s.Complete(), c.Len())

	card := Card(c, r, nil)
	for _, expected := range []string{"test", "1000", "100.00%", "Perfect", "S"} {
		if !strings.Contains(card, expected) {
			t.Errorf("card is missing %q", expected)
		}
	}
	if strings.Contains(card, "Best") {
		t.Error("card shows a best without history")
	}

	card = Card(c, r, &history.History{Score: 900, Rank: game.RankA})
	if !strings.Contains(card, "900") {
		t.Error("card is missing the previous best")
	}
}
