package theme

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/tapline/internal/game"
)

type Color struct {
	R, G, B uint8
}

func (c Color) Paint(s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

type DefaultTheme struct{}

func (t *DefaultTheme) RenderNote(lane int, kind game.Kind, denom int) string {
	switch kind {
	case game.Long:
		return NoteColor(denom).Paint(longSym)
	case game.Flick:
		return flickColor.Paint(flickSym)
	}
	return NoteColor(denom).Paint(noteSym)
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	if lane == centerLane {
		return centerSym
	}
	return barSym
}

func (t *DefaultTheme) RenderJudgement(tier game.Tier) string {
	return TierColor(tier).Paint(strings.ToUpper(tier.String()))
}

// RenderLife draws a bar width cells wide, coloured by the life band
func (t *DefaultTheme) RenderLife(band game.Band, width int, fraction float64) string {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return bandColors[band].Paint(strings.Repeat("█", filled)) +
		strings.Repeat("░", width-filled)
}

const (
	noteSym    = "⬤"
	longSym    = "▮"
	flickSym   = "⯅"
	barSym     = "-"
	centerSym  = "="
	centerLane = 4
)

var (
	flickColor = Color{236, 236, 0}
	tierColors = [game.TierCount]Color{
		game.Perfect: {255, 215, 0},
		game.Great:   {0, 236, 128},
		game.Good:    {0, 118, 236},
		game.Bad:     {236, 128, 0},
		game.Miss:    {236, 30, 0},
	}
	bandColors = map[game.Band]Color{
		game.LifeNormal:  {0, 236, 128},
		game.LifeWarning: {236, 195, 0},
		game.LifeDanger:  {236, 30, 0},
	}
	noteColors = map[int]Color{
		1:  {236, 30, 0},    // 1/4 red
		2:  {0, 118, 236},   // 1/8 blue
		3:  {106, 0, 236},   // 1/12 purple
		4:  {236, 195, 0},   // 1/16 yellow
		6:  {236, 0, 106},   // 1/24 pink
		8:  {236, 128, 0},   // 1/32 orange
		12: {173, 236, 236}, // 1/48 light blue
		16: {0, 236, 128},   // 1/64 green
		48: {110, 147, 89},  // 1/192 olive
		-1: {255, 255, 255}, // other white
	}
)

func NoteColor(d int) Color {
	col, ok := noteColors[d]
	if !ok {
		return noteColors[-1]
	}
	return col
}

func TierColor(t game.Tier) Color {
	if t >= game.TierCount {
		return noteColors[-1]
	}
	return tierColors[t]
}
