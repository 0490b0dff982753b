package theme

import "git.lost.host/meutraa/tapline/internal/game"

type Theme interface {
	RenderNote(lane int, kind game.Kind, denom int) string
	RenderHitField(lane int) string
	RenderJudgement(tier game.Tier) string
	RenderLife(band game.Band, width int, fraction float64) string
}
