package render

import (
	"git.lost.host/meutraa/tapline/internal/session"
	"git.lost.host/meutraa/tapline/internal/theme"
)

type Renderer interface {
	session.Listener

	Init() error
	Deinit() error
	AddDecoration(col, row int, content string, frames int)
	Render(snap session.Snapshot)
	Fill(row, column int, message string)
	FillColor(row, column int, c theme.Color, message string)
}
