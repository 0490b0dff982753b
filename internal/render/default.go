package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/session"
	"git.lost.host/meutraa/tapline/internal/theme"
	"golang.org/x/term"
)

const (
	laneSpacing   = 4
	barOffset     = 3
	sideWidth     = 24
	judgeFrames   = 60
	missFrames    = 120
	defaultWidth  = 80
	defaultHeight = 24
)

// DefaultRenderer draws snapshots as ANSI escape sequences. Width and
// Height are read from the terminal by Init when left unset.
type DefaultRenderer struct {
	session.NopListener

	Out    io.Writer
	Theme  theme.Theme
	Width  int
	Height int

	buffer       strings.Builder
	restoreState *term.State
	fd           int
	decorations  []*decoration
	judgement    *decoration
	drawn        []cell
	lanes        int
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

type cell struct {
	row, col, width int
}

func (r *DefaultRenderer) Init() error {
	if nil == r.Out {
		r.Out = os.Stdout
	}
	if f, ok := r.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.fd = int(f.Fd())
		if 0 == r.Width || 0 == r.Height {
			width, height, err := term.GetSize(r.fd)
			if nil != err {
				return fmt.Errorf("unable to get terminal size: %w", err)
			}
			r.Width, r.Height = width, height
		}
		state, err := term.MakeRaw(r.fd)
		if nil != err {
			return err
		}
		r.restoreState = state
	}
	r.defaults()

	_, err := fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	return err
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(r.fd, r.restoreState)
}

func (r *DefaultRenderer) defaults() {
	if nil == r.Out {
		r.Out = os.Stdout
	}
	if nil == r.Theme {
		r.Theme = &theme.DefaultTheme{}
	}
	if r.Width <= 0 {
		r.Width = defaultWidth
	}
	if r.Height <= 0 {
		r.Height = defaultHeight
	}
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.addDecoration(col, row, content, frames)
}

func (r *DefaultRenderer) addDecoration(col, row int, content string, frames int) *decoration {
	d := &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	}
	r.decorations = append(r.decorations, d)
	r.Fill(row, col, content)
	return d
}

func (r *DefaultRenderer) removeDecoration(old *decoration) {
	for i, d := range r.decorations {
		if d == old {
			r.Fill(d.Y, d.X, strings.Repeat(" ", visibleWidth(d.Content)))
			r.decorations = append(r.decorations[:i], r.decorations[i+1:]...)
			return
		}
	}
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", visibleWidth(d.Content)))
			continue
		}
		nd = append(nd, d)
		r.Fill(d.Y, d.X, d.Content)
		d.Frames--
	}
	r.decorations = nd
}

// column returns the screen column of a lane, lanes are centred
func (r *DefaultRenderer) column(lane, lanes int) int {
	mid := r.Width >> 1
	return mid + int(math.Round((float64(lane)-float64(lanes-1)/2)*laneSpacing))
}

func (r *DefaultRenderer) hitRow() int {
	return r.Height - barOffset
}

// row maps approach progress onto the playing field, 1 is the hit row
func (r *DefaultRenderer) row(progress float64) int {
	top, bottom := 1, r.hitRow()
	return top + int(math.Round(progress*float64(bottom-top)))
}

func (r *DefaultRenderer) inField(row int) bool {
	return row > 0 && row < r.hitRow()
}

func (r *DefaultRenderer) Render(snap session.Snapshot) {
	r.defaults()
	r.lanes = snap.Lanes

	for _, c := range r.drawn {
		r.Fill(c.row, c.col, strings.Repeat(" ", c.width))
	}
	r.drawn = r.drawn[:0]

	hit := r.hitRow()
	for i := 0; i < snap.Lanes; i++ {
		r.Fill(hit, r.column(i, snap.Lanes), r.Theme.RenderHitField(i))
	}

	left, right := r.column(0, snap.Lanes)-2, r.column(snap.Lanes-1, snap.Lanes)+2
	for _, toHit := range snap.Measures {
		progress := 1.0
		if snap.Approach > 0 {
			progress = 1 - float64(toHit)/float64(snap.Approach)
		}
		row := r.row(progress)
		if !r.inField(row) {
			continue
		}
		r.draw(row, left, "·")
		r.draw(row, right, "·")
	}

	for _, n := range snap.Notes {
		row := r.row(n.Progress)
		if !r.inField(row) {
			continue
		}
		r.draw(row, r.column(n.Lane, snap.Lanes), r.Theme.RenderNote(n.Lane, n.Kind, n.Denom))
	}

	r.renderSide(snap)
	r.renderBanner(snap)

	r.tickDecorations()
	r.flush()
}

func (r *DefaultRenderer) renderSide(snap session.Snapshot) {
	sideCol := r.column(0, snap.Lanes) - sideWidth - 4
	if sideCol < 2 {
		sideCol = 2
	}
	s := snap.State
	r.Fill(2, sideCol, fmt.Sprintf("%-*.*s", sideWidth, sideWidth, snap.Title))
	r.Fill(4, sideCol, fmt.Sprintf("      Score:  %8d", s.Score))
	r.Fill(5, sideCol, fmt.Sprintf("      Combo:  %8d", s.Combo))
	r.Fill(6, sideCol, fmt.Sprintf("  Max Combo:  %8d", s.MaxCombo))
	r.Fill(7, sideCol, fmt.Sprintf("   Progress:  %7.1f%%", snap.Progress*100))
	r.Fill(8, sideCol, fmt.Sprintf("      Total:  %8d", snap.Total))

	fraction := 0.0
	if snap.MaxLife > 0 {
		fraction = float64(s.Life) / float64(snap.MaxLife)
	}
	r.Fill(10, sideCol, "Life ")
	r.Fill(10, sideCol+5, r.Theme.RenderLife(snap.Band, sideWidth-5, fraction))

	for t := game.Perfect; t < game.TierCount; t++ {
		r.Fill(12+int(t), sideCol, fmt.Sprintf("%11v:  %8d", t, s.Counts[t]))
	}
}

func (r *DefaultRenderer) renderBanner(snap session.Snapshot) {
	var banner string
	switch snap.Phase {
	case session.CountingDown:
		secs := int(math.Ceil(snap.Countdown.Seconds()))
		if secs < 1 {
			secs = 1
		}
		banner = strconv.Itoa(secs)
	case session.Paused:
		banner = "PAUSED  esc resume  r restart  q quit"
	case session.Finished:
		if snap.State.Failed {
			banner = "FAILED"
		} else {
			banner = "CLEAR"
		}
	default:
		return
	}
	r.draw(r.Height>>1, (r.Width-len(banner))>>1, banner)
}

// draw fills a cell that is cleared again on the next frame
func (r *DefaultRenderer) draw(row, col int, message string) {
	r.drawn = append(r.drawn, cell{row: row, col: col, width: visibleWidth(message)})
	r.Fill(row, col, message)
}

// OnJudgement shows the tier above the hit row, and boxes a missed lane
func (r *DefaultRenderer) OnJudgement(j session.Judged) {
	r.defaults()
	lanes := r.lanes
	if lanes <= j.Note.Lane {
		lanes = j.Note.Lane + 1
	}
	if nil != r.judgement {
		r.removeDecoration(r.judgement)
	}
	label := r.Theme.RenderJudgement(j.Tier)
	r.judgement = r.addDecoration((r.Width-visibleWidth(label))>>1, r.hitRow()-2, label, judgeFrames)

	if j.Tier != game.Miss {
		return
	}
	col := r.column(j.Note.Lane, lanes)
	hit := r.hitRow()
	r.AddDecoration(col-1, hit-1, "\033[1;31m╭\033[0m", missFrames)
	r.AddDecoration(col+1, hit-1, "\033[1;31m╮\033[0m", missFrames)
	r.AddDecoration(col-1, hit+1, "\033[1;31m╰\033[0m", missFrames)
	r.AddDecoration(col+1, hit+1, "\033[1;31m╯\033[0m", missFrames)
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c theme.Color, message string) {
	r.Fill(row, column, c.Paint(message))
}

func (r *DefaultRenderer) flush() {
	io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
}

// visibleWidth counts runes outside of escape sequences
func visibleWidth(s string) int {
	n, escape := 0, false
	for _, c := range s {
		switch {
		case c == '\033':
			escape = true
		case escape:
			if c >= '@' && c <= '~' && c != '[' {
				escape = false
			}
		default:
			n++
		}
	}
	return n
}
