package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/tapline/internal/config"
	"git.lost.host/meutraa/tapline/internal/feedback"
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/history"
	"git.lost.host/meutraa/tapline/internal/menu"
	"git.lost.host/meutraa/tapline/internal/parser"
	"git.lost.host/meutraa/tapline/internal/render"
	"git.lost.host/meutraa/tapline/internal/session"
	"github.com/pkg/errors"
)

// Program owns everything outside the session: files, audio, the score
// store and the terminal.
type Program struct {
	Settings *config.Settings
	Renderer render.Renderer
	Player   *feedback.Player
	Store    *history.Store

	chartFile, audioFile string
	chart                *game.Chart
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Renderer = &render.DefaultRenderer{}

	info, err := os.Stat(p.Settings.Path)
	if nil != err {
		return err
	}
	if info.IsDir() {
		p.chartFile, p.audioFile, err = parser.Find(p.Settings.Path)
		if nil != err {
			return err
		}
	} else {
		p.chartFile = p.Settings.Path
		if _, audio, err := parser.Find(filepath.Dir(p.Settings.Path)); nil == err {
			p.audioFile = audio
		}
	}

	if err := p.Load(); nil != err {
		return err
	}

	if store, err := history.Open(p.Settings.Database); nil != err {
		log.Println("score history disabled:", err)
	} else {
		p.Store = store
	}

	if !p.Settings.Mute {
		player, err := feedback.NewPlayer(feedback.DefaultSampleRate)
		if nil != err {
			log.Println("audio disabled:", err)
			return nil
		}
		p.Player = player
		if p.audioFile != "" {
			log.Printf("Opening %v (%v)\n", p.audioFile, p.chartFile)
			if err := p.Player.LoadMusic(p.audioFile); nil != err {
				log.Println("unable to load music:", err)
			}
		}
	}
	return nil
}

// Load parses the chart file and selects the configured difficulty. With
// no difficulty set the player picks one, and the choice sticks for reloads.
func (p *Program) Load() error {
	psr, err := parser.ForFile(p.chartFile)
	if nil != err {
		return err
	}
	charts, err := psr.Parse(p.chartFile)
	if nil != err {
		return err
	}

	var chart *game.Chart
	if p.Settings.Difficulty != "" {
		if chart, err = parser.Select(charts, p.Settings.Difficulty); nil != err {
			return err
		}
	} else {
		title := filepath.Base(p.chartFile)
		if len(charts) > 0 {
			title = charts[0].Title
		}
		if chart, err = menu.Pick(title, charts); nil != err {
			return err
		}
		p.Settings.Difficulty = chart.Difficulty.Name
	}
	p.chart = chart
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Player {
		if err := p.Player.Close(); nil != err {
			log.Println("unable to close music:", err)
		}
	}
	if nil != p.Store {
		if err := p.Store.Close(); nil != err {
			log.Println("unable to close score history:", err)
		}
	}
}

func (p *Program) listener() session.Listener {
	ls := session.Listeners{p.Renderer}
	if nil != p.Player {
		ls = append(ls, p.Player)
	}
	return ls
}

// Play runs the chart once, returning ErrQuit when the player quits
func (p *Program) Play(ctx context.Context, commands <-chan session.Command) (game.Result, []game.Input, error) {
	s, err := session.New(p.chart, p.Settings.Rules(), session.Config{
		Countdown: p.Settings.Delay,
		Offset:    p.Settings.Offset,
		Listener:  p.listener(),
	})
	if nil != err {
		return game.Result{}, nil, err
	}

	d := &session.Driver{
		Session:  s,
		Frame:    p.Settings.FramePeriod,
		Commands: commands,
		Render:   p.Renderer.Render,
	}
	result, err := d.Run(ctx)
	return result, s.Inputs(), err
}

// Save records a finished run and returns the best earlier run
func (p *Program) Save(inputs []game.Input, r game.Result) (best history.History, ok bool) {
	if nil == p.Store {
		return best, false
	}
	best, ok, err := p.Store.Best(p.chart)
	if nil != err {
		log.Println("unable to load score history:", err)
	}
	if err := p.Store.Save(p.chart, inputs, r, time.Now()); nil != err {
		log.Println("unable to save score:", err)
	}
	return best, ok
}

// Watch signals on the returned channel every time the chart file changes
func (p *Program) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := parser.NewWatcher(p.chartFile)
	if nil != err {
		return nil, errors.Wrap(err, "unable to watch chart")
	}
	changed := make(chan struct{}, 1)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Println("chart watcher:", err)
			}
		}
	}()
	return changed, nil
}

// ReplayBest rescores the best stored run under the current rules
func (p *Program) ReplayBest() (game.Result, history.History, error) {
	if nil == p.Store {
		return game.Result{}, history.History{}, errors.New("no score history")
	}
	best, ok, err := p.Store.Best(p.chart)
	if nil != err {
		return game.Result{}, best, err
	}
	if !ok {
		return game.Result{}, best, errors.Errorf("no recorded runs for %v", p.chart.Title)
	}
	r, err := history.Score(p.chart, p.Settings.Rules(), best)
	return r, best, err
}

func printResult(chart *game.Chart, r game.Result, best history.History, hasBest bool) {
	var prev *history.History
	if hasBest {
		prev = &best
	}
	fmt.Println(menu.Card(chart, r, prev))
}
