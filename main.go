package main

import (
	"context"
	"log"
	"os"

	"git.lost.host/meutraa/tapline/internal/config"
	"git.lost.host/meutraa/tapline/internal/input"
	"git.lost.host/meutraa/tapline/internal/menu"
	"git.lost.host/meutraa/tapline/internal/session"
	"github.com/pkg/errors"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	if err := config.LoadEnv(); nil != err {
		return err
	}
	settings, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	p := &Program{Settings: settings}
	if err := p.Init(); errors.Is(err, menu.ErrCancelled) {
		return nil
	} else if nil != err {
		return err
	}
	defer p.Deinit()

	if settings.Replay {
		result, best, err := p.ReplayBest()
		if nil != err {
			return err
		}
		printResult(p.chart, result, best, true)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changed <-chan struct{}
	if settings.Watch {
		if changed, err = p.Watch(ctx); nil != err {
			return err
		}
	}

	commands, closeKeyboard, err := input.Read(ctx, settings.LaneKeys(p.chart.Difficulty.Lanes))
	if nil != err {
		return err
	}
	defer func() {
		if err := closeKeyboard(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	if err := p.Renderer.Init(); nil != err {
		return err
	}
	deinit := func() {
		// Restore the terminal state
		if err := p.Renderer.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}

	for {
		playCtx, stop := context.WithCancel(ctx)
		reload := make(chan bool, 1)
		go func() {
			select {
			case <-changed:
				reload <- true
				stop()
			case <-playCtx.Done():
			}
		}()

		result, inputs, err := p.Play(playCtx, commands)
		stop()

		select {
		case <-reload:
			if err := p.Load(); nil != err {
				log.Println("unable to reload chart", err)
			}
			continue
		default:
		}

		deinit()
		switch {
		case errors.Is(err, session.ErrQuit):
			return nil
		case nil != err:
			return err
		}

		best, hasBest := p.Save(inputs, result)
		printResult(p.chart, result, best, hasBest)
		return nil
	}
}
