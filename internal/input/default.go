package input

import (
	"context"
	"log"

	"git.lost.host/meutraa/tapline/internal/config"
	"git.lost.host/meutraa/tapline/internal/session"
	"github.com/eiannone/keyboard"
)

// Translate maps a key press to a session command. Escape toggles pause,
// q or ctrl-c quits and r restarts.
func Translate(ev keyboard.KeyEvent, keys []rune) (session.Command, bool) {
	switch ev.Key {
	case keyboard.KeyEsc:
		return session.Command{Kind: session.TogglePause}, true
	case keyboard.KeyCtrlC:
		return session.Command{Kind: session.Quit}, true
	case keyboard.KeySpace:
		ev.Rune = ' '
	}

	if lane := config.KeyLane(ev.Rune, keys); lane >= 0 {
		return session.Command{Kind: session.Tap, Lane: lane}, true
	}

	switch ev.Rune {
	case 'q':
		return session.Command{Kind: session.Quit}, true
	case 'r':
		return session.Command{Kind: session.Restart}, true
	}
	return session.Command{}, false
}

// Read opens the keyboard and streams commands until ctx is done. The
// returned close function restores the terminal.
func Read(ctx context.Context, keys []rune) (<-chan session.Command, func() error, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, nil, err
	}

	commands := make(chan session.Command, 128)
	go func() {
		defer close(commands)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if nil != ev.Err {
					log.Println("unable to read keyboard input", ev.Err)
					return
				}
				cmd, ok := Translate(ev, keys)
				if !ok {
					continue
				}
				select {
				case commands <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return commands, keyboard.Close, nil
}
