package game

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Kind uint8

const (
	Tap Kind = iota
	Long
	Flick
)

var kindNames = [...]string{"tap", "long", "flick"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind accepts the lowercase kind names, an empty string is a tap
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Tap, nil
	}
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Tap, errors.Errorf("unknown note kind %q", s)
}

type Note struct {
	Time  time.Duration // The time the note should be hit, from session start
	Lane  int           // The chart column
	Kind  Kind
	Denom int // The beat length, as a denominator, 4 = 1/4 beat, 0 if unknown
}

// Input is a single recorded tap, used for history and replays
type Input struct {
	Lane int
	Time time.Duration
}
