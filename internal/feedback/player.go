package feedback

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/session"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

const DefaultSampleRate = beep.SampleRate(44100)

// Player turns session events into sound. Song audio, when loaded, starts
// with the chart clock and pauses with the session.
type Player struct {
	session.NopListener

	rate beep.SampleRate
	play func(...beep.Streamer)
	lock sync.Locker

	song  beep.StreamSeekCloser
	music *beep.Ctrl
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// NewPlayer initialises the speaker at rate with a buffer of one frame
func NewPlayer(rate beep.SampleRate) (*Player, error) {
	if err := speaker.Init(rate, rate.N(time.Second/60)); nil != err {
		return nil, errors.Wrap(err, "unable to initialise speaker")
	}
	return &Player{rate: rate, play: speaker.Play, lock: speakerLock{}}, nil
}

// LoadMusic decodes an .mp3 or .wav file and queues it paused
func (p *Player) LoadMusic(file string) error {
	f, err := os.Open(file)
	if nil != err {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return errors.Errorf("unsupported audio file %v", file)
	}
	if nil != err {
		f.Close()
		return errors.Wrapf(err, "unable to decode %v", file)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != p.rate {
		s = beep.Resample(4, format.SampleRate, p.rate, streamer)
	}

	if nil != p.song {
		p.Close()
	}
	p.song = streamer
	p.music = &beep.Ctrl{Streamer: s, Paused: true}
	p.play(p.music)
	return nil
}

func (p *Player) Close() error {
	if nil == p.song {
		return nil
	}
	p.lock.Lock()
	p.music.Streamer = nil
	p.lock.Unlock()

	err := p.song.Close()
	p.song, p.music = nil, nil
	return err
}

func (p *Player) tone(t Tone) {
	p.play(t.Streamer(p.rate))
}

// setMusic rewinds the song when rewind is set, then pauses or plays it
func (p *Player) setMusic(paused, rewind bool) {
	if nil == p.music {
		return
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	if rewind {
		if err := p.song.Seek(0); nil != err {
			p.music.Paused = true
			return
		}
	}
	p.music.Paused = paused
}

func (p *Player) OnStart() {
	p.setMusic(false, true)
}

func (p *Player) OnTap(int) {
	p.tone(TapTone)
}

func (p *Player) OnJudgement(j session.Judged) {
	if j.Tier == game.Miss {
		p.tone(MissTone)
	}
}

func (p *Player) OnCombo(int) {
	p.tone(ComboTone)
}

func (p *Player) OnPause(paused bool) {
	p.tone(ClickTone)
	p.setMusic(paused, false)
}

func (p *Player) OnEnd(game.Result) {
	p.setMusic(true, false)
}
