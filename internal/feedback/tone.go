package feedback

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const floorGain = 0.01

// Tone is a sine blip whose gain falls exponentially to floorGain
type Tone struct {
	Freq     float64
	Duration time.Duration
	Gain     float64
}

var (
	TapTone   = Tone{Freq: 1200, Duration: 50 * time.Millisecond, Gain: 0.15}
	ClickTone = Tone{Freq: 800, Duration: 100 * time.Millisecond, Gain: 0.1}
	MissTone  = Tone{Freq: 220, Duration: 120 * time.Millisecond, Gain: 0.12}
	ComboTone = Tone{Freq: 1600, Duration: 150 * time.Millisecond, Gain: 0.12}
)

type oscillator struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	duration int
}

func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	return &oscillator{tone: t, rate: rate, duration: rate.N(t.Duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := o.gain() * math.Sin(2*math.Pi*o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.tone.Freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func (o *oscillator) gain() float64 {
	g := o.tone.Gain
	if g <= floorGain || o.duration == 0 {
		return g
	}
	return g * math.Pow(floorGain/g, float64(o.position)/float64(o.duration))
}
