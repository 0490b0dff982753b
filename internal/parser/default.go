package parser

import (
	"io/ioutil"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
)

// DefaultParser reads StepMania .sm files
type DefaultParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

type smDifficulty struct {
	game.Difficulty
	Section string
}

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := 0.0
	for _, b := range rates {
		if currentBeat >= b.StartingBeat {
			sel = b.Value
		} else {
			break
		}
	}
	if sel <= 0 {
		return 0
	}
	secondsPerBeat := 60.0 / sel
	return bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *DefaultParser) mapToNote(ch byte) (game.Kind, bool) {
	switch ch {
	case '1':
		return game.Tap, true
	case '2', '4':
		return game.Long, true
	case 'L':
		return game.Flick, true
	}
	return game.Tap, false
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to read chart")
	}
	return p.Decode(data)
}

func (p *DefaultParser) Decode(data []byte) ([]*game.Chart, error) {
	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []smDifficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, errors.Wrap(ErrFormat, "truncated #NOTES header")
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.LaneMap[chartType]
		if !ok {
			continue
		}
		d := game.NewDifficulty(strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"), nKeys)
		d.Level = strings.TrimSuffix(strings.TrimSpace(lines[4]), ":")
		difficulties = append(difficulties, smDifficulty{Difficulty: d, Section: lines[6]})
	}

	title := ""
	artist := ""
	offset := 0.0
	bpms := []bpm{}
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			title = strings.TrimSuffix(strings.TrimPrefix(mdl, "TITLE:"), ";")
		case strings.HasPrefix(mdl, "ARTIST:"):
			artist = strings.TrimSuffix(strings.TrimPrefix(mdl, "ARTIST:"), ";")
		case strings.HasPrefix(mdl, "OFFSET:"):
			mdl = strings.TrimPrefix(mdl, "OFFSET:")
			mdl = strings.TrimSuffix(mdl, ";")
			offs, err := strconv.ParseFloat(strings.TrimSpace(mdl), 64)
			if nil != err {
				return nil, errors.Wrap(err, "invalid #OFFSET")
			}
			if math.IsInf(offs, 0) || math.IsNaN(offs) {
				return nil, errors.Wrapf(ErrFormat, "invalid #OFFSET %v", offs)
			}
			offset = -offs
		case strings.HasPrefix(mdl, "BPMS:"):
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			for _, pair := range strings.Split(strings.TrimSuffix(mdl, ";"), ",") {
				as := strings.Split(pair, "=")
				if len(as) != 2 {
					return nil, errors.Wrapf(ErrFormat, "invalid bpm %q", pair)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "invalid bpm beat")
				}
				value, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "invalid bpm value")
				}
				if !(value > 0) || math.IsInf(value, 0) || math.IsInf(sb, 0) || math.IsNaN(sb) {
					return nil, errors.Wrapf(ErrFormat, "invalid bpm %q", pair)
				}
				bpms = append(bpms, bpm{StartingBeat: sb, Value: value})
			}
		}
	}
	if len(bpms) == 0 {
		return nil, errors.Wrap(ErrFormat, "missing #BPMS")
	}

	charts := []*game.Chart{}
	for _, difficulty := range difficulties {
		// Start time of first note
		seconds := offset
		currentBeat := 0.0

		notes := []game.Note{}
		measures := []game.Measure{}

		for _, block := range strings.Split(difficulty.Section, "\n,") {
			measures = append(measures, game.Measure{Time: toDuration(seconds), Bar: true})

			lines := []string{}
			for _, l := range strings.Split(block, "\n") {
				if strings.HasPrefix(l, " ") || strings.Contains(l, "-") {
					continue
				}
				l = strings.TrimSuffix(strings.TrimSpace(l), ";")
				if len(l) == difficulty.Lanes {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per block
			lineCount := int64(len(lines))
			beatsPerNote := 4.0 / float64(lineCount) // 1/4, 1/8, 1/16, 1/24 etc

			for i, line := range lines {
				r := big.NewRat(int64(i*4), lineCount)
				denom := r.Denom().Int64()
				if denom == 1 && i != 0 {
					measures = append(measures, game.Measure{Time: toDuration(seconds)})
				}

				for lane, c := range []byte(line) {
					kind, ok := p.mapToNote(c)
					if !ok {
						continue
					}
					notes = append(notes, game.Note{
						Time:  toDuration(seconds),
						Lane:  lane,
						Kind:  kind,
						Denom: int(denom),
					})
				}

				seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
				currentBeat += beatsPerNote
			}
		}

		chart, err := game.NewChart(title, difficulty.Difficulty, notes, measures)
		if nil != err {
			return nil, errors.Wrapf(err, "difficulty %s", difficulty.Name)
		}
		chart.Artist = artist
		charts = append(charts, chart)
	}

	return charts, nil
}
