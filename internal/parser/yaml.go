package parser

import (
	"io/ioutil"
	"math"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAMLParser reads song files holding one chart per difficulty. JSON is
// accepted as well, being a subset of YAML.
type YAMLParser struct{}

type SongSpec struct {
	Title  string      `yaml:"title"`
	Artist string      `yaml:"artist"`
	BPM    float64     `yaml:"bpm"`
	Lanes  int         `yaml:"lanes"`
	Charts []ChartSpec `yaml:"charts"`
}

type ChartSpec struct {
	Difficulty string     `yaml:"difficulty"`
	Level      string     `yaml:"level"`
	Lanes      int        `yaml:"lanes"`
	Approach   int64      `yaml:"approach"` // ms, defaults by difficulty
	Notes      []NoteSpec `yaml:"notes"`
}

type NoteSpec struct {
	Time int64  `yaml:"time"` // ms
	Lane int    `yaml:"lane"`
	Kind string `yaml:"kind"`
	Type string `yaml:"type"` // older name for kind
}

func (p *YAMLParser) Parse(file string) ([]*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to read chart")
	}
	return p.Decode(data)
}

func (p *YAMLParser) Decode(data []byte) ([]*game.Chart, error) {
	var song SongSpec
	if err := yaml.Unmarshal(data, &song); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal song")
	}
	if math.IsInf(song.BPM, 0) || math.IsNaN(song.BPM) {
		return nil, errors.Wrapf(ErrFormat, "bpm %v", song.BPM)
	}

	charts := make([]*game.Chart, 0, len(song.Charts))
	for i, spec := range song.Charts {
		lanes := spec.Lanes
		if lanes == 0 {
			lanes = song.Lanes
		}
		if lanes == 0 {
			lanes = game.DefaultLanes
		}
		name := spec.Difficulty
		if name == "" {
			name = "normal"
		}
		d := game.NewDifficulty(name, lanes)
		d.Level = spec.Level
		if spec.Approach > 0 {
			d.Approach = time.Duration(spec.Approach) * time.Millisecond
		}

		notes := make([]game.Note, len(spec.Notes))
		for j, n := range spec.Notes {
			k := n.Kind
			if k == "" {
				k = n.Type
			}
			kind, err := game.ParseKind(k)
			if nil != err {
				return nil, errors.Wrapf(err, "chart %d note %d", i, j)
			}
			notes[j] = game.Note{
				Time: time.Duration(n.Time) * time.Millisecond,
				Lane: n.Lane,
				Kind: kind,
			}
		}

		chart, err := game.NewChart(song.Title, d, notes, beats(song.BPM, notes))
		if nil != err {
			return nil, errors.Wrapf(err, "chart %d (%s)", i, name)
		}
		chart.Artist = song.Artist
		charts = append(charts, chart)
	}
	return charts, nil
}

// beats lays a bar line every four beats from the first note to the last
func beats(bpm float64, notes []game.Note) []game.Measure {
	if bpm <= 0 || len(notes) == 0 {
		return nil
	}
	beat := time.Duration(float64(time.Minute) / bpm)
	if beat <= 0 {
		return nil
	}
	measures := []game.Measure{}
	for i, t := 0, notes[0].Time; t <= notes[len(notes)-1].Time; i, t = i+1, t+beat {
		measures = append(measures, game.Measure{Time: t, Bar: i%4 == 0})
	}
	return measures
}
