package config

import (
	"os"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Settings struct {
	Path        string // Chart file or song directory
	Difficulty  string
	Delay       time.Duration
	Offset      time.Duration
	FramePeriod time.Duration
	Keys        string
	Database    string
	Watch       bool
	Mute        bool
	Replay      bool

	Perfect, Great, Good, Bad time.Duration
	MissThreshold             time.Duration
}

func newApp(s *Settings) *kingpin.Application {
	app := kingpin.New("tapline", "Lane rhythm game for the terminal")
	app.Version(Version)

	app.Arg("chart", "Chart file (.sm, .yaml, .json) or song directory").Required().ExistingFileOrDirVar(&s.Path)
	app.Flag("difficulty", "Difficulty index or name, chosen from a menu when empty").Short('d').StringVar(&s.Difficulty)
	app.Flag("delay", "Countdown before the chart starts").Default("3s").Short('D').DurationVar(&s.Delay)
	app.Flag("offset", "Global offset").Default("0ms").Short('o').Envar("TAPLINE_OFFSET").DurationVar(&s.Offset)
	app.Flag("frame-period", "Frame period").Default("4ms").Short('p').DurationVar(&s.FramePeriod)
	app.Flag("keys", "Keys for each lane, left to right").Short('k').Envar("TAPLINE_KEYS").StringVar(&s.Keys)
	app.Flag("db", "Score database").Default("./scores.db").Envar("TAPLINE_DB").StringVar(&s.Database)
	app.Flag("watch", "Reload the chart when its file changes").Short('w').BoolVar(&s.Watch)
	app.Flag("mute", "Disable audio").Short('m').Envar("TAPLINE_MUTE").BoolVar(&s.Mute)
	app.Flag("replay", "Rescore the best recorded run and exit").BoolVar(&s.Replay)

	rules := game.DefaultRules()
	app.Flag("perfect", "Perfect window").Default(rules.Judgements[game.Perfect].Window.String()).DurationVar(&s.Perfect)
	app.Flag("great", "Great window").Default(rules.Judgements[game.Great].Window.String()).DurationVar(&s.Great)
	app.Flag("good", "Good window").Default(rules.Judgements[game.Good].Window.String()).DurationVar(&s.Good)
	app.Flag("bad", "Bad window").Default(rules.Judgements[game.Bad].Window.String()).DurationVar(&s.Bad)
	app.Flag("miss-threshold", "Time past a note before it is missed").Default(rules.MissThreshold.String()).DurationVar(&s.MissThreshold)
	return app
}

// LoadEnv reads KEY=value files into the environment, defaulting to .env
// in the working directory. Missing files are skipped and variables that
// are already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); nil != err {
			return errors.Wrapf(err, "unable to load %v", file)
		}
	}
	return nil
}

// Parse reads the command line, args excludes the program name. Offset,
// keys, database and mute fall back to TAPLINE_* environment variables.
func Parse(args []string) (*Settings, error) {
	s := &Settings{}
	if _, err := newApp(s).Parse(args); nil != err {
		return nil, errors.Wrap(err, "unable to parse arguments")
	}
	if err := s.Rules().Validate(); nil != err {
		return nil, errors.Wrap(err, "invalid judgement windows")
	}
	return s, nil
}

// Rules are the default rules with the window overrides applied
func (s *Settings) Rules() game.Rules {
	rules := game.DefaultRules()
	rules.Judgements[game.Perfect].Window = s.Perfect
	rules.Judgements[game.Great].Window = s.Great
	rules.Judgements[game.Good].Window = s.Good
	rules.Judgements[game.Bad].Window = s.Bad
	rules.MissThreshold = s.MissThreshold
	return rules
}
