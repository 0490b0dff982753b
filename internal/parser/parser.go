package parser

import (
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
)

var ErrFormat = errors.New("unsupported chart format")

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// ForFile picks a parser by file extension
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".sm":
		return &DefaultParser{}, nil
	case ".yaml", ".yml", ".json":
		return &YAMLParser{}, nil
	}
	return nil, errors.Wrap(ErrFormat, file)
}

// Find walks a song directory for a chart file and an optional audio file
func Find(dir string) (chartFile, audioFile string, err error) {
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".mp3", ".wav":
			audioFile = p
		case ".sm", ".yaml", ".yml", ".json":
			if chartFile == "" {
				chartFile = p
			}
		}
		return nil
	}); nil != err {
		return "", "", errors.Wrap(err, "unable to walk song directory")
	}

	if chartFile == "" {
		return "", "", errors.Errorf("unable to find a chart file in %s", dir)
	}
	return chartFile, audioFile, nil
}

// Select picks a chart by index or case-insensitive difficulty name
func Select(charts []*game.Chart, key string) (*game.Chart, error) {
	if len(charts) == 0 {
		return nil, errors.New("no playable charts")
	}
	for i, c := range charts {
		if strings.EqualFold(c.Difficulty.Name, key) || key == strconv.Itoa(i) {
			return c, nil
		}
	}
	return nil, errors.Errorf("no chart matches difficulty %q", key)
}
