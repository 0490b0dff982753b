package history

import (
	"database/sql"
	"encoding/json"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Store keeps every finished run in sqlite, keyed by chart hash
type Store struct {
	db *sql.DB
}

type History struct {
	ID       int64
	Sum      string
	Inputs   []game.Input
	Score    int
	Rank     game.Rank
	Failed   bool
	PlayedAt time.Time
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open score database")
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text not null,
		  difficulty text,
		  score integer not null,
		  rank text not null,
		  failed integer not null,
		  played_at integer not null,
		  inputs blob
	  );
	create index if not exists scores_sum on scores(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create score table")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if nil == s.db {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Save(c *game.Chart, inputs []game.Input, r game.Result, playedAt time.Time) error {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return errors.Wrap(err, "unable to marshal inputs")
	}
	_, err = s.db.Exec(
		"insert into scores(sum, difficulty, score, rank, failed, played_at, inputs) values(?, ?, ?, ?, ?, ?, ?)",
		c.Hash(), c.Difficulty.Name, r.Score, r.Rank.String(), r.Failed, playedAt.Unix(), data,
	)
	if nil != err {
		return errors.Wrap(err, "unable to save score")
	}
	return nil
}

// Load returns every run of the chart, best score first
func (s *Store) Load(c *game.Chart) ([]History, error) {
	rows, err := s.db.Query(
		"select id, sum, score, rank, failed, played_at, inputs from scores where sum = ? order by score desc, id asc",
		c.Hash(),
	)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var h History
		var rank string
		var playedAt int64
		var data []byte
		if err := rows.Scan(&h.ID, &h.Sum, &h.Score, &rank, &h.Failed, &playedAt, &data); nil != err {
			return nil, errors.Wrap(err, "unable to scan score")
		}
		var ns []InputsCompact
		if err := json.Unmarshal(data, &ns); nil != err {
			return nil, errors.Wrapf(err, "unable to unmarshal inputs of score %d", h.ID)
		}
		h.Rank, _ = game.ParseRank(rank)
		h.PlayedAt = time.Unix(playedAt, 0)
		h.Inputs = uncompactInputs(ns)
		histories = append(histories, h)
	}
	return histories, errors.Wrap(rows.Err(), "unable to read scores")
}

// Best is the highest scoring run of the chart, ok is false if it was never played
func (s *Store) Best(c *game.Chart) (h History, ok bool, err error) {
	histories, err := s.Load(c)
	if nil != err || len(histories) == 0 {
		return h, false, err
	}
	return histories[0], true, nil
}
