package game

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnsorted   = errors.New("chart notes are not sorted by time")
	ErrLane       = errors.New("chart note lane out of range")
	ErrEmptyLanes = errors.New("chart has no lanes")
)

// Chart is the immutable note sequence for one song and difficulty.
// Runtime note state lives in the tracker, never in here.
type Chart struct {
	Title      string
	Artist     string
	Difficulty Difficulty

	notes      []Note
	measures   []Measure
	longCount  int
	flickCount int
}

// NewChart copies notes, so callers may reuse the slice afterwards
func NewChart(title string, difficulty Difficulty, notes []Note, measures []Measure) (*Chart, error) {
	c := &Chart{
		Title:      title,
		Difficulty: difficulty,
		notes:      append([]Note(nil), notes...),
		measures:   append([]Measure(nil), measures...),
	}
	if err := c.Validate(); nil != err {
		return nil, err
	}
	for _, n := range c.notes {
		switch n.Kind {
		case Long:
			c.longCount++
		case Flick:
			c.flickCount++
		}
	}
	return c, nil
}

func (c *Chart) Validate() error {
	if c.Difficulty.Lanes <= 0 {
		return ErrEmptyLanes
	}
	for i, n := range c.notes {
		if n.Lane < 0 || n.Lane >= c.Difficulty.Lanes {
			return errors.Wrapf(ErrLane, "note %d lane %d of %d", i, n.Lane, c.Difficulty.Lanes)
		}
		if i > 0 && n.Time < c.notes[i-1].Time {
			return errors.Wrapf(ErrUnsorted, "note %d at %v after %v", i, n.Time, c.notes[i-1].Time)
		}
	}
	return nil
}

func (c *Chart) Len() int {
	return len(c.notes)
}

func (c *Chart) Note(i int) Note {
	return c.notes[i]
}

// Notes returns a copy of the note sequence
func (c *Chart) Notes() []Note {
	return append([]Note(nil), c.notes...)
}

func (c *Chart) Measures() []Measure {
	return append([]Measure(nil), c.measures...)
}

func (c *Chart) LongCount() int {
	return c.longCount
}

func (c *Chart) FlickCount() int {
	return c.flickCount
}

// LastTime is the hit time of the final note, zero for an empty chart
func (c *Chart) LastTime() time.Duration {
	if len(c.notes) == 0 {
		return 0
	}
	return c.notes[len(c.notes)-1].Time
}

// Hash identifies the chart content for score history
func (c *Chart) Hash() string {
	h := sha256.New()
	h.Write([]byte(c.Title))
	h.Write([]byte{0})
	h.Write([]byte(c.Difficulty.Name))
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(c.Difficulty.Lanes))
	h.Write(buf)
	for _, n := range c.notes {
		binary.LittleEndian.PutUint64(buf, uint64(n.Time))
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, uint64(n.Lane)<<8|uint64(n.Kind))
		h.Write(buf)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
