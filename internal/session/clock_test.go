package session

import (
	"testing"
)

func TestClock(t *testing.T) {
	c := NewClock(0)
	c.Start(ms(1000))
	if e := c.Elapsed(ms(1500)); e != ms(500) {
		t.Errorf("elapsed %v", e)
	}

	c.Pause(ms(2000))
	if e := c.Elapsed(ms(9000)); e != ms(1000) {
		t.Errorf("elapsed %v while paused", e)
	}
	c.Resume(ms(9000))
	if e := c.Elapsed(ms(9250)); e != ms(1250) {
		t.Errorf("elapsed %v after resume", e)
	}
}

func TestClockBackwards(t *testing.T) {
	c := NewClock(0)
	c.Start(0)
	c.Elapsed(ms(800))
	if e := c.Elapsed(ms(700)); e != ms(800) {
		t.Errorf("clock went backwards to %v", e)
	}
}

func TestClockOffset(t *testing.T) {
	c := NewClock(ms(-20))
	c.Start(0)
	if e := c.Elapsed(ms(100)); e != ms(80) {
		t.Errorf("elapsed %v", e)
	}
	c.Pause(ms(100))
	c.Resume(ms(300))
	if e := c.Elapsed(ms(300)); e != ms(80) {
		t.Errorf("elapsed %v after resume", e)
	}
}
