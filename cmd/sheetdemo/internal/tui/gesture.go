package tui

import "time"

// velocityWindow is how far back release velocity looks.
const velocityWindow = 100 * time.Millisecond

type sample struct {
	pos float64
	at  time.Time
}

// gesture tracks a mouse drag on the sheet handle.
type gesture struct {
	active  bool
	lastY   int
	samples []sample
}

func (g *gesture) start(y int, at time.Time) {
	g.active = true
	g.lastY = y
	g.samples = g.samples[:0]
	g.add(y, at)
}

// move records y and returns the delta since the previous position.
func (g *gesture) move(y int, at time.Time) int {
	delta := y - g.lastY
	g.lastY = y
	g.add(y, at)
	return delta
}

func (g *gesture) add(y int, at time.Time) {
	g.samples = append(g.samples, sample{pos: float64(y), at: at})
	cutoff := at.Add(-velocityWindow)
	i := 0
	for i < len(g.samples)-1 && g.samples[i].at.Before(cutoff) {
		i++
	}
	g.samples = g.samples[i:]
}

// velocity returns rows per second over the recent samples.
func (g *gesture) velocity() float64 {
	if len(g.samples) < 2 {
		return 0
	}
	first, last := g.samples[0], g.samples[len(g.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.pos - first.pos) / dt
}

// finish ends the gesture and returns its release velocity.
func (g *gesture) finish() float64 {
	v := g.velocity()
	g.active = false
	g.samples = g.samples[:0]
	return v
}
