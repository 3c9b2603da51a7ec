package tetris

import "time"

// Loop drives an engine from frame timestamps. It turns the time between
// consecutive frames into Tick calls and only ticks while the game runs.
//
// Any frame seen while the engine is not running drops the timing
// baseline, so the first frame after a start or resume merely records the
// time. Time spent paused never reaches the drop timer.
type Loop struct {
	engine *Engine
	last   time.Time
	synced bool
}

// NewLoop creates a loop for the given engine.
func NewLoop(e *Engine) *Loop {
	return &Loop{engine: e}
}

// Frame advances the engine to now.
func (l *Loop) Frame(now time.Time) {
	if l.engine.State() != StateRunning {
		l.synced = false
		return
	}
	if !l.synced {
		l.last = now
		l.synced = true
		return
	}

	elapsed := now.Sub(l.last)
	l.last = now
	if elapsed < 0 {
		return
	}
	l.engine.Tick(elapsed)
}

// Resync forgets the baseline; the next frame only records its time.
func (l *Loop) Resync() {
	l.synced = false
}
