package loop

import "time"

// Launcher is the fixed-period rocket timer, driven by frame deltas.
type Launcher struct {
	interval time.Duration
	elapsed  time.Duration
	stopped  bool
}

// NewLauncher creates a launcher that fires once per interval.
// A non-positive interval never fires.
func NewLauncher(interval time.Duration) *Launcher {
	return &Launcher{interval: interval}
}

// Advance adds delta to the timer and returns how many launches are due.
func (l *Launcher) Advance(delta time.Duration) int {
	if l.stopped || l.interval <= 0 || delta <= 0 {
		return 0
	}
	l.elapsed += delta
	due := int(l.elapsed / l.interval)
	l.elapsed -= time.Duration(due) * l.interval
	return due
}

// Stop cancels the timer. Later calls to Advance return 0.
func (l *Launcher) Stop() {
	l.stopped = true
}

// Stopped reports whether Stop has been called.
func (l *Launcher) Stopped() bool {
	return l.stopped
}
