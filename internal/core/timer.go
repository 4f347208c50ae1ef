package core

import "time"

// FixedStep paces search expansions at a steady steps-per-second rate so the
// visualizer can animate a run independent of the frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting sps steps per second.
func NewFixedStep(sps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(sps)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetRate(sps int) {
	if sps <= 0 {
		sps = 60
	}
	f.step = time.Second / time.Duration(sps)
}

// Rate returns the interval between steps.
func (f *FixedStep) Rate() time.Duration { return f.step }

// Reset drops any accumulated time and lets the next call step immediately.
func (f *FixedStep) Reset() {
	f.last = time.Time{}
	f.accumulator = f.step
}

// Due reports how many steps have accrued since the previous call and
// consumes them. Long stalls are capped at max steps so a run catches up
// without freezing the frame.
func (f *FixedStep) Due(max int) int {
	if max <= 0 {
		max = 1
	}
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step && n < max {
		f.accumulator -= f.step
		n++
	}
	if n == max {
		f.accumulator = 0
	}
	return n
}

// ShouldStep reports whether at least one step is due.
func (f *FixedStep) ShouldStep() bool { return f.Due(1) > 0 }
