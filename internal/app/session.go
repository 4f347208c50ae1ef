package app

import (
	"strconv"

	"pathviz/internal/core"
	"pathviz/internal/search"

	"github.com/sirupsen/logrus"
)

// maxStepsPerFrame caps catch-up expansions after a slow frame.
const maxStepsPerFrame = 32

// State names the phase a Session is in.
type State uint8

const (
	Editing State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Session owns the grid and the active run. It holds everything the window
// does except input polling and drawing.
type Session struct {
	cfg    *Config
	grid   *core.Grid
	editor *Editor
	pacer  *core.FixedStep
	log    logrus.FieldLogger

	runner   *Runner
	paused   bool
	stepOnce bool

	last    *search.Result
	lastErr error
	message string
}

// NewSession wraps g. A nil logger discards output.
func NewSession(g *core.Grid, cfg *Config, log logrus.FieldLogger) *Session {
	if cfg == nil {
		cfg = NewConfig()
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Session{
		cfg:    cfg,
		grid:   g,
		editor: NewEditor(g),
		pacer:  core.NewFixedStep(cfg.StepsPerSecond),
		log:    log,
	}
}

// Grid returns the grid being edited and searched.
func (s *Session) Grid() *core.Grid { return s.grid }

// State reports the current phase.
func (s *Session) State() State {
	switch {
	case s.runner == nil:
		return Editing
	case s.paused:
		return Paused
	default:
		return Running
	}
}

// Primary applies a left-click edit. Edits are ignored during a run.
func (s *Session) Primary(ref core.CellRef) bool {
	if s.runner != nil {
		return false
	}
	return s.editor.Primary(ref)
}

// Secondary applies a right-click edit. Edits are ignored during a run.
func (s *Session) Secondary(ref core.CellRef) bool {
	if s.runner != nil {
		return false
	}
	return s.editor.Secondary(ref)
}

// StartOrResume begins a run when editing and resumes it when paused.
func (s *Session) StartOrResume() error {
	if s.runner != nil {
		if s.paused {
			s.paused = false
			s.pacer.Reset()
		}
		return nil
	}
	r, err := NewRunner(s.grid)
	if err != nil {
		s.message = err.Error()
		return err
	}
	s.runner = r
	s.paused = false
	s.last, s.lastErr, s.message = nil, nil, ""
	s.pacer.Reset()
	s.log.WithFields(logrus.Fields{
		"run":   r.ID.String(),
		"start": r.Start.String(),
		"end":   r.End.String(),
	}).Info("search started")
	return nil
}

// Pause holds the active run. The engine keeps receiving Pause until the run
// is resumed, stepped or aborted.
func (s *Session) Pause() {
	if s.runner != nil {
		s.paused = true
	}
}

// Step queues a single expansion while paused.
func (s *Session) Step() {
	if s.runner != nil && s.paused {
		s.stepOnce = true
	}
}

// Finish runs the active search to completion immediately.
func (s *Session) Finish() {
	if s.runner == nil {
		return
	}
	s.runner.Finish()
	s.finish()
}

// Abort cancels the active run and keeps the grid as painted.
func (s *Session) Abort() {
	if s.runner == nil {
		return
	}
	s.runner.Stop()
	s.finish()
}

// Reset aborts any run and empties the grid.
func (s *Session) Reset() {
	s.Abort()
	s.grid.Clear()
	s.last, s.lastErr, s.message = nil, nil, ""
	s.log.Debug("grid reset")
}

// ClearStatus wipes search marks left by a finished run.
func (s *Session) ClearStatus() {
	if s.runner != nil {
		return
	}
	s.grid.ResetSearch()
	s.last, s.lastErr, s.message = nil, nil, ""
}

// Tick advances the active run by one frame's worth of signals.
func (s *Session) Tick() {
	if s.runner == nil {
		return
	}
	if s.paused {
		sig := search.Pause
		if s.stepOnce {
			sig = search.Continue
			s.stepOnce = false
		}
		if s.runner.Advance(sig) {
			s.finish()
		}
		return
	}
	n := s.pacer.Due(maxStepsPerFrame)
	for i := 0; i < n; i++ {
		if s.runner.Advance(search.Continue) {
			s.finish()
			return
		}
	}
}

func (s *Session) finish() {
	res, err := s.runner.Result()
	fields := logrus.Fields{
		"run":      s.runner.ID.String(),
		"outcome":  res.Outcome.String(),
		"expanded": res.Expanded,
		"cost":     res.Cost(),
	}
	switch {
	case err != nil:
		s.log.WithFields(fields).WithError(err).Error("search rejected")
		s.message = err.Error()
	case res.Reason != nil:
		s.log.WithFields(fields).Info(res.Reason.Error())
		s.message = res.Reason.Error()
	default:
		s.log.WithFields(fields).Info("search finished")
	}
	s.last, s.lastErr = &res, err
	s.runner = nil
	s.paused, s.stepOnce = false, false
}

// Last returns the result of the most recent finished run.
func (s *Session) Last() (search.Result, bool) {
	if s.last == nil {
		return search.Result{}, false
	}
	return *s.last, true
}

// LastErr returns the precondition error of the most recent run, if any.
func (s *Session) LastErr() error { return s.lastErr }

// Snapshot implements core.SnapshotProvider.
func (s *Session) Snapshot() core.Snapshot {
	start, okStart := s.grid.Start()
	end, okEnd := s.grid.End()

	run := []core.Readout{core.TextReadout("state", "State", s.State().String())}
	switch {
	case s.runner != nil:
		run = append(run,
			core.TextReadout("run", "Run", s.runner.ID.String()[:8]),
			core.IntReadout("expanded", "Expanded", s.runner.Expanded()),
		)
	case s.last != nil:
		run = append(run,
			core.TextReadout("outcome", "Outcome", s.last.Outcome.String()),
			core.IntReadout("expanded", "Expanded", s.last.Expanded),
		)
		if s.last.Outcome == search.Succeeded {
			run = append(run, core.IntReadout("cost", "Cost", s.last.Cost()))
		}
	}
	if s.message != "" {
		run = append(run, core.TextReadout("message", "Note", s.message))
	}

	return core.Snapshot{
		Title: "A* pathfinder",
		Groups: []core.ReadoutGroup{
			{Name: "Run", Readouts: run},
			{Name: "Grid", Readouts: []core.Readout{
				core.TextReadout("size", "Size", strconv.Itoa(s.grid.Rows())+"x"+strconv.Itoa(s.grid.Cols())),
				core.RefReadout("start", "Start", start, okStart),
				core.RefReadout("end", "End", end, okEnd),
			}},
			{Name: "Speed", Readouts: []core.Readout{
				core.IntReadout("sps", "Steps/sec", s.cfg.StepsPerSecond),
			}},
			{Name: "Keys", Readouts: keyHelp},
		},
	}
}

var keyHelp = []core.Readout{
	core.TextReadout("", "S", "start/resume"),
	core.TextReadout("", "Space", "pause"),
	core.TextReadout("", "N", "step"),
	core.TextReadout("", "Enter", "finish"),
	core.TextReadout("", "Q", "abort"),
	core.TextReadout("", "R", "reset"),
	core.TextReadout("", "C", "clear marks"),
	core.TextReadout("", "G/H", "lines/hover"),
	core.TextReadout("", "Esc", "quit"),
}

// Controls implements core.ControlsProvider.
func (s *Session) Controls() []core.Control {
	return []core.Control{{Key: "sps", Label: "Steps/sec", Step: 10, Min: 1, Max: 1000}}
}

// SetInt implements core.IntSetter.
func (s *Session) SetInt(key string, value int) bool {
	switch key {
	case "sps":
		if value <= 0 || value == s.cfg.StepsPerSecond {
			return false
		}
		s.cfg.StepsPerSecond = value
		s.pacer.SetRate(value)
		return true
	default:
		return false
	}
}
