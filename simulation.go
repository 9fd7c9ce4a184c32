package solarsystem

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Simulation owns the bodies and the clock and is driven one tick at a time.
// It is not safe for concurrent use.
type Simulation struct {
	Bodies  []*Body
	Clock   *Clock
	Gravity Gravity

	conf       Config
	integrator *Integrator
	focus      *Body
	zoom       float64
	tick       uint64
	logger     log.Logger
}

// NewSimulation builds the bodies and the clock from the configuration.
func NewSimulation(conf Config, logger log.Logger) (*Simulation, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	bodies, err := conf.BuildBodies()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	g := Gravity{G: conf.G}
	return &Simulation{
		Bodies:     bodies,
		Clock:      NewClock(conf.Start, conf.StepSeconds),
		Gravity:    g,
		conf:       conf,
		integrator: NewIntegrator(Pairwise{Gravity: g}),
		zoom:       1,
		logger:     log.With(logger, "subsys", "sim"),
	}, nil
}

// Tick performs one integration step with the clock's current rate, then advances the clock.
func (s *Simulation) Tick() {
	s.integrator.Step(s.Bodies, s.Clock.Step())
	s.Clock.Advance()
	s.tick++
}

// Ticks returns the number of ticks performed.
func (s *Simulation) Ticks() uint64 {
	return s.tick
}

// Now returns the simulated date.
func (s *Simulation) Now() time.Time {
	return s.Clock.Now()
}

// LogStatus logs the date and the clock rate.
func (s *Simulation) LogStatus() {
	level.Info(s.logger).Log("tick", s.tick, "date", s.Clock.Now().Format(dateFormat), "jd", s.Clock.JulianDay(), "step(s)", s.Clock.Rate(), "paused", s.Clock.Paused())
}

// Body returns the body of that name (case insensitive).
func (s *Simulation) Body(name string) (*Body, error) {
	for _, b := range s.Bodies {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownBody)
}

// Primary returns the first primary body.
func (s *Simulation) Primary() (*Body, error) {
	for _, b := range s.Bodies {
		if b.Primary {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no primary body: %w", ErrInvalidConfiguration)
}

// Focus sets the focused body.
func (s *Simulation) Focus(name string) error {
	b, err := s.Body(name)
	if err != nil {
		return err
	}
	s.focus = b
	level.Debug(s.logger).Log("focus", b.Name)
	return nil
}

// Unfocus clears the focused body.
func (s *Simulation) Unfocus() {
	s.focus = nil
}

// Focused returns the focused body or nil.
func (s *Simulation) Focused() *Body {
	return s.focus
}

// Zoom scales every display radius by factor.
func (s *Simulation) Zoom(factor float64) error {
	for _, b := range s.Bodies {
		if err := b.ScaleRadius(factor); err != nil {
			return err
		}
	}
	s.zoom *= factor
	level.Debug(s.logger).Log("zoom", s.zoom)
	return nil
}

// ZoomFactor returns the accumulated zoom.
func (s *Simulation) ZoomFactor() float64 {
	return s.zoom
}

// ResetTrails clears every trail.
func (s *Simulation) ResetTrails() {
	ClearAllTrails(s.Bodies)
	level.Debug(s.logger).Log("trails", "cleared", "tick", s.tick)
}

// Readout returns speed, orbital radius and Keplerian period around the primary of the named body.
func (s *Simulation) Readout(name string) (Readout, error) {
	b, err := s.Body(name)
	if err != nil {
		return Readout{}, err
	}
	r := DistanceToReference(b)
	out := Readout{Name: b.Name, Speed: b.Speed(), OrbitalRadius: r / 1000}
	if b.Primary {
		return out, nil
	}
	primary, err := s.Primary()
	if err != nil {
		return Readout{}, err
	}
	if out.PeriodYears, err = s.Gravity.OrbitalPeriodYears(r, primary.Mass()); err != nil {
		return Readout{}, err
	}
	return out, nil
}

// Angle returns the angle in degrees between two named bodies as seen from the reference.
func (s *Simulation) Angle(nameA, nameB string) (float64, error) {
	a, err := s.Body(nameA)
	if err != nil {
		return 0, err
	}
	b, err := s.Body(nameB)
	if err != nil {
		return 0, err
	}
	return AngleAtReference(a, b)
}

// Apply executes an input command. ErrQuit is returned for CmdQuit.
func (s *Simulation) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdTogglePause:
		s.Clock.Toggle()
		level.Info(s.logger).Log("clock", s.Clock.state, "date", s.Clock.Now().Format(dateFormat))
	case CmdRateUp, CmdRateDown:
		factor := s.conf.RateUp
		if cmd.Kind == CmdRateDown {
			factor = s.conf.RateDown
		}
		if err := s.Clock.ScaleRate(factor); err != nil {
			return err
		}
		level.Info(s.logger).Log("rate(s/tick)", s.Clock.Rate(), "paused", s.Clock.Paused())
	case CmdZoomIn:
		return s.Zoom(s.conf.ZoomIn)
	case CmdZoomOut:
		return s.Zoom(s.conf.ZoomOut)
	case CmdResetTrails:
		s.ResetTrails()
	case CmdFocus:
		return s.Focus(cmd.Target)
	case CmdUnfocus:
		s.Unfocus()
	case CmdQuit:
		return ErrQuit
	default:
		return fmt.Errorf("%s: %w", cmd, ErrUnknownCommand)
	}
	return nil
}

// Snapshot copies the current state for consumers running outside the simulation loop.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{Tick: s.tick, DT: s.Clock.Now(), JD: s.Clock.JulianDay(), States: make([]BodyState, len(s.Bodies))}
	for i, b := range s.Bodies {
		snap.States[i] = BodyState{Name: b.Name, Position: b.Position, Velocity: b.Velocity}
	}
	return snap
}
