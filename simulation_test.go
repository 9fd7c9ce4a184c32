package solarsystem

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"gonum.org/v1/gonum/floats/scalar"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	sim, err := NewSimulation(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func TestSimulationTick(t *testing.T) {
	sim := newTestSimulation(t)
	start := sim.Now()
	earth, _ := sim.Body("earth")
	r0 := earth.Position
	sim.Tick()
	if sim.Ticks() != 1 {
		t.Fatalf("ticks=%d", sim.Ticks())
	}
	if sim.Now().Sub(start).Hours() != 24 {
		t.Fatalf("clock advanced by %s", sim.Now().Sub(start))
	}
	if earth.Position == r0 || earth.TrailLen() != 1 {
		t.Fatal("Earth did not move")
	}
	if !scalar.EqualWithinRel(earth.LastDistance(), AU, 1e-3) {
		t.Fatalf("cached distance to the Sun=%g", earth.LastDistance())
	}
}

func TestSimulationPause(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Tick()
	if err := sim.Apply(Command{Kind: CmdTogglePause}); err != nil {
		t.Fatal(err)
	}
	now := sim.Now()
	earth, _ := sim.Body("Earth")
	r, v, n := earth.Position, earth.Velocity, earth.TrailLen()
	for i := 0; i < 3; i++ {
		sim.Tick()
	}
	if !sim.Now().Equal(now) || earth.Position != r || earth.Velocity != v || earth.TrailLen() != n {
		t.Fatal("paused simulation changed")
	}
	// Speeding up while paused applies on resume.
	if err := sim.Apply(Command{Kind: CmdRateUp}); err != nil {
		t.Fatal(err)
	}
	if err := sim.Apply(Command{Kind: CmdTogglePause}); err != nil {
		t.Fatal(err)
	}
	up := 1.1
	if sim.Clock.Step() != 86400*up {
		t.Fatalf("step=%f", sim.Clock.Step())
	}
}

func TestSimulationCommands(t *testing.T) {
	sim := newTestSimulation(t)
	sun, _ := sim.Primary()
	r := sun.Radius
	if err := sim.Apply(Command{Kind: CmdZoomIn}); err != nil {
		t.Fatal(err)
	}
	if err := sim.Apply(Command{Kind: CmdZoomOut}); err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinRel(sun.Radius, r*1.1*0.9, 1e-12) || !scalar.EqualWithinRel(sim.ZoomFactor(), 0.99, 1e-12) {
		t.Fatalf("radius=%f zoom=%f", sun.Radius, sim.ZoomFactor())
	}

	sim.Tick()
	if err := sim.Apply(Command{Kind: CmdResetTrails}); err != nil {
		t.Fatal(err)
	}
	for _, b := range sim.Bodies {
		if b.TrailLen() != 0 {
			t.Fatalf("%s trail not reset", b.Name)
		}
	}

	if err := sim.Apply(Command{Kind: CmdFocus, Target: "mars"}); err != nil {
		t.Fatal(err)
	}
	if sim.Focused() == nil || sim.Focused().Name != "Mars" {
		t.Fatalf("focused=%v", sim.Focused())
	}
	if err := sim.Apply(Command{Kind: CmdFocus, Target: "Vulcan"}); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("expected ErrUnknownBody, got %v", err)
	}
	if err := sim.Apply(Command{Kind: CmdUnfocus}); err != nil || sim.Focused() != nil {
		t.Fatalf("unfocus: %v %v", err, sim.Focused())
	}
	if err := sim.Apply(Command{Kind: CmdQuit}); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if err := sim.Apply(Command{}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestSimulationReadout(t *testing.T) {
	sim := newTestSimulation(t)
	r, err := sim.Readout("Earth")
	if err != nil {
		t.Fatal(err)
	}
	if r.Speed != 29783 || r.OrbitalRadius != AU/1000 {
		t.Fatalf("unexpected readout %s", r)
	}
	if !scalar.EqualWithinRel(r.PeriodYears, 1, 0.02) {
		t.Fatalf("Earth period=%f", r.PeriodYears)
	}
	if r, err = sim.Readout("Sun"); err != nil || r.PeriodYears != 0 {
		t.Fatalf("Sun readout %s: %v", r, err)
	}
	if _, err = sim.Readout("Pluto"); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("expected ErrUnknownBody, got %v", err)
	}
}

func TestSimulationAngle(t *testing.T) {
	sim := newTestSimulation(t)
	// Every planet starts on the same side of the Sun.
	θ, err := sim.Angle("Earth", "Mars")
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(θ, 0, 1e-4) {
		t.Fatalf("angle=%f", θ)
	}
	if _, err := sim.Angle("Earth", "Sun"); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("expected ErrDegenerateGeometry, got %v", err)
	}
	if _, err := sim.Angle("Earth", "Vulcan"); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("expected ErrUnknownBody, got %v", err)
	}
}

func TestSimulationNoPrimary(t *testing.T) {
	conf := DefaultConfig()
	conf.Bodies = []BodyConfig{Earth, Mars}
	sim, err := NewSimulation(conf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sim.Readout("Earth"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestSimulationLogging(t *testing.T) {
	var buf bytes.Buffer
	sim, err := NewSimulation(DefaultConfig(), log.NewLogfmtLogger(&buf))
	if err != nil {
		t.Fatal(err)
	}
	sim.LogStatus()
	if err := sim.Apply(Command{Kind: CmdTogglePause}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, exp := range []string{"subsys=sim", "date=\"2021-08-13 00:00:00\"", "clock=paused", "level=info"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("log does not contain %s:\n%s", exp, out)
		}
	}
}

func TestSimulationSnapshot(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Tick()
	snap := sim.Snapshot()
	if snap.Tick != 1 || len(snap.States) != len(sim.Bodies) || !snap.DT.Equal(sim.Now()) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	sim.Tick()
	if snap.States[3].Position == sim.Bodies[3].Position {
		t.Fatal("snapshot shares state with the simulation")
	}
}
