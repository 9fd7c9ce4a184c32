package solarsystem

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if !conf.Start.Equal(def.Start) || conf.StepSeconds != def.StepSeconds || conf.G != def.G {
		t.Fatalf("unexpected defaults %+v", conf)
	}
	if conf.RateUp != 1.1 || conf.RateDown != 0.9 || conf.MinTickRate != 45 || conf.TickRate != 60 {
		t.Fatalf("unexpected defaults %+v", conf)
	}
	if len(conf.Bodies) != 9 || conf.Bodies[0].Name != "Sun" || !conf.Bodies[0].Primary {
		t.Fatalf("unexpected catalog %+v", conf.Bodies)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("SOLARSIM_SIMULATION_STEP", "3600")
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.StepSeconds != 3600 {
		t.Fatalf("step=%f", conf.StepSeconds)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	toml := `
[simulation]
start = "2000-01-01 12:00:00"
step = 3600.0
rate_up = 2.0

[export]
every = 10

[[bodies]]
name = "Sun"
mass = 1.98892e30
radius = 30
color = "#ffff00"
primary = true

[[bodies]]
name = "Earth"
x = -1.496e11
vy = 29783.0
mass = 5.9742e24
radius = 16
color = "#add8e6"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if exp := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC); !conf.Start.Equal(exp) {
		t.Fatalf("start=%s", conf.Start)
	}
	if conf.StepSeconds != 3600 || conf.RateUp != 2 || conf.RateDown != 0.9 || conf.Export.Every != 10 {
		t.Fatalf("unexpected configuration %+v", conf)
	}
	if len(conf.Bodies) != 2 {
		t.Fatalf("expected two bodies, got %+v", conf.Bodies)
	}
	earth := conf.Bodies[1]
	if earth.Name != "Earth" || earth.X != -1.496e11 || earth.VY != 29783 || earth.Primary {
		t.Fatalf("unexpected Earth %+v", earth)
	}
	if !conf.Bodies[0].Primary || conf.Bodies[0].Radius != 30 {
		t.Fatalf("unexpected Sun %+v", conf.Bodies[0])
	}
}

func TestLoadConfigJulianStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	if err := os.WriteFile(path, []byte("[simulation]\nstart_jd = 2451545.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if exp := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC); conf.Start.Sub(exp).Abs() > time.Millisecond {
		t.Fatalf("start=%s", conf.Start)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file did not fail")
	}
	path := filepath.Join(t.TempDir(), "conf.toml")
	if err := os.WriteFile(path, []byte("[simulation]\nstart = \"13/08/2021\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("bad start: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	for name, mut := range map[string]func(*Config){
		"rate up":    func(c *Config) { c.RateUp = 0 },
		"rate down":  func(c *Config) { c.RateDown = -1 },
		"zoom":       func(c *Config) { c.ZoomIn = 0 },
		"G":          func(c *Config) { c.G = 0 },
		"tick rate":  func(c *Config) { c.TickRate = 0 },
		"min rate":   func(c *Config) { c.MinTickRate = -1 },
		"export":     func(c *Config) { c.Export.Every = -1 },
		"no bodies":  func(c *Config) { c.Bodies = nil },
		"duplicates": func(c *Config) { c.Bodies = append(c.Bodies, Earth) },
		"empty name": func(c *Config) { c.Bodies[1].Name = "" },
		"NaN step":   func(c *Config) { c.StepSeconds = math.NaN() },
		"huge step":  func(c *Config) { c.StepSeconds = -2 * MaxStepSeconds },
	} {
		conf := DefaultConfig()
		mut(&conf)
		if err := conf.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("%s: expected ErrInvalidConfiguration, got %v", name, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestBuildBodiesInvalid(t *testing.T) {
	conf := DefaultConfig()
	conf.Bodies[3].Mass = 0
	if _, err := conf.BuildBodies(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
