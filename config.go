package solarsystem

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

const (
	dateFormat = "2006-01-02 15:04:05"
	envPrefix  = "SOLARSIM"
)

// Config holds every simulation parameter.
type Config struct {
	Start       time.Time
	StepSeconds float64 // simulated seconds per tick
	RateUp      float64 // rate factor of a speed-up command
	RateDown    float64 // rate factor of a slow-down command
	ZoomIn      float64
	ZoomOut     float64
	G           float64
	TickRate    float64 // Hz, for paced runs
	MinTickRate float64 // Hz, below which trails are cleared; zero disables
	Export      ExportConfig
	Bodies      []BodyConfig
}

// DefaultConfig returns the configuration of the default solar system.
func DefaultConfig() Config {
	return Config{
		Start:       time.Date(2021, 8, 13, 0, 0, 0, 0, time.UTC),
		StepSeconds: 24 * 3600,
		RateUp:      1.1,
		RateDown:    0.9,
		ZoomIn:      1.1,
		ZoomOut:     0.9,
		G:           GravitationalConstant,
		TickRate:    60,
		MinTickRate: 45,
		Export:      ExportConfig{Filename: "solarsim", OutputDir: ".", Every: 1},
		Bodies:      DefaultCatalog(),
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("simulation.start", def.Start.Format(dateFormat))
	v.SetDefault("simulation.start_jd", 0.0)
	v.SetDefault("simulation.step", def.StepSeconds)
	v.SetDefault("simulation.rate_up", def.RateUp)
	v.SetDefault("simulation.rate_down", def.RateDown)
	v.SetDefault("simulation.zoom_in", def.ZoomIn)
	v.SetDefault("simulation.zoom_out", def.ZoomOut)
	v.SetDefault("simulation.gravitational_constant", def.G)
	v.SetDefault("simulation.tick_rate", def.TickRate)
	v.SetDefault("simulation.min_tick_rate", def.MinTickRate)
	v.SetDefault("export.filename", def.Export.Filename)
	v.SetDefault("export.output_dir", def.Export.OutputDir)
	v.SetDefault("export.every", def.Export.Every)
	v.SetDefault("export.timestamp", false)
}

// LoadConfig reads the TOML (or any viper supported format) file at path on top of the defaults.
// An empty path only applies the defaults and the SOLARSIM_* environment overrides.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	conf := Config{
		StepSeconds: v.GetFloat64("simulation.step"),
		RateUp:      v.GetFloat64("simulation.rate_up"),
		RateDown:    v.GetFloat64("simulation.rate_down"),
		ZoomIn:      v.GetFloat64("simulation.zoom_in"),
		ZoomOut:     v.GetFloat64("simulation.zoom_out"),
		G:           v.GetFloat64("simulation.gravitational_constant"),
		TickRate:    v.GetFloat64("simulation.tick_rate"),
		MinTickRate: v.GetFloat64("simulation.min_tick_rate"),
		Export: ExportConfig{
			Filename:  v.GetString("export.filename"),
			OutputDir: v.GetString("export.output_dir"),
			Every:     v.GetInt("export.every"),
			Timestamp: v.GetBool("export.timestamp"),
		},
	}
	if jd := v.GetFloat64("simulation.start_jd"); jd != 0 {
		conf.Start = julian.JDToTime(jd).UTC()
	} else {
		start, err := time.ParseInLocation(dateFormat, v.GetString("simulation.start"), time.UTC)
		if err != nil {
			return Config{}, fmt.Errorf("simulation.start: %s: %w", err, ErrInvalidConfiguration)
		}
		conf.Start = start
	}
	if v.IsSet("bodies") {
		if err := v.UnmarshalKey("bodies", &conf.Bodies); err != nil {
			return Config{}, fmt.Errorf("bodies: %s: %w", err, ErrInvalidConfiguration)
		}
	} else {
		conf.Bodies = DefaultCatalog()
	}
	return conf, conf.Validate()
}

// Validate checks the ranges of every parameter. Bodies are checked when built.
func (c Config) Validate() error {
	positive := map[string]float64{
		"simulation.rate_up":                c.RateUp,
		"simulation.rate_down":              c.RateDown,
		"simulation.zoom_in":                c.ZoomIn,
		"simulation.zoom_out":               c.ZoomOut,
		"simulation.gravitational_constant": c.G,
		"simulation.tick_rate":              c.TickRate,
	}
	for key, val := range positive {
		if !(val > 0) || math.IsInf(val, 1) {
			return fmt.Errorf("%s = %g must be positive: %w", key, val, ErrInvalidConfiguration)
		}
	}
	if math.IsNaN(c.StepSeconds) || math.Abs(c.StepSeconds) > MaxStepSeconds {
		return fmt.Errorf("simulation.step = %g: %w", c.StepSeconds, ErrInvalidConfiguration)
	}
	if c.MinTickRate < 0 {
		return fmt.Errorf("simulation.min_tick_rate = %g: %w", c.MinTickRate, ErrInvalidConfiguration)
	}
	if c.Export.Every < 0 {
		return fmt.Errorf("export.every = %d: %w", c.Export.Every, ErrInvalidConfiguration)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("no bodies: %w", ErrInvalidConfiguration)
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		name := strings.ToLower(b.Name)
		if name == "" || seen[name] {
			return fmt.Errorf("body name %q is empty or duplicated: %w", b.Name, ErrInvalidConfiguration)
		}
		seen[name] = true
	}
	return nil
}

// BuildBodies builds every configured body, in order.
func (c Config) BuildBodies() ([]*Body, error) {
	bodies := make([]*Body, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := bc.Build()
		if err != nil {
			return nil, err
		}
		bodies[i] = b
	}
	return bodies, nil
}
