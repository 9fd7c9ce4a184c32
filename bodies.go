package solarsystem

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// AU is one astronomical unit in meters.
	AU = 149.6e9
)

// BodyConfig is the initial configuration of a body.
type BodyConfig struct {
	Name    string  `mapstructure:"name"`
	X       float64 `mapstructure:"x"`  // m
	Y       float64 `mapstructure:"y"`  // m
	VX      float64 `mapstructure:"vx"` // m/s
	VY      float64 `mapstructure:"vy"` // m/s
	Mass    float64 `mapstructure:"mass"`
	Radius  float64 `mapstructure:"radius"`
	Color   string  `mapstructure:"color"` // hex, e.g. "#ffd700"
	Primary bool    `mapstructure:"primary"`
}

// Build returns the body described by this configuration.
func (c BodyConfig) Build() (*Body, error) {
	b, err := NewBody(c.Name, r2.Vec{X: c.X, Y: c.Y}, r2.Vec{X: c.VX, Y: c.VY}, c.Mass, c.Radius, c.Primary)
	if err != nil {
		return nil, err
	}
	if c.Color != "" {
		col, err := colorful.Hex(c.Color)
		if err != nil {
			return nil, fmt.Errorf("%s: color %q: %w", c.Name, c.Color, ErrInvalidConfiguration)
		}
		b.Color = col
	}
	return b, nil
}

/* Definitions */

// Sun is our closest star.
var Sun = BodyConfig{Name: "Sun", Mass: 1.98892e30, Radius: 50, Color: "#ffff00", Primary: true}

// Mercury is fast.
var Mercury = BodyConfig{Name: "Mercury", X: -0.387 * AU, VY: 47400, Mass: 3.3e23, Radius: 6, Color: "#a9a9a9"}

// Venus is poisonous.
var Venus = BodyConfig{Name: "Venus", X: -0.723 * AU, VY: 35020, Mass: 4.8685e24, Radius: 15, Color: "#f0e68c"}

// Earth is home.
var Earth = BodyConfig{Name: "Earth", X: -AU, VY: 29783, Mass: 5.9742e24, Radius: 16, Color: "#add8e6"}

// Mars is the vacation place.
var Mars = BodyConfig{Name: "Mars", X: -1.524 * AU, VY: 24077, Mass: 6.39e23, Radius: 9, Color: "#b22222"}

// Jupiter is big.
var Jupiter = BodyConfig{Name: "Jupiter", X: -5.204 * AU, VY: 13070, Mass: 1.898e27, Radius: 45, Color: "#ffa500"}

// Saturn floats and that's really cool.
var Saturn = BodyConfig{Name: "Saturn", X: -9.582 * AU, VY: 9680, Mass: 5.683e26, Radius: 38, Color: "#ffd700"}

// Uranus is no joke.
var Uranus = BodyConfig{Name: "Uranus", X: -19.191 * AU, VY: 6800, Mass: 8.681e25, Radius: 28, Color: "#add8e6"}

// Neptune is the last one.
var Neptune = BodyConfig{Name: "Neptune", X: -30.047 * AU, VY: 5430, Mass: 1.024e26, Radius: 28, Color: "#0000ff"}

// DefaultCatalog returns the Sun and the eight planets, all starting on the negative x axis.
func DefaultCatalog() []BodyConfig {
	return []BodyConfig{Sun, Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
}
