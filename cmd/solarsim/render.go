package main

import (
	"errors"
	"fmt"
	"strings"

	solarsystem "github.com/NedPetre/solar-system"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func bodyStyle(b *solarsystem.Body) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(b.Color.Hex()))
}

// renderReport renders the date, the focused body readout, the optional angle and the distance plot.
// An angle involving a body at the reference is reported as undefined.
func renderReport(sim *solarsystem.Simulation, angle []string, plot bool, history []float64) (string, error) {
	lines := []string{
		titleStyle.Render(sim.Now().Format("2006-01-02")),
		fmt.Sprintf("Time step: %.2f days/tick", sim.Clock.Rate()/86400),
		fmt.Sprintf("Scale: %.3f", sim.ZoomFactor()),
	}
	if sim.Clock.Paused() {
		lines = append(lines, "Paused")
	}
	if b := sim.Focused(); b != nil {
		r, err := sim.Readout(b.Name)
		if err != nil {
			return "", err
		}
		lines = append(lines,
			"",
			bodyStyle(b).Render(b.Name),
			fmt.Sprintf("Velocity: %.1f m/s", r.Speed),
			fmt.Sprintf("Orbital radius: %.0f km", r.OrbitalRadius),
			fmt.Sprintf("Orbital period: %.2f years", r.PeriodYears),
			fmt.Sprintf("Trail: %d points", b.TrailLen()),
		)
	}
	ref := "reference"
	if p, err := sim.Primary(); err == nil {
		ref = p.Name
	}
	if len(angle) == 2 {
		nameA, nameB := strings.TrimSpace(angle[0]), strings.TrimSpace(angle[1])
		label := fmt.Sprintf("Angle %s-%s-%s", nameA, ref, nameB)
		θ, err := sim.Angle(nameA, nameB)
		switch {
		case errors.Is(err, solarsystem.ErrDegenerateGeometry):
			lines = append(lines, "", label+": undefined")
		case err != nil:
			return "", err
		default:
			lines = append(lines, "", fmt.Sprintf("%s: %.3f°", label, θ))
		}
	}
	report := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if plot && len(history) > 1 {
		caption := fmt.Sprintf("distance to the %s (AU)", ref)
		if b := sim.Focused(); b != nil {
			caption = b.Name + " " + caption
		}
		report += "\n" + asciigraph.Plot(history, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption(caption))
	}
	return report, nil
}
