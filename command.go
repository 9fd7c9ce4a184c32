package solarsystem

import (
	"fmt"
	"strings"
)

// CommandKind defines an enum of input commands.
type CommandKind uint8

const (
	// CmdTogglePause pauses a running clock or resumes a paused one.
	CmdTogglePause CommandKind = iota + 1
	// CmdRateUp speeds up the simulated time per tick.
	CmdRateUp
	// CmdRateDown slows down the simulated time per tick.
	CmdRateDown
	// CmdZoomIn enlarges the display radii.
	CmdZoomIn
	// CmdZoomOut shrinks the display radii.
	CmdZoomOut
	// CmdResetTrails clears every trail.
	CmdResetTrails
	// CmdFocus focuses the body named by the command target.
	CmdFocus
	// CmdUnfocus resets the view.
	CmdUnfocus
	// CmdQuit ends the simulation.
	CmdQuit
)

var commandNames = map[CommandKind]string{
	CmdTogglePause: "pause",
	CmdRateUp:      "faster",
	CmdRateDown:    "slower",
	CmdZoomIn:      "zoom-in",
	CmdZoomOut:     "zoom-out",
	CmdResetTrails: "reset-trails",
	CmdFocus:       "focus",
	CmdUnfocus:     "unfocus",
	CmdQuit:        "quit",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// Command is a discrete input from the event source.
type Command struct {
	Kind   CommandKind
	Target string // body name, for CmdFocus only
}

func (c Command) String() string {
	if c.Kind == CmdFocus {
		return c.Kind.String() + "=" + c.Target
	}
	return c.Kind.String()
}

// ParseCommand returns the command from its name. Focus takes its target as "focus=Earth".
func ParseCommand(s string) (Command, error) {
	name, target, _ := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.ToLower(name)
	for kind, kname := range commandNames {
		if kname != name {
			continue
		}
		if kind == CmdFocus {
			if target == "" {
				return Command{}, fmt.Errorf("focus needs a body name (focus=NAME): %w", ErrUnknownCommand)
			}
			return Command{Kind: kind, Target: target}, nil
		}
		if target != "" {
			return Command{}, fmt.Errorf("%s takes no argument: %w", name, ErrUnknownCommand)
		}
		return Command{Kind: kind}, nil
	}
	return Command{}, fmt.Errorf("%q: %w", s, ErrUnknownCommand)
}
