package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	solarsystem "github.com/NedPetre/solar-system"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

type options struct {
	config   string
	ticks    uint64
	realtime bool
	focus    string
	angle    string
	plot     bool
	export   bool
	at       []string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "solarsim",
		Short:        "Simulate the Sun and the planets",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.config, "config", os.Getenv("SOLARSIM_CONFIG"), "configuration file (TOML)")
	f.Uint64Var(&opts.ticks, "ticks", 365, "number of ticks to simulate")
	f.BoolVar(&opts.realtime, "realtime", false, "pace ticks at simulation.tick_rate and clear trails when falling behind")
	f.StringVar(&opts.focus, "focus", "", "body to report on")
	f.StringVar(&opts.angle, "angle", "", "report the angle at the Sun between two bodies, as A,B")
	f.BoolVar(&opts.plot, "plot", false, "plot the focused body's distance to the Sun")
	f.BoolVar(&opts.export, "export", false, "stream states to a CSV file")
	f.StringArrayVar(&opts.at, "at", nil, "schedule a command as TICK:COMMAND (repeatable)")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, opt), nil
}

// parseSchedule reads TICK:COMMAND entries, e.g. "10:pause" or "20:focus=Mars".
func parseSchedule(specs []string) (map[uint64][]solarsystem.Command, error) {
	schedule := make(map[uint64][]solarsystem.Command, len(specs))
	for _, spec := range specs {
		tickStr, cmdStr, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("schedule %q: expected TICK:COMMAND", spec)
		}
		tick, err := strconv.ParseUint(tickStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", spec, err)
		}
		cmd, err := solarsystem.ParseCommand(cmdStr)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", spec, err)
		}
		schedule[tick] = append(schedule[tick], cmd)
	}
	return schedule, nil
}

func run(ctx context.Context, stdout, stderr io.Writer, opts options) (err error) {
	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}
	conf, err := solarsystem.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	sim, err := solarsystem.NewSimulation(conf, logger)
	if err != nil {
		return err
	}
	schedule, err := parseSchedule(opts.at)
	if err != nil {
		return err
	}
	if opts.focus != "" {
		if err := sim.Focus(opts.focus); err != nil {
			return err
		}
	}
	var angle []string
	if opts.angle != "" {
		if angle = strings.Split(opts.angle, ","); len(angle) != 2 {
			return fmt.Errorf("--angle expects two bodies as A,B, got %q", opts.angle)
		}
	}

	var exporter *solarsystem.Exporter
	if opts.export {
		if exporter, err = solarsystem.NewExporter(conf.Export); err != nil {
			return err
		}
		defer func() {
			if cerr := exporter.Close(); err == nil {
				err = cerr
			}
			level.Info(logger).Log("subsys", "export", "file", exporter.Name())
		}()
		exporter.Send(sim.Snapshot())
	}

	var ticks <-chan time.Time
	if opts.realtime {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / conf.TickRate))
		defer ticker.Stop()
		ticks = ticker.C
	}
	pace := newPacer(conf.MinTickRate, int(conf.TickRate))

	var history []float64
	sim.LogStatus()
	last := time.Now()
loop:
	for sim.Ticks() < opts.ticks {
		for _, cmd := range schedule[sim.Ticks()] {
			if aerr := sim.Apply(cmd); errors.Is(aerr, solarsystem.ErrQuit) {
				break loop
			} else if aerr != nil {
				return aerr
			}
		}
		sim.Tick()
		if exporter != nil {
			exporter.Send(sim.Snapshot())
		}
		if b := sim.Focused(); b != nil {
			history = append(history, solarsystem.DistanceToReference(b)/solarsystem.AU)
		}
		if ticks == nil {
			if ctx.Err() != nil {
				break loop
			}
			continue
		}
		select {
		case <-ctx.Done():
			break loop
		case <-ticks:
		}
		now := time.Now()
		if pace.Observe(now.Sub(last)) {
			sim.ResetTrails()
			level.Warn(logger).Log("subsys", "pacer", "message", "tick rate below minimum, trails cleared", "min(Hz)", conf.MinTickRate)
		}
		last = now
	}
	sim.LogStatus()

	out, err := renderReport(sim, angle, opts.plot, history)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}
