package solarsystem

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// BodyState is the state of one body at a given tick.
type BodyState struct {
	Name     string
	Position r2.Vec
	Velocity r2.Vec
}

// Snapshot stores the state of every body at a given tick.
type Snapshot struct {
	Tick   uint64
	DT     time.Time
	JD     float64
	States []BodyState
}

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	OutputDir string
	Every     int // write one snapshot every so many ticks
	Timestamp bool
}

// Path returns the CSV file path.
func (c ExportConfig) Path() string {
	name := c.Filename
	if c.Timestamp {
		name += "-" + time.Now().UTC().Format("2006-01-02T15.04.05")
	}
	return filepath.Join(c.OutputDir, "states-"+name+".csv")
}

// WriteSnapshots writes every snapshot received on the channel as CSV rows until the channel is closed.
func WriteSnapshots(w io.Writer, snapshots <-chan Snapshot, every int) error {
	if every <= 0 {
		every = 1
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Creation date (UTC): %s\n", time.Now().UTC())
	bw.WriteString("# Positions in m, velocities in m/s, heliocentric plane\n")
	cw := csv.NewWriter(bw)
	if err := cw.Write([]string{"tick", "time", "jd", "body", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	var err error
	for snap := range snapshots {
		if err != nil || snap.Tick%uint64(every) != 0 {
			continue // keep draining so the producer never blocks
		}
		for _, st := range snap.States {
			rec := []string{
				strconv.FormatUint(snap.Tick, 10),
				snap.DT.UTC().Format(dateFormat),
				strconv.FormatFloat(snap.JD, 'f', 6, 64),
				st.Name,
				strconv.FormatFloat(st.Position.X, 'e', 9, 64),
				strconv.FormatFloat(st.Position.Y, 'e', 9, 64),
				strconv.FormatFloat(st.Velocity.X, 'f', 3, 64),
				strconv.FormatFloat(st.Velocity.Y, 'f', 3, 64),
			}
			if err = cw.Write(rec); err != nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// Exporter streams snapshots to a CSV file from its own goroutine.
type Exporter struct {
	snapshots chan Snapshot
	done      chan error
	file      *os.File
}

// NewExporter creates the output file and starts streaming.
func NewExporter(conf ExportConfig) (*Exporter, error) {
	f, err := os.Create(conf.Path())
	if err != nil {
		return nil, err
	}
	e := &Exporter{snapshots: make(chan Snapshot, 1000), done: make(chan error, 1), file: f}
	go func() {
		e.done <- WriteSnapshots(f, e.snapshots, conf.Every)
	}()
	return e, nil
}

// Name returns the output file name.
func (e *Exporter) Name() string {
	return e.file.Name()
}

// Send queues a snapshot. It must not be called after Close.
func (e *Exporter) Send(s Snapshot) {
	e.snapshots <- s
}

// Close waits for every queued snapshot to be written and closes the file.
func (e *Exporter) Close() error {
	close(e.snapshots)
	err := <-e.done
	if cerr := e.file.Close(); err == nil {
		err = cerr
	}
	return err
}
