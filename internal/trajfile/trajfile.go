// Package trajfile reads and writes the integrator's output trajectory
// files: a fixed seven-line parameter header followed by one "lon;lat"
// data line per recorded trajectory point, in radians.
package trajfile

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"trajectory/internal/config"
	"trajectory/internal/errs"
)

// Name returns the output filename for the given configuration: a
// "B"-prefixed (backward) or "F"-prefixed (forward) timestamp, matching
// the original tool's naming so downstream tooling recognizes trace
// direction at a glance.
func Name(cfg config.Integrator) string {
	prefix := "F"
	if cfg.Trace < 0 {
		prefix = "B"
	}
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("%s%04d%02d%02d_%02d.trj",
		prefix, cfg.Year, cfg.Mon, cfg.Day, cfg.Hour))
}

// Write emits the trajectory file for cfg with the given recorded points
// (lon, lat in degrees), converting each to radians on output.
func Write(cfg config.Integrator, points []orb.Point) error {
	path := Name(cfg)
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrapf(errs.ErrUnreadableFile, "creating trajectory file %s: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "YYYY=%4d | MM=%2d | DD=%2d | HH=%2d | ", cfg.Year, cfg.Mon, cfg.Day, cfg.Hour)
	fmt.Fprintf(w, "ZONEDIFF=%d | ZONENAME=%s\n", cfg.ZoneDiff, cfg.ZoneName)

	fmt.Fprintf(w, "LO=%8.4f | LA=%8.4f | IPERH=%d | IPERPOINT=%d | ", cfg.Lon, cfg.Lat, cfg.IterPerHour, cfg.IterPerPoint)
	fmt.Fprintf(w, "TRACE=%d\n", cfg.Trace)

	fmt.Fprintf(w, "MINR=%d | MAXR=%d | STDDEVIATION=%6.3f | RES=%d | ", cfg.MinR, cfg.MaxR, cfg.StdDeviation, cfg.Res)
	fmt.Fprintf(w, "DATAUNIT=%d\n", cfg.DataUnit)

	fmt.Fprintf(w, "SPEED=%4.2f | ROT=%5.2f\n\n", cfg.Speed, cfg.Rot)

	fmt.Fprintf(w, "Trajektorienpunkte: %d\n\n", len(points))

	for _, p := range points {
		fmt.Fprintf(w, "%11.10f;%11.10f\n", p[0]*math.Pi/180, p[1]*math.Pi/180)
	}

	if err := w.Flush(); err != nil {
		return errs.Wrapf(errs.ErrUnreadableFile, "writing trajectory file %s: %v", path, err)
	}
	return nil
}

// Trajectory is one parsed trajectory file: the point count from the
// header plus the decoded (lon, lat) data lines.
type Trajectory struct {
	Path   string
	Points []orb.Point
}

// Read parses a trajectory file written by Write (or by the original
// tool — the formats are byte-compatible for the data lines). The radian
// data lines are returned as lon/lat points in degrees.
func Read(path string) (Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trajectory{}, errs.Wrapf(errs.ErrUnreadableFile, "opening trajectory file %s: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256), 256)

	lineNo := 0
	for lineNo < 7 {
		if !scanner.Scan() {
			if scanner.Err() == bufio.ErrTooLong {
				return Trajectory{}, errs.Wrapf(errs.ErrBufferOverflow, "trajectory file %s: line exceeds 256 bytes", path)
			}
			return Trajectory{}, errs.Wrapf(errs.ErrSyntax, "trajectory file %s: truncated header", path)
		}
		lineNo++
	}

	var points []orb.Point
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		fields := strings.SplitN(raw, ";", 2)
		if len(fields) != 2 {
			return Trajectory{}, errs.Wrapf(errs.ErrSyntax, "trajectory file %s line %d: expected lon;lat", path, lineNo)
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Trajectory{}, errs.Wrapf(errs.ErrSyntax, "trajectory file %s line %d: bad longitude %q", path, lineNo, fields[0])
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Trajectory{}, errs.Wrapf(errs.ErrSyntax, "trajectory file %s line %d: bad latitude %q", path, lineNo, fields[1])
		}
		points = append(points, orb.Point{lon * 180 / math.Pi, lat * 180 / math.Pi})
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return Trajectory{}, errs.Wrapf(errs.ErrBufferOverflow, "trajectory file %s: line exceeds 256 bytes", path)
		}
		return Trajectory{}, errs.Wrapf(errs.ErrUnreadableFile, "reading trajectory file %s: %v", path, err)
	}

	return Trajectory{Path: path, Points: points}, nil
}
