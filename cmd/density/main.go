// Command density aggregates a directory of .trj trajectory files into a
// percentile-banded density grid and writes the result as a KML-style
// markup file.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"trajectory/internal/config"
	"trajectory/internal/errs"
	"trajectory/internal/markup"
	"trajectory/internal/obslog"
	"trajectory/internal/rasterize"
	"trajectory/internal/runlog"
	"trajectory/internal/telemetry"
	"trajectory/internal/trajfile"
)

func main() {
	cfg := config.DensityFromEnv()
	logger := obslog.New(cfg.LogLevel, os.Stderr)

	tp, err := telemetry.Setup("density", cfg.OtelTraces, cfg.OtelFile)
	if err != nil {
		logger.WithError(err).Error("failed to set up tracing")
		os.Exit(errs.ExitCode(err))
	}
	defer tp.Shutdown(context.Background())

	store, err := runlog.Open(cfg.RunLogPath)
	if err != nil {
		logger.WithError(err).Error("failed to open run log")
		os.Exit(errs.ExitCode(err))
	}
	defer store.Close()

	started := time.Now()
	outputPath, runErr := run(cfg, logger, tp)
	finished := time.Now()

	status := "ok"
	detail := ""
	if runErr != nil {
		status = "error"
		detail = runErr.Error()
	}
	if logErr := store.Append(runlog.Record{
		Tool:       "density",
		StartedAt:  started,
		FinishedAt: finished,
		Params:     paramSummary(cfg),
		OutputPath: outputPath,
		Status:     status,
		Detail:     detail,
	}); logErr != nil {
		logger.WithError(logErr).Warn("failed to append run log record")
	}

	if runErr != nil {
		logger.WithError(runErr).WithField("kind", errs.Kind(runErr)).Error("density aggregation failed")
		os.Exit(errs.ExitCode(runErr))
	}
}

func run(cfg config.Density, logger logFields, tp *telemetry.Provider) (string, error) {
	ctx, span := tp.Start(context.Background(), "aggregate")
	defer span.End()

	if cfg.Color < 0 || cfg.Color > 10 {
		return "", errs.Wrapf(errs.ErrConfig, "COLOR=%d is not in 0..10", cfg.Color)
	}

	_, discoverSpan := tp.Start(ctx, "discover")
	paths, err := discoverTrajectoryFiles(cfg.InputDir)
	discoverSpan.End()
	if err != nil {
		return "", err
	}
	logger.Info("discovered trajectory files")

	_, readSpan := tp.Start(ctx, "read_trajectories")
	trajectories := make([][]orb.Point, 0, len(paths))
	for _, p := range paths {
		traj, err := trajfile.Read(p)
		if err != nil {
			return "", err
		}
		trajectories = append(trajectories, traj.Points)
	}
	readSpan.End()

	bound, ok := rasterize.BoundsOf(trajectories)
	if !ok {
		// No trajectory points: the document holds only its two empty folders.
		err := markup.Write(cfg.OutputFile, "density", "trajectory density aggregation",
			markup.TrajectoryFolder("Trajectories", trajectories), markup.Folder{Name: "Density"}, nil)
		if err != nil {
			return "", err
		}
		return cfg.OutputFile, nil
	}

	_, gridSpan := tp.Start(ctx, "rasterize")
	grid, err := rasterize.NewGrid(bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1], cfg.ResKm)
	if err != nil {
		gridSpan.End()
		return "", err
	}
	for _, traj := range trajectories {
		rasterize.DrawTrajectory(grid, traj, cfg.Weight)
	}
	gridSpan.End()

	_, classifySpan := tp.Start(ctx, "classify")
	cls, err := rasterize.Classify(grid, cfg.ScaleMin, cfg.ScaleMax)
	classifySpan.End()
	if err != nil {
		return "", err
	}

	_, writeSpan := tp.Start(ctx, "write")
	shifted := make([][]orb.Point, len(trajectories))
	for i, traj := range trajectories {
		shifted[i] = make([]orb.Point, len(traj))
		for j, p := range traj {
			shifted[i][j] = orb.Point{p[0] + cfg.OffLo, p[1] + cfg.OffLa}
		}
	}
	trajFolder := markup.TrajectoryFolder("Trajectories", shifted)
	densityFolder, styles := markup.DensityFolder(cls, cfg.ResKm, cfg.OffLo, cfg.OffLa, cfg.Opacity, colorClassTable(cfg.Color))
	err = markup.Write(cfg.OutputFile, "density", "trajectory density aggregation", trajFolder, densityFolder, styles)
	writeSpan.End()
	if err != nil {
		return "", err
	}

	return cfg.OutputFile, nil
}

// colorClassTable builds the band-to-palette-index mapping: the identity
// permutation when color is 0, or every band pinned to the same palette
// entry when color selects one directly (1..10).
func colorClassTable(color int) [10]int {
	var table [10]int
	if color <= 0 || color > 10 {
		for i := range table {
			table[i] = i
		}
		return table
	}
	for i := range table {
		table[i] = color - 1
	}
	return table
}

// discoverTrajectoryFiles lists every non-hidden file in dir, matching the
// original tool's directory scan: every visible entry is treated as a
// trajectory file, in no particular order from the filesystem, so the
// names are sorted here for a reproducible aggregation order.
func discoverTrajectoryFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrDirectoryMissing, "reading trajectory directory %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// logFields is the subset of *logrus.Logger used here, so run() doesn't
// depend on the concrete logger type.
type logFields interface {
	Info(args ...interface{})
}

func paramSummary(cfg config.Density) string {
	return runlog.ParamString(map[string]string{
		"INPUTDIR": cfg.InputDir,
		"RES":      strconv.FormatFloat(cfg.ResKm, 'f', -1, 64),
		"SCALEMIN": strconv.Itoa(cfg.ScaleMin),
		"SCALEMAX": strconv.Itoa(cfg.ScaleMax),
		"WEIGHT":   strconv.Itoa(cfg.Weight),
		"COLOR":    strconv.Itoa(cfg.Color),
	})
}
