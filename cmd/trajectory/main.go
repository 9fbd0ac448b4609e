// Command trajectory integrates a single air parcel's path across a
// ground-wind field, forward or backward in time, and writes the result
// as a .trj trajectory file.
package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"trajectory/internal/calendar"
	"trajectory/internal/config"
	"trajectory/internal/errs"
	"trajectory/internal/interp"
	"trajectory/internal/obslog"
	"trajectory/internal/runlog"
	"trajectory/internal/station"
	"trajectory/internal/stepper"
	"trajectory/internal/telemetry"
	"trajectory/internal/trajfile"
	"trajectory/internal/wind"
)

func main() {
	cfg := config.IntegratorFromEnv()
	logger := obslog.New(cfg.LogLevel, os.Stderr)

	tp, err := telemetry.Setup("trajectory", cfg.OtelTraces, cfg.OtelFile)
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
		Tool:       "trajectory",
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
		logger.WithError(runErr).WithField("kind", errs.Kind(runErr)).Error("trajectory integration failed")
		os.Exit(errs.ExitCode(runErr))
	}
}

func run(cfg config.Integrator, logger logFields, tp *telemetry.Provider) (string, error) {
	ctx, span := tp.Start(context.Background(), "integrate")
	defer span.End()

	var dataUnit station.DataUnit
	switch cfg.DataUnit {
	case 0:
		dataUnit = station.DataUnitForceKnots
	case 1:
		dataUnit = station.DataUnitForceMPS
	case 2:
		dataUnit = station.DataUnitMixed
	default:
		return "", errs.Wrapf(errs.ErrConfig, "DATAUNIT=%d is not 0, 1, or 2", cfg.DataUnit)
	}

	_, loadSpan := tp.Start(ctx, "load_stations")
	stations, err := station.Load(cfg.StationFile, dataUnit)
	loadSpan.End()
	if err != nil {
		return "", err
	}
	if len(stations) == 0 {
		return "", errs.Wrap(errs.ErrConfig, "no stations loaded from STATION file")
	}
	logger.Info("loaded stations")

	_, windSpan := tp.Start(ctx, "load_wind")
	chain, err := wind.Load(cfg, stations)
	windSpan.End()
	if err != nil {
		return "", err
	}

	start := calendar.Point{Year: cfg.Year, Month: cfg.Mon, Day: cfg.Day, Hour: cfg.Hour}
	start = calendar.AddHours(start, cfg.ZoneDiff)
	startIdx, ok := chain.IndexOf(start)
	if !ok {
		return "", errs.Wrap(errs.ErrConfig, "start time falls outside the loaded wind data range")
	}

	window, err := interp.New(cfg, stations, chain, startIdx)
	if err != nil {
		return "", err
	}

	_, stepSpan := tp.Start(ctx, "step")
	result, runErr := stepper.Run(cfg, stations, window, cfg.Lon, cfg.Lat)
	stepSpan.End()
	if runErr != nil {
		if errors.Is(runErr, errs.ErrInterpolationUnavail) {
			logger.Info("trajectory truncated: wind interpolation became unavailable")
		} else {
			return "", runErr
		}
	}

	_, writeSpan := tp.Start(ctx, "write")
	err = trajfile.Write(cfg, result.Points)
	writeSpan.End()
	if err != nil {
		return "", err
	}

	return trajfile.Name(cfg), nil
}

// logFields is the subset of *logrus.Logger used here, so run() doesn't
// depend on the concrete logger type.
type logFields interface {
	Info(args ...interface{})
}

func paramSummary(cfg config.Integrator) string {
	return runlog.ParamString(map[string]string{
		"LO":    strconv.FormatFloat(cfg.Lon, 'f', -1, 64),
		"LA":    strconv.FormatFloat(cfg.Lat, 'f', -1, 64),
		"TRACE": strconv.Itoa(cfg.Trace),
		"YYYY":  strconv.Itoa(cfg.Year),
		"MM":    strconv.Itoa(cfg.Mon),
		"DD":    strconv.Itoa(cfg.Day),
		"HH":    strconv.Itoa(cfg.Hour),
	})
}
