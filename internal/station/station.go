// Package station loads the ground-wind station descriptor file into an
// immutable table of (id, speed unit, unit-vector position) records.
package station

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"trajectory/internal/errs"
	"trajectory/internal/geo"
)

// Unit identifies the measurement unit a station reports speed in.
type Unit int

const (
	// UnitMPS is metres per second.
	UnitMPS Unit = 1
	// UnitKnots is knots.
	UnitKnots Unit = 2
)

// Station is one line of the station descriptor file after decoding.
type Station struct {
	ID       int
	Unit     Unit
	Position geo.Vec3
}

// DataUnit selects how a station's speed unit is resolved from the
// descriptor file, per §4.3.
type DataUnit int

const (
	// DataUnitForceKnots forces every station to knots regardless of the
	// file's unit-code column.
	DataUnitForceKnots DataUnit = 0
	// DataUnitForceMPS forces every station to m/s.
	DataUnitForceMPS DataUnit = 1
	// DataUnitMixed reads the unit-code column verbatim; it must be 1 or 2.
	DataUnitMixed DataUnit = 2
)

// Load parses a station descriptor file. Each line is whitespace-separated:
// id, latitude (+-DDMM), longitude (+-DDDMMM), altitude (ignored), unit-code.
func Load(path string, dataUnit DataUnit) ([]Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrUnreadableFile, "opening station file %s: %v", path, err)
	}
	defer f.Close()

	var stations []Station
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errs.Wrapf(errs.ErrSyntax, "station file %s line %d: expected at least 4 fields", path, lineNo)
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errs.Wrapf(errs.ErrSyntax, "station file %s line %d: bad id %q", path, lineNo, fields[0])
		}
		latRaw, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errs.Wrapf(errs.ErrSyntax, "station file %s line %d: bad latitude %q", path, lineNo, fields[1])
		}
		lonRaw, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errs.Wrapf(errs.ErrSyntax, "station file %s line %d: bad longitude %q", path, lineNo, fields[2])
		}

		unit, err := resolveUnit(dataUnit, fields)
		if err != nil {
			return nil, errs.Wrapf(errs.ErrConfig, "station file %s line %d: %v", path, lineNo, err)
		}

		latRad := decodeDDMM(float64(latRaw))
		lonRad := decodeDDMM(float64(lonRaw))

		stations = append(stations, Station{
			ID:       id,
			Unit:     unit,
			Position: geo.ToCart(lonRad, latRad),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrapf(errs.ErrUnreadableFile, "reading station file %s: %v", path, err)
	}
	return stations, nil
}

// decodeDDMM converts a signed DDMM/DDDMMM integer-encoded angle to radians:
// sign*(DD + MM/60). Matches the original's exact integer/fractional split,
// which (unlike normalize_coords) is not brittle for well-formed input.
func decodeDDMM(v float64) float64 {
	whole := math.Trunc(v / 100)
	frac := v - 100*whole
	return (whole + frac/60) * math.Pi / 180
}

func resolveUnit(dataUnit DataUnit, fields []string) (Unit, error) {
	switch dataUnit {
	case DataUnitForceKnots:
		return UnitKnots, nil
	case DataUnitForceMPS:
		return UnitMPS, nil
	case DataUnitMixed:
		if len(fields) < 5 {
			return 0, errs.ErrConfig
		}
		code, err := strconv.Atoi(fields[4])
		if err != nil {
			return 0, errs.ErrSyntax
		}
		if code != 1 && code != 2 {
			return 0, errs.ErrConfig
		}
		return Unit(code), nil
	default:
		return UnitKnots, nil
	}
}

// IndexByID builds a lookup from station id to its index in stations, for
// use by the wind-file loader when assembling per-hour sample arrays.
func IndexByID(stations []Station) map[int]int {
	idx := make(map[int]int, len(stations))
	for i, s := range stations {
		idx[s.ID] = i
	}
	return idx
}
