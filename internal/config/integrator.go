package config

// Integrator is the immutable configuration for the trajectory integrator,
// built once from the environment at program entry. The field names mirror
// the original tool's env var names directly so the mapping stays
// traceable; defaults match the original parameter table.
type Integrator struct {
	Lon  float64 // LO, degrees
	Lat  float64 // LA, degrees
	Year int     // YYYY
	Mon  int     // MM
	Day  int     // DD
	Hour int     // HH

	Trace int // TRACE, hours; sign gives direction

	Speed float64 // SPEED, windspeed correction factor
	Rot   float64 // ROT, winddirection correction, degrees

	MaxR int // MAXR, km
	MinR int // MINR, km

	IterPerHour  int // IPERH
	IterPerPoint int // IPERPOINT

	ZoneDiff int    // ZONEDIFF, hours
	ZoneName string // ZONENAME, descriptive only

	StationFile string // STATION
	MeteoDir    string // METEO
	OutputDir   string // OUTPUT

	StdDeviation float64 // STDDEVIATION, 0 disables outlier rejection
	DataUnit     int      // DATAUNIT, 0=kn 1=m/s 2=mixed
	Res          int      // RES, hours; 0 disables the resolution check

	RunLogPath  string // RUNLOG, empty disables run history
	OtelTraces  bool   // OTEL_TRACES
	OtelFile    string // OTEL_TRACES_FILE
	LogLevel    string // LOG_LEVEL
}

// IntegratorFromEnv builds an Integrator config from the process
// environment, applying the original tool's defaults for anything unset.
func IntegratorFromEnv() Integrator {
	return Integrator{
		Lon:  envFloatOrDefault("LO", 13.4167),
		Lat:  envFloatOrDefault("LA", 52.5167),
		Year: envIntOrDefault("YYYY", 2000),
		Mon:  envIntOrDefault("MM", 1),
		Day:  envIntOrDefault("DD", 1),
		Hour: envIntOrDefault("HH", 0),

		Trace: envIntOrDefault("TRACE", -96),

		Speed: envFloatOrDefault("SPEED", 2.0),
		Rot:   envFloatOrDefault("ROT", 10.0),

		MaxR: envIntOrDefault("MAXR", 200),
		MinR: envIntOrDefault("MINR", 2),

		IterPerHour:  envIntOrDefault("IPERH", 20),
		IterPerPoint: envIntOrDefault("IPERPOINT", 20),

		ZoneDiff: envIntOrDefault("ZONEDIFF", -1),
		ZoneName: envOrDefault("ZONENAME", "MEZ"),

		StationFile: envOrDefault("STATION", "wstation.dat"),
		MeteoDir:    envOrDefault("METEO", "meteo/"),
		OutputDir:   envOrDefault("OUTPUT", "traj/"),

		StdDeviation: envFloatOrDefault("STDDEVIATION", 0.0),
		DataUnit:     envIntOrDefault("DATAUNIT", 0),
		Res:          envIntOrDefault("RES", 3),

		RunLogPath: envOrDefault("RUNLOG", ""),
		OtelTraces: envBoolOrDefault("OTEL_TRACES", false),
		OtelFile:   envOrDefault("OTEL_TRACES_FILE", ""),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
	}
}
