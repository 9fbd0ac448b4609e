package config

// Density is the immutable configuration for the density aggregator, built
// once from the environment at program entry.
type Density struct {
	OutputFile string // FILENAME
	InputDir   string // INPUTDIR

	ResKm float64 // RES, km

	ScaleMin int // SCALEMIN, percent
	ScaleMax int // SCALEMAX, percent

	Opacity string // OPACITY, hex byte as a string (e.g. "88")

	OffLo float64 // OFFLO, degrees
	OffLa float64 // OFFLA, degrees

	Color  int // COLOR, 0=identity permutation, 1..10=constant class
	Weight int // WEIGHT, 0=absolute 1=distance 2=sqrt-distance
	Size   int // SIZE, plot window side in cells; read but not used: rasterization always covers the full grid

	MidLo float64 // MIDLO, degrees; read but not used
	MidLa float64 // MIDLA, degrees; read but not used

	RunLogPath string
	OtelTraces bool
	OtelFile   string
	LogLevel   string
}

// DensityFromEnv builds a Density config from the process environment,
// applying the original tool's defaults for anything unset.
func DensityFromEnv() Density {
	return Density{
		OutputFile: envOrDefault("FILENAME", "freq.kml"),
		InputDir:   envOrDefault("INPUTDIR", "traj/"),

		ResKm: envFloatOrDefault("RES", 25),

		ScaleMin: envIntOrDefault("SCALEMIN", 0),
		ScaleMax: envIntOrDefault("SCALEMAX", 100),

		Opacity: envOrDefault("OPACITY", "88"),

		OffLo: envFloatOrDefault("OFFLO", 0.0),
		OffLa: envFloatOrDefault("OFFLA", 0.0),

		Color:  envIntOrDefault("COLOR", 0),
		Weight: envIntOrDefault("WEIGHT", 0),
		Size:   envIntOrDefault("SIZE", 0),

		MidLo: envFloatOrDefault("MIDLO", 13.4167),
		MidLa: envFloatOrDefault("MIDLA", 52.5167),

		RunLogPath: envOrDefault("RUNLOG", ""),
		OtelTraces: envBoolOrDefault("OTEL_TRACES", false),
		OtelFile:   envOrDefault("OTEL_TRACES_FILE", ""),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
	}
}
