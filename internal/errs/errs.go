// Package errs defines the fixed error taxonomy shared by the trajectory
// integrator and the density aggregator, and maps each kind to a process
// exit code.
package errs

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel kinds. Wrap these with pkgerrors.Wrap/Wrapf at the throw site so
// errors.Is still matches through the wrap chain, and callers get a
// %+v-formattable cause trail.
var (
	ErrConfig               = errors.New("config error")
	ErrUnreadableFile       = errors.New("unreadable file")
	ErrDirectoryMissing     = errors.New("directory missing")
	ErrSyntax               = errors.New("syntax error")
	ErrBufferOverflow       = errors.New("buffer overflow")
	ErrDataResolution       = errors.New("data resolution error")
	ErrChainExhausted       = errors.New("chain exhausted")
	ErrInterpolationUnavail = errors.New("interpolation unavailable")
	ErrUsage                = errors.New("usage error")
)

// Wrap attaches msg as context to cause while preserving errors.Is matching
// against the taxonomy sentinels.
func Wrap(cause error, msg string) error {
	return pkgerrors.Wrap(cause, msg)
}

// Wrapf is Wrap with fmt-style formatting.
func Wrapf(cause error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(cause, format, args...)
}

// ExitCode maps an error to the process exit code described in the external
// interfaces: 2 for a CLI usage error, 1 for any other taxonomy kind, 0 for
// nil. InterpolationUnavailable never reaches here — it is handled locally
// by the integrator as a soft truncation signal, never surfaced as a process
// error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}

// Kind identifies which sentinel (if any) an error wraps, for logging.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrConfig):
		return "config_error"
	case errors.Is(err, ErrUnreadableFile):
		return "unreadable_file"
	case errors.Is(err, ErrDirectoryMissing):
		return "directory_missing"
	case errors.Is(err, ErrSyntax):
		return "syntax_error"
	case errors.Is(err, ErrBufferOverflow):
		return "buffer_overflow"
	case errors.Is(err, ErrDataResolution):
		return "data_resolution_error"
	case errors.Is(err, ErrChainExhausted):
		return "chain_exhausted"
	case errors.Is(err, ErrInterpolationUnavail):
		return "interpolation_unavailable"
	case errors.Is(err, ErrUsage):
		return "usage_error"
	default:
		return "unknown"
	}
}
