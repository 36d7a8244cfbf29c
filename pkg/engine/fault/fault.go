// Package fault defines the error taxonomy shared by the layout engine.
//
// Configuration errors are fatal and never retried: they mean a shape, plan or
// pipeline was assembled wrongly. Search exhaustion is not an error at all; the
// algorithms that can run out of candidates report it through their return
// values and degrade to a partial result. Disconnected layouts are diagnostics
// that only become errors when an audit runs in strict mode.
package fault

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfiguration marks a misconfigured shape, plan or pipeline.
	ErrConfiguration = errors.New("configuration error")

	// ErrDisconnected marks a finished layout whose entrance cannot reach an exit.
	ErrDisconnected = errors.New("layout disconnected")
)

// Configf returns a configuration error carrying a formatted message and a stack trace.
func Configf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// Disconnectedf returns a connectivity error carrying a formatted message.
func Disconnectedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDisconnected, format, args...)
}

// IsConfiguration reports whether err is (or wraps) a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsDisconnected reports whether err is (or wraps) a connectivity error.
func IsDisconnected(err error) bool {
	return errors.Is(err, ErrDisconnected)
}
