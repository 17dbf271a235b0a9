package blake2s

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfig is the cause of every error returned for an invalid
	// parameter set: digest size, key, salt or personalization out of range.
	ErrConfig = errors.New("invalid configuration")

	// ErrState is the cause of every error returned when a Digest is used
	// out of order, such as absorbing after finalization or extracting
	// before it.
	ErrState = errors.New("invalid use of digest")
)

func configError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfig, "blake2s: "+format, args...)
}

func stateError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrState, "blake2s: "+format, args...)
}
