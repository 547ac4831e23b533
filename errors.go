package logfacade

import stderrs "errors"

var (
	// ErrInvalidProvider is the cause of every SetProvider rejection.
	ErrInvalidProvider = stderrs.New("invalid logger provider")
	// ErrVersionConflict is the cause of an Initialize failure.
	ErrVersionConflict = stderrs.New("conflicting module version")
	// ErrInvalidConfig is the cause of fallback configuration load or validation failures.
	ErrInvalidConfig = stderrs.New("invalid logging configuration")
)

// IsInvalidProvider reports whether err was caused by a rejected provider.
func IsInvalidProvider(err error) bool { return hasCause(err, ErrInvalidProvider) }

// IsVersionConflict reports whether err was caused by a module version conflict.
func IsVersionConflict(err error) bool { return hasCause(err, ErrVersionConflict) }

// IsInvalidConfig reports whether err was caused by an unusable fallback configuration.
func IsInvalidConfig(err error) bool { return hasCause(err, ErrInvalidConfig) }
