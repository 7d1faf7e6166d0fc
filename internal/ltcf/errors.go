package ltcf

import "errors"

var (
	// ErrMalformedSurvey is returned when the calibration tables are missing
	// facility types, bracket keys, or census figures. Calibration errors are
	// fatal: every later stage assumes valid calibrated tables.
	ErrMalformedSurvey = errors.New("malformed facility survey data")

	// ErrPoolExhausted is returned when facility or staff assignment asks for
	// more individuals than a pool still holds. The only tolerated shortfall
	// is the final facility, which is truncated to the remaining residents.
	ErrPoolExhausted = errors.New("assignment pool exhausted")
)
