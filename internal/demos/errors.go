package demos

import "errors"

var (
	// ErrDepletedDistribution is returned when a sampling step requests mass
	// from an age range whose remaining weight is zero. The pipeline treats
	// this as fatal: retrying a draw from an exhausted distribution cannot
	// succeed without re-deriving the distribution.
	ErrDepletedDistribution = errors.New("depleted age distribution")

	// ErrBadLocationData is returned when location tables fail validation
	// (missing brackets, rows that do not match bracket counts, masses that
	// do not form a distribution).
	ErrBadLocationData = errors.New("malformed location data")
)
