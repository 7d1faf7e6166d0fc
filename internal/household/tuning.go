// Package household composes the ages of people living together: single
// person households drawn from the head-age-by-size table, then larger
// households whose members are conditioned on the reference person's age
// through the household contact matrix, with calibration corrections for
// cohorts the matrix under-represents.
package household

// TuningConfig names the population-specific correction constants. The
// defaults reproduce the reference location; recalibrating for another
// population means overriding these, not editing sampling code.
type TuningConfig struct {
	// YoungAdultCoin is the probability of redirecting a sampled member age
	// in (YoungAdultLo, YoungAdultHi] to the RedirectLo..RedirectHi range.
	// Household contact matrices reflect family mixing and under-produce
	// young adults in shared non-family housing; this coin compensates.
	YoungAdultCoin float64 `yaml:"young_adult_coin" env-default:"0.15"`
	YoungAdultLo   int     `yaml:"young_adult_lo" env-default:"5"`
	YoungAdultHi   int     `yaml:"young_adult_hi" env-default:"20"`
	RedirectLo     int     `yaml:"redirect_lo" env-default:"25"`
	RedirectHi     int     `yaml:"redirect_hi" env-default:"32"`

	// ResampleOrder and ResampleCoins drive the per-age corrective
	// resampler. Ages are checked in ResampleOrder against the current age
	// after each step, matching the reference calibration. Zero-probability
	// entries are retained so a recalibration only has to change numbers.
	ResampleOrder []int           `yaml:"resample_order"`
	ResampleCoins map[int]float64 `yaml:"resample_coins"`
}

// DefaultTuning returns the reference-location constants.
func DefaultTuning() TuningConfig {
	return TuningConfig{
		YoungAdultCoin: 0.15,
		YoungAdultLo:   5,
		YoungAdultHi:   20,
		RedirectLo:     25,
		RedirectHi:     32,
		ResampleOrder:  []int{7, 6, 5, 0, 1, 2, 4},
		ResampleCoins: map[int]float64{
			7: 0.25,
			6: 0.25,
			5: 0.2,
			0: 0.0,
			1: 0.0,
			2: 0.0,
			4: 0.0,
		},
	}
}
