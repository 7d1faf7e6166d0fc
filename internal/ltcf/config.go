// Package ltcf models the long-term-care-facility population: calibrating
// expected facility users per year of age from multi-source survey data,
// partitioning the resident pool into facilities of empirically-distributed
// size, and assigning staff from the worker-eligible pool.
package ltcf

// State bracket keys used by the census tables and the survey remap.
const (
	Bracket60to64  = "60-64"
	Bracket65to74  = "65-74"
	Bracket75to84  = "75-84"
	Bracket85to100 = "85-100"
)

// FacilitySurvey holds one facility type's usage figures from the source
// survey: total users over the survey period and the percentage of users in
// each survey age bracket.
type FacilitySurvey struct {
	Name       string             `yaml:"name"`
	TotalUsers float64            `yaml:"total_users"`
	AgePerc    map[string]float64 `yaml:"age_perc"` // percent per state bracket key
}

// StateCensus holds one reference year of state-level population figures:
// total population and the percentage of it in each elderly bracket.
type StateCensus struct {
	Year        int                `yaml:"year"`
	Population  float64            `yaml:"population"`
	ElderlyPerc map[string]float64 `yaml:"elderly_perc"` // percent per state bracket key
}

// FineBracket maps a local age range onto the state bracket whose usage
// percentage it inherits. The survey reports four coarse brackets; the local
// population uses six finer ones, each reusing its parent's percentage.
type FineBracket struct {
	Lo     int    `yaml:"lo"`
	Hi     int    `yaml:"hi"`
	Parent string `yaml:"parent"`
}

// CalibrationConfig carries every population-specific constant of the
// facility model. The defaults reproduce the reference location (Seattle
// metro against Washington state figures); other locations override the
// tables, not the algorithm.
type CalibrationConfig struct {
	Facilities []FacilitySurvey `yaml:"facilities"`

	// StateBase is the census year the survey counts were collected in;
	// StateCurrent is the calibration year. Their elderly-population ratio
	// is the growth factor applied to survey totals.
	StateBase    StateCensus `yaml:"state_base"`
	StateCurrent StateCensus `yaml:"state_current"`

	// LocalPopulation is the real population of the target location in the
	// calibration year, used to scale state figures down to the location.
	LocalPopulation float64 `yaml:"local_population" env:"SYNTHNET_LOCAL_POP"`

	// LocalElderlyBrackets are the location age-distribution bracket indexes
	// counted as elderly when estimating the local elderly population.
	LocalElderlyBrackets []int `yaml:"local_elderly_brackets"`

	// FineBrackets remap state usage percentages onto local age ranges.
	FineBrackets []FineBracket `yaml:"fine_brackets"`

	// FacilitySizes is the empirical resident-count sample facilities are
	// drawn from (with replacement).
	FacilitySizes []int `yaml:"facility_sizes"`

	// ResidentStaffRatios is the empirical resident:staff ratio sample.
	ResidentStaffRatios []float64 `yaml:"resident_staff_ratios"`

	// StaffAgeLo/Hi bound the worker ages eligible for facility staffing.
	StaffAgeLo int `yaml:"staff_age_lo" env-default:"20"`
	StaffAgeHi int `yaml:"staff_age_hi" env-default:"59"`
}

// DefaultCalibration returns the reference-location constants: facility-type
// usage splits in the shape of the national long-term-care survey tables,
// Washington state census figures for 2016 and 2018, and the King County
// facility size and staffing samples.
func DefaultCalibration() CalibrationConfig {
	return CalibrationConfig{
		Facilities: []FacilitySurvey{
			{
				Name:       "hospice",
				TotalUsers: 33107,
				AgePerc: map[string]float64{
					Bracket60to64:  4.9,
					Bracket65to74:  16.1,
					Bracket75to84:  28.6,
					Bracket85to100: 50.4,
				},
			},
			{
				Name:       "nursing home",
				TotalUsers: 16095,
				AgePerc: map[string]float64{
					Bracket60to64:  14.9,
					Bracket65to74:  21.0,
					Bracket75to84:  29.9,
					Bracket85to100: 34.2,
				},
			},
			{
				Name:       "residential care community",
				TotalUsers: 31327,
				AgePerc: map[string]float64{
					Bracket60to64:  6.5,
					Bracket65to74:  13.5,
					Bracket75to84:  29.4,
					Bracket85to100: 50.6,
				},
			},
		},
		StateBase: StateCensus{
			Year:       2016,
			Population: 7288000,
			ElderlyPerc: map[string]float64{
				Bracket60to64:  6.3,
				Bracket65to74:  9.0,
				Bracket75to84:  4.0,
				Bracket85to100: 1.8,
			},
		},
		StateCurrent: StateCensus{
			Year:       2018,
			Population: 7535591,
			ElderlyPerc: map[string]float64{
				Bracket60to64:  6.3,
				Bracket65to74:  9.5,
				Bracket75to84:  4.3,
				Bracket85to100: 1.8,
			},
		},
		LocalPopulation:      2.25e6,
		LocalElderlyBrackets: []int{12, 13, 14, 15},
		FineBrackets: []FineBracket{
			{Lo: 60, Hi: 64, Parent: Bracket60to64},
			{Lo: 65, Hi: 69, Parent: Bracket65to74},
			{Lo: 70, Hi: 74, Parent: Bracket65to74},
			{Lo: 75, Hi: 79, Parent: Bracket75to84},
			{Lo: 80, Hi: 84, Parent: Bracket75to84},
			{Lo: 85, Hi: 100, Parent: Bracket85to100},
		},
		FacilitySizes: []int{
			21, 28, 34, 40, 45, 48, 52, 56,
			60, 63, 67, 71, 75, 82, 90, 104,
		},
		ResidentStaffRatios: []float64{
			1.4, 1.8, 2.2, 2.6, 3.0, 3.4,
			3.9, 4.4, 5.0, 5.7, 6.5, 7.8,
		},
		StaffAgeLo: 20,
		StaffAgeHi: 59,
	}
}
