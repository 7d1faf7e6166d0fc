package ltcf

import (
	"fmt"
	"math"
	"sort"

	"github.com/talgya/synthnet/internal/demos"
)

// stateBrackets lists the four coarse bracket keys every survey and census
// table must cover.
var stateBrackets = []string{Bracket60to64, Bracket65to74, Bracket75to84, Bracket85to100}

// Calibrator converts the survey and census tables into an expected count of
// facility users per single year of age for a target synthetic population.
// Calibration draws no randomness: given the same tables and population
// size, the output is identical across runs.
type Calibrator struct {
	cfg CalibrationConfig
}

// NewCalibrator validates the tables and returns a calibrator.
func NewCalibrator(cfg CalibrationConfig) (*Calibrator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Calibrator{cfg: cfg}, nil
}

func validateConfig(cfg CalibrationConfig) error {
	if len(cfg.Facilities) == 0 {
		return fmt.Errorf("no facility types: %w", ErrMalformedSurvey)
	}
	for _, f := range cfg.Facilities {
		if f.TotalUsers <= 0 {
			return fmt.Errorf("facility type %q has no users: %w", f.Name, ErrMalformedSurvey)
		}
		for _, b := range stateBrackets {
			if _, ok := f.AgePerc[b]; !ok {
				return fmt.Errorf("facility type %q missing bracket %s: %w", f.Name, b, ErrMalformedSurvey)
			}
		}
	}
	for _, census := range []StateCensus{cfg.StateBase, cfg.StateCurrent} {
		if census.Population <= 0 {
			return fmt.Errorf("census year %d has no population: %w", census.Year, ErrMalformedSurvey)
		}
		for _, b := range stateBrackets {
			if _, ok := census.ElderlyPerc[b]; !ok {
				return fmt.Errorf("census year %d missing bracket %s: %w", census.Year, b, ErrMalformedSurvey)
			}
		}
	}
	if cfg.LocalPopulation <= 0 {
		return fmt.Errorf("local population not set: %w", ErrMalformedSurvey)
	}
	if len(cfg.LocalElderlyBrackets) == 0 {
		return fmt.Errorf("no local elderly brackets: %w", ErrMalformedSurvey)
	}
	for _, fb := range cfg.FineBrackets {
		if _, ok := cfg.StateCurrent.ElderlyPerc[fb.Parent]; !ok {
			return fmt.Errorf("fine bracket %d-%d has unknown parent %s: %w", fb.Lo, fb.Hi, fb.Parent, ErrMalformedSurvey)
		}
	}
	return nil
}

// elderlyPopulation sums a census year's elderly population. Brackets are
// visited in fixed order so repeated runs accumulate identically.
func elderlyPopulation(c StateCensus) float64 {
	var total float64
	for _, b := range stateBrackets {
		total += c.Population * c.ElderlyPerc[b] / 100.0
	}
	return total
}

// UsagePercentages estimates, per state bracket, the share of that bracket's
// local population living in a facility:
//
//  1. survey users per type and bracket, scaled by the local share of the
//     state's current elderly population and the elderly growth factor
//     between the survey year and the calibration year;
//  2. divided by the bracket's share of the local population.
func (c *Calibrator) UsagePercentages(ld *demos.LocationData) (map[string]float64, error) {
	cfg := c.cfg

	elderlyBase := elderlyPopulation(cfg.StateBase)
	elderlyCurrent := elderlyPopulation(cfg.StateCurrent)
	if elderlyBase <= 0 || elderlyCurrent <= 0 {
		return nil, fmt.Errorf("elderly population computes to zero: %w", ErrMalformedSurvey)
	}
	growth := elderlyCurrent / elderlyBase

	var localElderly float64
	for _, bi := range cfg.LocalElderlyBrackets {
		if bi < 0 || bi >= len(ld.AgeBracketDistr) {
			return nil, fmt.Errorf("local elderly bracket %d out of range: %w", bi, ErrMalformedSurvey)
		}
		localElderly += ld.AgeBracketDistr[bi] * cfg.LocalPopulation
	}
	localShare := localElderly / elderlyCurrent

	estUsers := make(map[string]float64, len(stateBrackets))
	for _, b := range stateBrackets {
		for _, f := range cfg.Facilities {
			estUsers[b] += f.TotalUsers * f.AgePerc[b] / 100.0 * localShare * growth
		}
	}

	usage := make(map[string]float64, len(stateBrackets))
	for _, b := range stateBrackets {
		bracketPop := cfg.StateCurrent.ElderlyPerc[b] / 100.0 * cfg.LocalPopulation
		if bracketPop <= 0 {
			return nil, fmt.Errorf("bracket %s has zero local population: %w", b, ErrMalformedSurvey)
		}
		usage[b] = estUsers[b] / bracketPop
	}
	return usage, nil
}

// ExpectedUsersByAge produces the expected count of facility residents per
// single year of age (60..100) for a synthetic population of popSize people.
// Fractional counts always round up: facility capacity is never
// under-estimated.
func (c *Calibrator) ExpectedUsersByAge(popSize int, ld *demos.LocationData) (map[int]int, error) {
	usage, err := c.UsagePercentages(ld)
	if err != nil {
		return nil, err
	}

	brackets := ld.Brackets()
	ageIndex := brackets.AgeIndex()

	fine := make([]FineBracket, len(c.cfg.FineBrackets))
	copy(fine, c.cfg.FineBrackets)
	sort.Slice(fine, func(i, j int) bool { return fine[i].Lo < fine[j].Lo })

	users := make(map[int]int)
	for _, fb := range fine {
		for a := fb.Lo; a <= fb.Hi && a <= demos.MaxAge; a++ {
			bi := ageIndex[a]
			share := ld.AgeBracketDistr[bi] / float64(brackets.Width(bi))
			expected := float64(popSize) * share * usage[fb.Parent]
			users[a] = int(math.Ceil(expected))
		}
	}
	return users, nil
}
