package demos

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// RateRange assigns one employment rate to a contiguous age range.
type RateRange struct {
	Lo   int     `yaml:"lo"`
	Hi   int     `yaml:"hi"`
	Rate float64 `yaml:"rate"`
}

// LocationData holds the empirical tables for one target location. It is the
// boundary to the raw distribution loaders: tables arrive already estimated
// (census, survey), this package only validates and samples them.
//
// Configuration comes from a YAML file; the same tags allow environment
// overrides for scalar fields.
type LocationData struct {
	Name string `yaml:"name" env:"SYNTHNET_LOCATION" env-default:"seattle_metro"`

	// AgeBracketRanges are [lo, hi] pairs covering 0..MaxAge without gaps.
	AgeBracketRanges [][2]int `yaml:"age_brackets"`

	// AgeBracketDistr is the probability mass per age bracket, summing to 1.
	AgeBracketDistr []float64 `yaml:"age_bracket_distr"`

	// HouseholdSizeDistr is the probability mass per household size; index 0
	// is size 1 and the last entry is the open-ended top size bucket.
	HouseholdSizeDistr []float64 `yaml:"household_size_distr"`

	// HeadAgeBracketRanges are [lo, hi] pairs for head-of-household ages.
	HeadAgeBracketRanges [][2]int `yaml:"head_age_brackets"`

	// HeadAgeBySize holds one row per household size (row s-1 for size s);
	// each row is a weight per head-age bracket.
	HeadAgeBySize [][]float64 `yaml:"head_age_by_size"`

	// ContactMatrices holds the setting-keyed age-mixing matrices, square in
	// the number of age brackets.
	ContactMatrices map[string][][]float64 `yaml:"contact_matrices"`

	// EmploymentRates gives the share of each age employed; ages outside all
	// ranges are treated as rate 0 (not worker-eligible).
	EmploymentRates []RateRange `yaml:"employment_rates"`
}

// LoadLocationData reads and validates a location table file.
func LoadLocationData(path string) (*LocationData, error) {
	var ld LocationData
	if err := cleanenv.ReadConfig(path, &ld); err != nil {
		return nil, fmt.Errorf("read location data %s: %w", path, err)
	}
	if err := ld.Validate(); err != nil {
		return nil, err
	}
	return &ld, nil
}

// Validate checks structural consistency between the tables.
func (ld *LocationData) Validate() error {
	nb := len(ld.AgeBracketRanges)
	if nb == 0 {
		return fmt.Errorf("no age brackets: %w", ErrBadLocationData)
	}
	if len(ld.AgeBracketDistr) != nb {
		return fmt.Errorf("age bracket distr has %d entries for %d brackets: %w",
			len(ld.AgeBracketDistr), nb, ErrBadLocationData)
	}
	idx := ld.Brackets().AgeIndex()
	for a, b := range idx {
		if b < 0 {
			return fmt.Errorf("age %d not covered by any bracket: %w", a, ErrBadLocationData)
		}
	}
	if len(ld.HouseholdSizeDistr) == 0 {
		return fmt.Errorf("no household size distribution: %w", ErrBadLocationData)
	}
	if len(ld.HeadAgeBySize) < len(ld.HouseholdSizeDistr) {
		return fmt.Errorf("head-age matrix has %d rows for %d household sizes: %w",
			len(ld.HeadAgeBySize), len(ld.HouseholdSizeDistr), ErrBadLocationData)
	}
	nhb := len(ld.HeadAgeBracketRanges)
	for s, row := range ld.HeadAgeBySize {
		if len(row) != nhb {
			return fmt.Errorf("head-age row for size %d has %d entries for %d brackets: %w",
				s+1, len(row), nhb, ErrBadLocationData)
		}
	}
	for key, m := range ld.ContactMatrices {
		if len(m) != nb {
			return fmt.Errorf("contact matrix %s has %d rows for %d brackets: %w",
				key, len(m), nb, ErrBadLocationData)
		}
		for i, row := range m {
			if len(row) != nb {
				return fmt.Errorf("contact matrix %s row %d has %d entries: %w",
					key, i, len(row), ErrBadLocationData)
			}
		}
	}
	return nil
}

// Brackets expands the bracket ranges into explicit age lists.
func (ld *LocationData) Brackets() Brackets {
	return NewBrackets(ld.AgeBracketRanges)
}

// HeadBrackets expands the head-of-household bracket ranges.
func (ld *LocationData) HeadBrackets() Brackets {
	return NewBrackets(ld.HeadAgeBracketRanges)
}

// Matrix converts the raw setting keys into a ContactMatrix.
func (ld *LocationData) Matrix() ContactMatrix {
	m := make(ContactMatrix, len(ld.ContactMatrices))
	for key, rows := range ld.ContactMatrices {
		m[Setting(key)] = rows
	}
	return m
}

// SingleYearDistr spreads each bracket's mass uniformly across its single
// years of age. The result is the working distribution household generation
// depletes as it allocates individuals.
func (ld *LocationData) SingleYearDistr() *AgeDistr {
	b := ld.Brackets()
	idx := b.AgeIndex()
	w := make([]float64, MaxAge+1)
	for a := 0; a <= MaxAge; a++ {
		bi := idx[a]
		w[a] = ld.AgeBracketDistr[bi] / float64(b.Width(bi))
	}
	return NewAgeDistr(w)
}

// ExpectedAgeCount converts the single-year distribution into an integer
// population count per age for a target population size.
func (ld *LocationData) ExpectedAgeCount(popSize int) map[int]int {
	d := ld.SingleYearDistr()
	counts := make(map[int]int, MaxAge+1)
	for a := 0; a <= MaxAge; a++ {
		counts[a] = int(float64(popSize) * d.Weight(a))
	}
	return counts
}

// EmploymentRate returns the employment rate at a single year of age.
func (ld *LocationData) EmploymentRate(age int) float64 {
	for _, r := range ld.EmploymentRates {
		if age >= r.Lo && age <= r.Hi {
			return r.Rate
		}
	}
	return 0
}
