package demos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation() *LocationData {
	// Four coarse brackets covering 0..100.
	ranges := [][2]int{{0, 19}, {20, 59}, {60, 84}, {85, 100}}
	uniform := func(n int) []float64 {
		row := make([]float64, n)
		for i := range row {
			row[i] = 1
		}
		return row
	}
	return &LocationData{
		Name:               "testville",
		AgeBracketRanges:   ranges,
		AgeBracketDistr:    []float64{0.25, 0.5, 0.2, 0.05},
		HouseholdSizeDistr: []float64{0.3, 0.4, 0.2, 0.1},
		HeadAgeBracketRanges: [][2]int{
			{18, 44}, {45, 100},
		},
		HeadAgeBySize: [][]float64{
			uniform(2), uniform(2), uniform(2), uniform(2),
		},
		ContactMatrices: map[string][][]float64{
			"H": {uniform(4), uniform(4), uniform(4), uniform(4)},
		},
		EmploymentRates: []RateRange{{Lo: 20, Hi: 59, Rate: 0.6}},
	}
}

func TestLocationValidate(t *testing.T) {
	ld := testLocation()
	require.NoError(t, ld.Validate())

	bad := testLocation()
	bad.AgeBracketDistr = bad.AgeBracketDistr[:2]
	require.ErrorIs(t, bad.Validate(), ErrBadLocationData)

	gap := testLocation()
	gap.AgeBracketRanges = [][2]int{{0, 19}, {21, 100}} // age 20 uncovered
	gap.AgeBracketDistr = []float64{0.5, 0.5}
	require.ErrorIs(t, gap.Validate(), ErrBadLocationData)

	ragged := testLocation()
	ragged.ContactMatrices["H"][1] = []float64{1}
	require.ErrorIs(t, ragged.Validate(), ErrBadLocationData)
}

func TestSingleYearDistrSpreadsBracketMass(t *testing.T) {
	ld := testLocation()
	d := ld.SingleYearDistr()

	require.InDelta(t, 1.0, d.Total(), 1e-9)
	// bracket 0 spans 20 years with mass 0.25
	assert.InDelta(t, 0.0125, d.Weight(0), 1e-12)
	assert.InDelta(t, 0.0125, d.Weight(19), 1e-12)
	// bracket 3 spans 16 years with mass 0.05
	assert.InDelta(t, 0.05/16, d.Weight(92), 1e-12)
}

func TestExpectedAgeCount(t *testing.T) {
	ld := testLocation()
	counts := ld.ExpectedAgeCount(10000)
	// bracket 1: mass 0.5 over 40 years -> 125 per age
	assert.Equal(t, 125, counts[30])
	var total int
	for _, c := range counts {
		total += c
	}
	assert.InDelta(t, 10000, total, 101) // truncation loses at most 1 per age
}

func TestEmploymentRate(t *testing.T) {
	ld := testLocation()
	assert.Equal(t, 0.6, ld.EmploymentRate(35))
	assert.Zero(t, ld.EmploymentRate(12))
	assert.Zero(t, ld.EmploymentRate(70))
}

func TestLoadLocationDataYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loc.yaml")
	yaml := `
name: yamltown
age_brackets:
  - [0, 49]
  - [50, 100]
age_bracket_distr: [0.6, 0.4]
household_size_distr: [0.5, 0.5]
head_age_brackets:
  - [18, 100]
head_age_by_size:
  - [1.0]
  - [1.0]
contact_matrices:
  H:
    - [1.0, 1.0]
    - [1.0, 1.0]
employment_rates:
  - {lo: 20, hi: 59, rate: 0.7}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	ld, err := LoadLocationData(path)
	require.NoError(t, err)
	assert.Equal(t, "yamltown", ld.Name)
	assert.Len(t, ld.AgeBracketRanges, 2)
	assert.Equal(t, 0.7, ld.EmploymentRate(30))

	_, err = LoadLocationData(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
