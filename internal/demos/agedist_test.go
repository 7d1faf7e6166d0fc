package demos

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeDistrSampleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	w := make([]float64, MaxAge+1)
	for a := 20; a <= 29; a++ {
		w[a] = 1
	}
	d := NewAgeDistr(w)

	for i := 0; i < 200; i++ {
		a, err := d.SampleRange(rng, 0, MaxAge)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a, 20)
		assert.LessOrEqual(t, a, 29)
	}

	// Restricting the range restricts the draw.
	for i := 0; i < 100; i++ {
		a, err := d.SampleRange(rng, 25, 27)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a, 25)
		assert.LessOrEqual(t, a, 27)
	}
}

func TestAgeDistrDepletedRangeFailsLoudly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	w := make([]float64, MaxAge+1)
	w[40] = 1
	d := NewAgeDistr(w)

	_, err := d.SampleRange(rng, 0, 30)
	require.ErrorIs(t, err, ErrDepletedDistribution)

	d.Deplete(40, 1)
	_, err = d.Sample(rng)
	require.ErrorIs(t, err, ErrDepletedDistribution)
}

func TestAgeDistrDepleteAndTotal(t *testing.T) {
	w := make([]float64, MaxAge+1)
	w[10] = 0.5
	w[20] = 0.5
	d := NewAgeDistr(w)

	require.InDelta(t, 1.0, d.Total(), 1e-12)

	d.Deplete(10, 0.2)
	assert.InDelta(t, 0.3, d.Weight(10), 1e-12)
	assert.InDelta(t, 0.8, d.Total(), 1e-12)

	// Depletion clamps at zero rather than going negative.
	d.Deplete(10, 5)
	assert.Zero(t, d.Weight(10))
}

func TestAgeDistrNormalize(t *testing.T) {
	d := NewAgeDistrFromCounts(map[int]int{5: 30, 6: 10})
	d.Normalize()
	assert.InDelta(t, 1.0, d.Total(), 1e-12)
	assert.InDelta(t, 0.75, d.Weight(5), 1e-12)
	assert.InDelta(t, 0.25, d.Weight(6), 1e-12)
}

func TestAgeDistrClone(t *testing.T) {
	w := make([]float64, MaxAge+1)
	w[30] = 1
	d := NewAgeDistr(w)

	c := d.Clone()
	c.Deplete(30, 1)
	assert.InDelta(t, 1.0, d.Weight(30), 1e-12)
	assert.Zero(t, c.Weight(30))
}

func TestSampleIndexWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	weights := []float64{0, 0, 3, 0, 1}
	counts := make([]int, len(weights))
	for i := 0; i < 4000; i++ {
		idx, err := SampleIndex(rng, weights)
		require.NoError(t, err)
		counts[idx]++
	}
	assert.Zero(t, counts[0])
	assert.Zero(t, counts[1])
	assert.Zero(t, counts[3])
	// index 2 carries 3x the weight of index 4
	assert.Greater(t, counts[2], counts[4]*2)

	_, err := SampleIndex(rng, []float64{0, 0})
	require.ErrorIs(t, err, ErrDepletedDistribution)
}
