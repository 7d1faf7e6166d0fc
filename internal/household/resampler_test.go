package household

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/synthnet/internal/demos"
)

func uniformDistr() *demos.AgeDistr {
	w := make([]float64, demos.MaxAge+1)
	for a := range w {
		w[a] = 1.0 / float64(len(w))
	}
	return demos.NewAgeDistr(w)
}

func TestResamplerZeroCoinAgesAreNoOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewResampler(DefaultTuning())
	d := uniformDistr()

	for _, age := range []int{0, 1, 2, 4} {
		for i := 0; i < 50; i++ {
			got, err := r.Resample(d, rng, age)
			require.NoError(t, err)
			assert.Equal(t, age, got, "zero-probability age must never be redrawn")
		}
	}
}

func TestResamplerUnlistedAgesPassThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	r := NewResampler(DefaultTuning())
	d := uniformDistr()

	for _, age := range []int{3, 8, 30, 77, 100} {
		got, err := r.Resample(d, rng, age)
		require.NoError(t, err)
		assert.Equal(t, age, got)
	}
}

func TestResamplerCertainCoinRedraws(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tuning := DefaultTuning()
	tuning.ResampleOrder = []int{6}
	tuning.ResampleCoins = map[int]float64{6: 1.0}
	r := NewResampler(tuning)

	// Distribution with no mass at 6: a certain redraw must move away.
	w := make([]float64, demos.MaxAge+1)
	w[40] = 1
	d := demos.NewAgeDistr(w)

	got, err := r.Resample(d, rng, 6)
	require.NoError(t, err)
	assert.Equal(t, 40, got)
}

func TestResamplerStaysInSupport(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	r := NewResampler(DefaultTuning())
	d := uniformDistr()

	for i := 0; i < 500; i++ {
		got, err := r.Resample(d, rng, 7)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, demos.MaxAge)
	}
}
