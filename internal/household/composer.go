package household

import (
	"fmt"
	"math/rand"

	"github.com/talgya/synthnet/internal/demos"
)

// Composer generates household age sequences. Position 0 of every household
// is the reference (head) person, whose age is drawn from the
// size-conditioned head-age table; all other members are conditioned on the
// head's bracket through the household contact matrix.
//
// The composer samples from a working AgeDistr owned by the caller and
// depletes it as single-person households are allocated, so no age mass is
// spent twice across household sizes.
type Composer struct {
	brackets     demos.Brackets
	ageIndex     []int
	headBrackets demos.Brackets
	headBySize   [][]float64
	sizeDistr    []float64
	householdMix [][]float64
	tuning       TuningConfig
	resampler    *Resampler
}

// NewComposer wires a composer from location tables and tuning constants.
func NewComposer(ld *demos.LocationData, tuning TuningConfig) (*Composer, error) {
	mix, ok := ld.Matrix()[demos.SettingHousehold]
	if !ok {
		return nil, fmt.Errorf("location data has no household contact matrix: %w", demos.ErrBadLocationData)
	}
	b := ld.Brackets()
	return &Composer{
		brackets:     b,
		ageIndex:     b.AgeIndex(),
		headBrackets: ld.HeadBrackets(),
		headBySize:   ld.HeadAgeBySize,
		sizeDistr:    ld.HouseholdSizeDistr,
		householdMix: mix,
		tuning:       tuning,
		resampler:    NewResampler(tuning),
	}, nil
}

// SizeCounts draws household-size counts whose member total is exactly n.
// Sizes are drawn from the household-size distribution until the remaining
// person budget is spent; the final draw is truncated to the budget.
func (c *Composer) SizeCounts(rng *rand.Rand, n int) ([]int, error) {
	counts := make([]int, len(c.sizeDistr))
	remaining := n
	for remaining > 0 {
		i, err := demos.SampleIndex(rng, c.sizeDistr)
		if err != nil {
			return nil, fmt.Errorf("draw household size: %w", err)
		}
		size := i + 1
		if size > remaining {
			size = remaining
		}
		counts[size-1]++
		remaining -= size
	}
	return counts, nil
}

// HeadAge draws a reference-person age for a household of the given size:
// a head-age bracket from the size-conditioned row, then an age within that
// bracket weighted by the working distribution.
func (c *Composer) HeadAge(rng *rand.Rand, size int, d *demos.AgeDistr) (int, error) {
	bi, err := demos.SampleIndex(rng, c.headBySize[size-1])
	if err != nil {
		return 0, fmt.Errorf("head-age bracket for size %d: %w", size, err)
	}
	lo, hi := c.headBrackets.Span(bi)
	age, err := d.SampleRange(rng, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("head age for size %d: %w", size, err)
	}
	return age, nil
}

// ComposeLivingAlone generates all size-1 households and depletes each drawn
// head's mass (1/n) from the working distribution, so later sizes draw from
// the reduced pool.
func (c *Composer) ComposeLivingAlone(rng *rand.Rand, count, n int, d *demos.AgeDistr) ([][]int, error) {
	homes := make([][]int, 0, count)
	for h := 0; h < count; h++ {
		age, err := c.HeadAge(rng, 1, d)
		if err != nil {
			return nil, err
		}
		homes = append(homes, []int{age})
		d.Deplete(age, 1.0/float64(n))
	}
	return homes, nil
}

// composeOfSize generates count households of one size greater than 1.
func (c *Composer) composeOfSize(rng *rand.Rand, size, count int, d *demos.AgeDistr) ([][]int, error) {
	homes := make([][]int, 0, count)
	for h := 0; h < count; h++ {
		head, err := c.HeadAge(rng, size, d)
		if err != nil {
			return nil, err
		}
		home := make([]int, size)
		home[0] = head

		row := c.householdMix[c.ageIndex[head]]
		for m := 1; m < size; m++ {
			age, err := c.memberAge(rng, row, d)
			if err != nil {
				return nil, err
			}
			home[m] = age
		}
		homes = append(homes, home)
	}
	return homes, nil
}

// memberAge draws one non-reference member age: a contact bracket from the
// head's matrix row, an age within it from the working distribution, then
// the young-adult redirect and the corrective resampler.
func (c *Composer) memberAge(rng *rand.Rand, row []float64, d *demos.AgeDistr) (int, error) {
	bi, err := demos.SampleIndex(rng, row)
	if err != nil {
		return 0, fmt.Errorf("member bracket: %w", err)
	}
	lo, hi := c.brackets.Span(bi)
	age, err := d.SampleRange(rng, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("member age: %w", err)
	}

	if age > c.tuning.YoungAdultLo && age <= c.tuning.YoungAdultHi {
		if rng.Float64() < c.tuning.YoungAdultCoin {
			age, err = d.SampleRange(rng, c.tuning.RedirectLo, c.tuning.RedirectHi)
			if err != nil {
				return 0, fmt.Errorf("young-adult redirect: %w", err)
			}
		}
	}

	return c.resampler.Resample(d, rng, age)
}

// ComposeAll generates every household for a population of n people and
// returns them as one flat, shuffled sequence so downstream identifier
// assignment does not correlate household size with generation order.
func (c *Composer) ComposeAll(rng *rand.Rand, n int, d *demos.AgeDistr) ([][]int, error) {
	counts, err := c.SizeCounts(rng, n)
	if err != nil {
		return nil, err
	}

	homes, err := c.ComposeLivingAlone(rng, counts[0], n, d)
	if err != nil {
		return nil, err
	}
	for s := 2; s <= len(counts); s++ {
		sized, err := c.composeOfSize(rng, s, counts[s-1], d)
		if err != nil {
			return nil, err
		}
		homes = append(homes, sized...)
	}

	rng.Shuffle(len(homes), func(i, j int) {
		homes[i], homes[j] = homes[j], homes[i]
	})
	return homes, nil
}
