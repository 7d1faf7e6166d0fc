package ltcf

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Facility holds the resident ages of one long-term-care facility.
type Facility struct {
	Ages []int
}

// StaffGroup holds the staff assigned to one facility, aligned by index with
// the facility slice that produced it.
type StaffGroup struct {
	Ages  []int
	UIDs  []string
	Ratio float64 // sampled resident:staff ratio
}

// BuildResidentPool expands the expected-users-by-age table into a flat,
// shuffled multiset of resident ages. Ages are expanded in sorted order
// before shuffling so the result depends only on the RNG stream.
func BuildResidentPool(rng *rand.Rand, expected map[int]int) []int {
	ages := make([]int, 0, len(expected))
	for a := range expected {
		ages = append(ages, a)
	}
	sort.Ints(ages)

	pool := make([]int, 0)
	for _, a := range ages {
		for i := 0; i < expected[a]; i++ {
			pool = append(pool, a)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

// PartitionFacilities splits the resident pool into facilities. Each
// facility's size is drawn with replacement from the empirical size sample;
// residents are taken off the front of the shuffled pool. The final facility
// is truncated to whatever remains — a short-changed last facility is
// accepted, not an error.
func PartitionFacilities(rng *rand.Rand, pool []int, sizes []int) ([]Facility, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("empty facility size sample: %w", ErrMalformedSurvey)
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("facility size sample holds %d: %w", s, ErrMalformedSurvey)
		}
	}

	var facilities []Facility
	for len(pool) > 0 {
		size := sizes[rng.Intn(len(sizes))]
		if size > len(pool) {
			size = len(pool)
		}
		ages := make([]int, size)
		copy(ages, pool[:size])
		facilities = append(facilities, Facility{Ages: ages})
		pool = pool[size:]
	}
	return facilities, nil
}

// ResidentCount sums residents across facilities.
func ResidentCount(facilities []Facility) int {
	var n int
	for _, f := range facilities {
		n += len(f.Ages)
	}
	return n
}

// AdjustedAgeCount subtracts the facility-placed residents from the expected
// population count per age. The result, renormalized, is the distribution
// the remaining (non-facility) household generation samples from — the
// hand-off that keeps any individual from being generated twice. A negative
// remainder means calibration demanded more facility users at an age than
// the population holds, which is a fatal mismatch.
func AdjustedAgeCount(expected map[int]int, placed map[int]int) (map[int]int, error) {
	adjusted := make(map[int]int, len(expected))
	for a, c := range expected {
		adjusted[a] = c
	}
	for a, c := range placed {
		adjusted[a] -= c
		if adjusted[a] < 0 {
			return nil, fmt.Errorf("age %d: %d facility users exceed %d expected people: %w",
				a, c, expected[a], ErrPoolExhausted)
		}
	}
	return adjusted, nil
}

// AssignStaff assigns care staff to every facility. Per facility a
// resident:staff ratio is drawn from the empirical sample and
// ceil(residents/ratio) staff are pulled from the worker pool: an age in
// [lo, hi] weighted by remaining quota, then the next uid at that age.
// Workers leave the pool as they are assigned, so no one staffs two
// facilities or later receives an ordinary workplace.
func AssignStaff(rng *rand.Rand, facilities []Facility, ratios []float64, pool *WorkerPool, lo, hi int) ([]StaffGroup, error) {
	if len(ratios) == 0 {
		return nil, fmt.Errorf("empty resident:staff ratio sample: %w", ErrMalformedSurvey)
	}

	groups := make([]StaffGroup, 0, len(facilities))
	for i, f := range facilities {
		ratio := ratios[rng.Intn(len(ratios))]
		if ratio <= 0 {
			return nil, fmt.Errorf("facility %d drew ratio %v: %w", i, ratio, ErrMalformedSurvey)
		}
		nStaff := int(math.Ceil(float64(len(f.Ages)) / ratio))

		g := StaffGroup{
			Ages:  make([]int, 0, nStaff),
			UIDs:  make([]string, 0, nStaff),
			Ratio: ratio,
		}
		for s := 0; s < nStaff; s++ {
			age, err := pool.SampleAge(rng, lo, hi)
			if err != nil {
				return nil, fmt.Errorf("facility %d staff slot %d: %w", i, s, err)
			}
			uid, err := pool.PopAt(age)
			if err != nil {
				return nil, fmt.Errorf("facility %d staff slot %d: %w", i, s, err)
			}
			g.Ages = append(g.Ages, age)
			g.UIDs = append(g.UIDs, uid)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
