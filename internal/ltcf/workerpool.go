package ltcf

import (
	"fmt"
	"math/rand"

	"github.com/talgya/synthnet/internal/demos"
)

// WorkerPool tracks the worker-eligible population by uid and by age in one
// structure, so removing a worker updates both views atomically and a uid
// can never be handed out twice. The quota per age (how many workers at
// that age are still to be placed anywhere) drives the staff age draw.
type WorkerPool struct {
	uidsByAge map[int][]string
	quota     map[int]int
	size      int
}

// NewWorkerPool returns an empty pool.
func NewWorkerPool() *WorkerPool {
	return &WorkerPool{
		uidsByAge: make(map[int][]string),
		quota:     make(map[int]int),
	}
}

// Add registers one eligible worker.
func (p *WorkerPool) Add(uid string, age int) {
	p.uidsByAge[age] = append(p.uidsByAge[age], uid)
	p.size++
}

// SetQuota records how many workers at an age remain to be assigned.
func (p *WorkerPool) SetQuota(age, count int) {
	p.quota[age] = count
}

// Quota returns the remaining assignment quota at an age.
func (p *WorkerPool) Quota(age int) int {
	return p.quota[age]
}

// Size returns the number of unassigned workers across all ages.
func (p *WorkerPool) Size() int {
	return p.size
}

// UIDsAt returns the unassigned worker uids at an age, in pool order.
func (p *WorkerPool) UIDsAt(age int) []string {
	return p.uidsByAge[age]
}

// SampleAge draws an age in [lo, hi] weighted by remaining quota,
// renormalized over ages that still have workers available.
func (p *WorkerPool) SampleAge(rng *rand.Rand, lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("empty staff age range %d-%d: %w", lo, hi, ErrPoolExhausted)
	}
	weights := make([]float64, hi-lo+1)
	var total float64
	for a := lo; a <= hi; a++ {
		if len(p.uidsByAge[a]) == 0 || p.quota[a] <= 0 {
			continue
		}
		weights[a-lo] = float64(p.quota[a])
		total += weights[a-lo]
	}
	if total <= 0 {
		return 0, fmt.Errorf("no assignable workers aged %d-%d: %w", lo, hi, ErrPoolExhausted)
	}
	i, err := demos.SampleIndex(rng, weights)
	if err != nil {
		return 0, fmt.Errorf("staff age draw: %w", err)
	}
	return lo + i, nil
}

// PopAt removes and returns the next worker uid at an age, decrementing the
// age's quota. Exactly one worker is consumed per call.
func (p *WorkerPool) PopAt(age int) (string, error) {
	uids := p.uidsByAge[age]
	if len(uids) == 0 {
		return "", fmt.Errorf("no workers left at age %d: %w", age, ErrPoolExhausted)
	}
	uid := uids[0]
	p.uidsByAge[age] = uids[1:]
	p.quota[age]--
	p.size--
	return uid, nil
}
