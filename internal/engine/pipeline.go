// Package engine orchestrates the population synthesis pipeline: facility
// calibration, facility construction, household composition over the
// remaining population, identifier assignment, collaborator school and
// workplace assignment, facility staffing, and contact-graph assembly.
//
// The pipeline is sequential by design. Its stages hand the working age
// distribution and the worker pool from one owner to the next; all
// randomness comes from one seeded stream, so a seed fully determines the
// generated population.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/synthnet/internal/contacts"
	"github.com/talgya/synthnet/internal/demos"
	"github.com/talgya/synthnet/internal/household"
	"github.com/talgya/synthnet/internal/ltcf"
	"github.com/talgya/synthnet/internal/roster"
)

// SchoolAssigner places school-aged individuals into school groups. The
// enrollment model behind it is a collaborator: deterministic given the
// shared stream, opaque to this package.
type SchoolAssigner interface {
	AssignSchools(rng *rand.Rand, ageByUID map[string]int) ([][]string, error)
}

// WorkplaceAssigner places the remaining worker pool into workplace groups
// after facility staffing has consumed its share.
type WorkplaceAssigner interface {
	AssignWorkplaces(rng *rand.Rand, pool *ltcf.WorkerPool) ([][]string, error)
}

// Pipeline wires the generation stages for one location.
type Pipeline struct {
	Location    *demos.LocationData
	Calibration ltcf.CalibrationConfig
	Tuning      household.TuningConfig

	// Optional collaborators; when nil the corresponding layers stay empty
	// (facility staff still receive their workplace layer).
	Schools    SchoolAssigner
	Workplaces WorkplaceAssigner

	// RNG is the single shared pseudo-random stream. Seed it once before
	// Generate; reproducibility requires nothing else.
	RNG *rand.Rand
}

// Result is the complete generated population.
type Result struct {
	// Population holds the final per-uid records with all contact layers.
	Population map[string]*contacts.Person

	AgeByUID map[string]int

	// HomesAges and HomesByUID list facility resident groups first, then
	// ordinary households, aligned by index.
	HomesAges  [][]int
	HomesByUID [][]string

	Facilities      []ltcf.Facility
	FacilitiesByUID [][]string
	Staff           []ltcf.StaffGroup

	SchoolsByUID    [][]string
	WorkplacesByUID [][]string

	ExpectedUsersByAge map[int]int
}

// StaffByUID returns per-facility staff uid lists aligned with Facilities.
func (r *Result) StaffByUID() [][]string {
	out := make([][]string, 0, len(r.Staff))
	for _, g := range r.Staff {
		out = append(out, g.UIDs)
	}
	return out
}

// Generate runs the whole pipeline for a population of n people. It either
// returns a complete, internally consistent population or an error; there is
// no partial success.
func (p *Pipeline) Generate(n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("population size %d", n)
	}
	if p.RNG == nil {
		return nil, errors.New("pipeline needs a seeded random stream")
	}
	if p.Location == nil {
		return nil, errors.New("pipeline needs location data")
	}
	if err := p.Location.Validate(); err != nil {
		return nil, err
	}

	// Facility calibration runs first: its residents are removed from the
	// age pool before any household is composed.
	calibrator, err := ltcf.NewCalibrator(p.Calibration)
	if err != nil {
		return nil, err
	}
	usersByAge, err := calibrator.ExpectedUsersByAge(n, p.Location)
	if err != nil {
		return nil, err
	}

	residentPool := ltcf.BuildResidentPool(p.RNG, usersByAge)
	facilities, err := ltcf.PartitionFacilities(p.RNG, residentPool, p.Calibration.FacilitySizes)
	if err != nil {
		return nil, err
	}
	nResidents := ltcf.ResidentCount(facilities)
	slog.Info("facilities built", "facilities", len(facilities), "residents", nResidents)

	adjusted, err := ltcf.AdjustedAgeCount(p.Location.ExpectedAgeCount(n), usersByAge)
	if err != nil {
		return nil, err
	}
	workingDistr := demos.NewAgeDistrFromCounts(adjusted)
	workingDistr.Normalize()

	composer, err := household.NewComposer(p.Location, p.Tuning)
	if err != nil {
		return nil, err
	}
	homes, err := composer.ComposeAll(p.RNG, n-nResidents, workingDistr)
	if err != nil {
		return nil, err
	}
	slog.Info("households composed", "households", len(homes), "people", n-nResidents)

	// Facility resident groups lead the group list so downstream stages can
	// recover them by position.
	allGroups := make([][]int, 0, len(facilities)+len(homes))
	for _, f := range facilities {
		allGroups = append(allGroups, f.Ages)
	}
	allGroups = append(allGroups, homes...)

	uuid.SetRand(p.RNG)
	defer uuid.SetRand(nil)
	homesByUID, ageByUID := roster.AssignUIDs(allGroups)
	facilitiesByUID := homesByUID[:len(facilities)]

	var schoolsByUID [][]string
	if p.Schools != nil {
		schoolsByUID, err = p.Schools.AssignSchools(p.RNG, ageByUID)
		if err != nil {
			return nil, fmt.Errorf("school assignment: %w", err)
		}
	}
	slog.Info("schools assigned", "schools", len(schoolsByUID))

	workerPool := p.buildWorkerPool(ageByUID, schoolsByUID, facilitiesByUID)
	staff, err := ltcf.AssignStaff(p.RNG, facilities, p.Calibration.ResidentStaffRatios,
		workerPool, p.Calibration.StaffAgeLo, p.Calibration.StaffAgeHi)
	if err != nil {
		return nil, err
	}
	slog.Info("facility staff assigned", "staff", staffCount(staff), "workers_left", workerPool.Size())

	var workplacesByUID [][]string
	if p.Workplaces != nil {
		workplacesByUID, err = p.Workplaces.AssignWorkplaces(p.RNG, workerPool)
		if err != nil {
			return nil, fmt.Errorf("workplace assignment: %w", err)
		}
	}
	slog.Info("workplaces assigned", "workplaces", len(workplacesByUID))

	result := &Result{
		AgeByUID:           ageByUID,
		HomesAges:          allGroups,
		HomesByUID:         homesByUID,
		Facilities:         facilities,
		FacilitiesByUID:    facilitiesByUID,
		Staff:              staff,
		SchoolsByUID:       schoolsByUID,
		WorkplacesByUID:    workplacesByUID,
		ExpectedUsersByAge: usersByAge,
	}
	result.Population = contacts.BuildPopulation(p.RNG, ageByUID, contacts.Groups{
		HomesByUID:      homesByUID,
		SchoolsByUID:    schoolsByUID,
		WorkplacesByUID: workplacesByUID,
		FacilitiesByUID: facilitiesByUID,
		StaffByUID:      result.StaffByUID(),
	})
	return result, nil
}

// buildWorkerPool collects worker-eligible uids: anyone with a non-zero
// employment rate at their age who is neither a student nor a facility
// resident. The per-age quota is the employment rate applied to that age's
// population, capped by the eligible supply.
func (p *Pipeline) buildWorkerPool(ageByUID map[string]int, schools, facilities [][]string) *ltcf.WorkerPool {
	excluded := make(map[string]struct{})
	for _, school := range schools {
		for _, uid := range school {
			excluded[uid] = struct{}{}
		}
	}
	for _, facility := range facilities {
		for _, uid := range facility {
			excluded[uid] = struct{}{}
		}
	}

	byAge := roster.UIDsByAge(ageByUID)
	ages := make([]int, 0, len(byAge))
	for age := range byAge {
		ages = append(ages, age)
	}
	sort.Ints(ages)

	pool := ltcf.NewWorkerPool()
	for _, age := range ages {
		rate := p.Location.EmploymentRate(age)
		if rate <= 0 {
			continue
		}
		eligible := 0
		for _, uid := range byAge[age] {
			if _, skip := excluded[uid]; skip {
				continue
			}
			pool.Add(uid, age)
			eligible++
		}
		quota := int(math.Ceil(rate * float64(len(byAge[age]))))
		if quota > eligible {
			quota = eligible
		}
		pool.SetQuota(age, quota)
	}
	return pool
}

func staffCount(groups []ltcf.StaffGroup) int {
	var n int
	for _, g := range groups {
		n += len(g.UIDs)
	}
	return n
}
