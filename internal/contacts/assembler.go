package contacts

import (
	"math/rand"
	"sort"
)

// Groups carries the identifier-tagged group lists the assembler links up.
// HomesByUID must list facility resident groups first: the first
// len(FacilitiesByUID) entries are facilities, the remainder ordinary
// households.
type Groups struct {
	HomesByUID      [][]string
	SchoolsByUID    [][]string
	WorkplacesByUID [][]string
	FacilitiesByUID [][]string
	StaffByUID      [][]string
}

// BuildPopulation creates the per-uid population records and fills every
// contact layer. Sex is drawn uniformly from the shared stream; uids are
// visited in sorted order so the draw sequence is reproducible.
//
// Facility residents are linked to co-residents and staff on the facility
// layer; staff are linked to residents and co-staff on their workplace
// layer (their household comes from the ordinary homes they live in).
func BuildPopulation(rng *rand.Rand, ageByUID map[string]int, g Groups) map[string]*Person {
	pop := make(map[string]*Person, len(ageByUID))

	uids := make([]string, 0, len(ageByUID))
	for uid := range ageByUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	for _, uid := range uids {
		pop[uid] = newPerson(uid, ageByUID[uid], Sex(rng.Intn(2)))
	}

	for i, facility := range g.FacilitiesByUID {
		staff := g.StaffByUID[i]
		for _, uid := range facility {
			p := pop[uid]
			p.link(LayerFacility, facility)
			p.link(LayerFacility, staff)
			p.FacilityResident = true
		}
		for _, uid := range staff {
			p := pop[uid]
			p.link(LayerWork, facility)
			p.link(LayerWork, staff)
			p.FacilityStaff = true
		}
	}

	// Facility resident groups lead the home list; only the rest are
	// ordinary households.
	homes := g.HomesByUID[len(g.FacilitiesByUID):]
	for _, home := range homes {
		for _, uid := range home {
			pop[uid].link(LayerHousehold, home)
		}
	}

	for _, school := range g.SchoolsByUID {
		for _, uid := range school {
			pop[uid].link(LayerSchool, school)
		}
	}

	for _, workplace := range g.WorkplacesByUID {
		for _, uid := range workplace {
			pop[uid].link(LayerWork, workplace)
		}
	}

	return pop
}
