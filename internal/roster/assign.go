// Package roster assigns opaque identifiers to generated individuals and
// persists the population: aligned age/uid roster files for inspection and
// exchange, and a SQLite store for downstream tooling.
package roster

import (
	"sort"

	"github.com/google/uuid"
)

// AssignUIDs maps every member of every age group to a fresh uid, returning
// the groups re-expressed as uids and the uid→age record. Group order is
// preserved; each individual is created exactly once, here.
//
// Callers wanting reproducible identifiers point uuid.SetRand at the
// pipeline's seeded stream before calling.
func AssignUIDs(groups [][]int) ([][]string, map[string]int) {
	byUID := make([][]string, 0, len(groups))
	ageByUID := make(map[string]int)

	for _, ages := range groups {
		uids := make([]string, 0, len(ages))
		for _, age := range ages {
			uid := uuid.NewString()
			uids = append(uids, uid)
			ageByUID[uid] = age
		}
		byUID = append(byUID, uids)
	}
	return byUID, ageByUID
}

// UIDsByAge inverts a uid→age record into per-age uid lists, each sorted
// for deterministic consumption order.
func UIDsByAge(ageByUID map[string]int) map[int][]string {
	out := make(map[int][]string)
	for uid, age := range ageByUID {
		out[age] = append(out[age], uid)
	}
	for age := range out {
		sort.Strings(out[age])
	}
	return out
}
