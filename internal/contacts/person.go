// Package contacts assembles the multi-layer contact graph over the
// generated population: per-person contact sets for the household, school,
// workplace, community, and facility layers, keyed by opaque uid.
package contacts

// Layer identifies one contact layer.
type Layer string

const (
	LayerHousehold Layer = "H"
	LayerSchool    Layer = "S"
	LayerWork      Layer = "W"
	LayerCommunity Layer = "C"
	LayerFacility  Layer = "LTCF"
)

// Layers returns every contact layer in canonical order. Each person's
// record carries all of them, empty or not.
func Layers() []Layer {
	return []Layer{LayerHousehold, LayerSchool, LayerWork, LayerCommunity, LayerFacility}
}

// Sex represents biological sex for demographic simulation.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// ContactSet is a set of uids.
type ContactSet map[string]struct{}

// Person is one simulated individual's record as consumed by the epidemic
// simulation layer. Contact sets within a layer are symmetric and never
// contain the person's own uid.
type Person struct {
	UID string
	Age int
	Sex Sex

	// Facility roles. Residents get the facility layer; staff get the
	// facility wired into their workplace layer instead.
	FacilityResident bool
	FacilityStaff    bool

	Contacts map[Layer]ContactSet
}

// newPerson returns a record with every layer present and empty.
func newPerson(uid string, age int, sex Sex) *Person {
	c := make(map[Layer]ContactSet, len(Layers()))
	for _, l := range Layers() {
		c[l] = make(ContactSet)
	}
	return &Person{UID: uid, Age: age, Sex: sex, Contacts: c}
}

// link adds every member of group to p's layer set, excluding p itself.
func (p *Person) link(layer Layer, group []string) {
	set := p.Contacts[layer]
	for _, uid := range group {
		if uid == p.UID {
			continue
		}
		set[uid] = struct{}{}
	}
}
