// Package demos provides the demographic primitives the generation pipeline
// samples from: single-year age distributions that deplete as individuals are
// allocated, age brackets, setting-keyed contact matrices, and the weighted
// sampling helpers shared by the household and facility stages.
package demos

// MaxAge is the oldest single year of age modeled. Ages run 0..MaxAge and
// the top bracket is open-ended in the source data ("85 and over" style).
const MaxAge = 100

// Setting identifies a physical contact setting in a contact matrix.
type Setting string

const (
	SettingHousehold Setting = "H"
	SettingSchool    Setting = "S"
	SettingWork      Setting = "W"
	SettingCommunity Setting = "C"
)

// ContactMatrix holds, per setting, the relative mixing weight between age
// brackets. Row index is the reference person's bracket, column index the
// contact's bracket.
type ContactMatrix map[Setting][][]float64

// Brackets maps a bracket index to the contiguous single years of age it
// spans. Bracket 0 starts at age 0; the last bracket ends at MaxAge.
type Brackets [][]int

// NewBrackets expands [lo, hi] pairs into explicit age lists.
func NewBrackets(ranges [][2]int) Brackets {
	b := make(Brackets, 0, len(ranges))
	for _, r := range ranges {
		ages := make([]int, 0, r[1]-r[0]+1)
		for a := r[0]; a <= r[1]; a++ {
			ages = append(ages, a)
		}
		b = append(b, ages)
	}
	return b
}

// AgeIndex returns a lookup from single year of age to bracket index.
// Ages not covered by any bracket map to -1.
func (b Brackets) AgeIndex() []int {
	idx := make([]int, MaxAge+1)
	for a := range idx {
		idx[a] = -1
	}
	for i, ages := range b {
		for _, a := range ages {
			if a >= 0 && a <= MaxAge {
				idx[a] = i
			}
		}
	}
	return idx
}

// Span returns the first and last age of bracket i.
func (b Brackets) Span(i int) (lo, hi int) {
	ages := b[i]
	return ages[0], ages[len(ages)-1]
}

// Width returns the number of single years in bracket i.
func (b Brackets) Width(i int) int {
	return len(b[i])
}
