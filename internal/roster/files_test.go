package roster

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignUIDs(t *testing.T) {
	groups := [][]int{{34, 32, 5}, {78}, {60, 61}}

	byUID, ageByUID := AssignUIDs(groups)
	require.Len(t, byUID, 3)
	require.Len(t, ageByUID, 6)

	seen := make(map[string]bool)
	for gi, group := range byUID {
		require.Len(t, group, len(groups[gi]))
		for mi, uid := range group {
			assert.False(t, seen[uid], "uid reused")
			seen[uid] = true
			assert.Equal(t, groups[gi][mi], ageByUID[uid], "uid carries its member's age")
		}
	}
}

func TestAssignUIDsReproducibleWithSeededStream(t *testing.T) {
	groups := [][]int{{1, 2, 3}, {4, 5}}

	uuid.SetRand(rand.New(rand.NewSource(99)))
	first, _ := AssignUIDs(groups)
	uuid.SetRand(rand.New(rand.NewSource(99)))
	second, _ := AssignUIDs(groups)
	uuid.SetRand(nil)

	assert.Equal(t, first, second)
}

func TestUIDsByAge(t *testing.T) {
	ageByUID := map[string]int{"c": 30, "a": 30, "b": 41}
	byAge := UIDsByAge(ageByUID)

	assert.Equal(t, []string{"a", "c"}, byAge[30], "per-age lists are sorted")
	assert.Equal(t, []string{"b"}, byAge[41])
}

func TestGroupFilesRoundTrip(t *testing.T) {
	dir := t.TempDir()

	groups := [][]string{
		{"u-03", "u-01", "u-02"},
		{"u-04"},
		{"u-05", "u-06"},
	}
	ageByUID := map[string]int{
		"u-01": 34, "u-02": 5, "u-03": 32,
		"u-04": 78, "u-05": 60, "u-06": 61,
	}

	require.NoError(t, WriteGroups(dir, "testville", 6, "households", groups, ageByUID))

	agesPath, uidsPath := GroupPaths(dir, "testville", 6, "households")
	gotGroups, gotAges, err := ReadGroups(agesPath, uidsPath)
	require.NoError(t, err)

	require.Equal(t, groups, gotGroups)
	for gi, group := range gotGroups {
		for mi, uid := range group {
			assert.Equal(t, ageByUID[uid], gotAges[gi][mi],
				"re-read age-to-uid mapping matches")
		}
	}
}

func TestWriteGroupsRejectsUnknownUID(t *testing.T) {
	dir := t.TempDir()
	err := WriteGroups(dir, "x", 1, "households", [][]string{{"ghost"}}, map[string]int{})
	require.Error(t, err)
}

func TestAgeByUIDRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ageByUID := map[string]int{"u-2": 40, "u-1": 12, "u-3": 85}

	require.NoError(t, WriteAgeByUID(dir, "testville", ageByUID))
	got, err := ReadAgeByUID(AgeByUIDPath(dir, "testville", 3))
	require.NoError(t, err)
	assert.Equal(t, ageByUID, got)
}

func TestReadGroupsDetectsMisalignment(t *testing.T) {
	dir := t.TempDir()

	groups := [][]string{{"u-1", "u-2"}}
	ageByUID := map[string]int{"u-1": 1, "u-2": 2, "u-3": 3}
	require.NoError(t, WriteGroups(dir, "x", 3, "households", groups, ageByUID))

	agesPath, _ := GroupPaths(dir, "x", 3, "households")
	// Swap in a uid file with an extra member on line 1.
	require.NoError(t, WriteGroups(dir, "x", 3, "schools", [][]string{{"u-1", "u-2", "u-3"}}, ageByUID))
	_, badUIDsPath := GroupPaths(dir, "x", 3, "schools")

	_, _, err := ReadGroups(agesPath, badUIDsPath)
	require.Error(t, err)
}
