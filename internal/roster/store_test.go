package roster

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/synthnet/internal/contacts"
)

func testPerson(uid string, age int, resident, staff bool) *contacts.Person {
	return &contacts.Person{
		UID:              uid,
		Age:              age,
		Sex:              contacts.SexFemale,
		FacilityResident: resident,
		FacilityStaff:    staff,
		Contacts:         map[contacts.Layer]contacts.ContactSet{},
	}
}

func TestStoreSaveAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	pop := map[string]*contacts.Person{
		"u-1": testPerson("u-1", 87, true, false),
		"u-2": testPerson("u-2", 34, false, true),
		"u-3": testPerson("u-3", 9, false, false),
	}
	require.NoError(t, store.SavePopulation(pop))

	n, err := store.CountPersons()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Saving again replaces rather than duplicates.
	require.NoError(t, store.SavePopulation(pop))
	n, err = store.CountPersons()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStoreGroupsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	groups := [][]string{
		{"u-1", "u-2"},
		{"u-3"},
	}
	require.NoError(t, store.SaveGroups("facilities", groups))

	got, err := store.LoadGroups("facilities")
	require.NoError(t, err)
	assert.Equal(t, groups, got)

	other, err := store.LoadGroups("schools")
	require.NoError(t, err)
	assert.Empty(t, other)
}
