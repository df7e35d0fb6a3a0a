package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{
		Rooms: map[string]Room{
			"R101": {ID: "R101", Capacity: 30, Type: Classroom},
			"LAB1": {ID: "LAB1", Capacity: 20, Type: Lab},
		},
		Lecturers: map[string]Lecturer{
			"L1": {ID: "L1", Name: "Dr. Aziz"},
		},
		Slots: []TimeSlot{{Day: Monday, Period: 1}},
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	cat := testCatalog()
	s := NewState([]Assignment{
		{ClassID: "C1", RoomID: "R101", LecturerIDs: []string{"L1"}, Participants: 10},
	}, cat)

	clone := s.Clone().(*State)
	clone.Assignments[0].RoomID = "LAB1"
	clone.Assignments[0].LecturerIDs[0] = "L2"

	assert.Equal(t, "R101", s.Assignments[0].RoomID)
	assert.Equal(t, "L1", s.Assignments[0].LecturerIDs[0])
	assert.Same(t, s.Catalog, clone.Catalog)
}

func TestState_RefreshOverflowFlagsOvercapacity(t *testing.T) {
	cat := testCatalog()
	s := NewState([]Assignment{
		{ClassID: "C1", RoomID: "R101", Participants: 50},
		{ClassID: "C2", RoomID: "LAB1", Participants: 5},
	}, cat)

	require.True(t, s.Assignments[0].Overflow)
	require.False(t, s.Assignments[1].Overflow)
}
