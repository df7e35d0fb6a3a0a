package moves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable-annealer/internal/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Rooms: map[string]domain.Room{
			"R101": {ID: "R101", Capacity: 30, Type: domain.Classroom},
			"R102": {ID: "R102", Capacity: 25, Type: domain.Classroom},
		},
		Lecturers: map[string]domain.Lecturer{
			"L1": {ID: "L1"},
			"L2": {ID: "L2"},
		},
		Slots: []domain.TimeSlot{
			{Day: domain.Monday, Period: 1},
			{Day: domain.Tuesday, Period: 2},
		},
	}
}

func testState() *domain.State {
	return domain.NewState([]domain.Assignment{
		{ClassID: "A", RoomID: "R101", LecturerIDs: []string{"L1"}, Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}},
		{ClassID: "B", RoomID: "R102", LecturerIDs: []string{"L2"}, Slot: domain.TimeSlot{Day: domain.Tuesday, Period: 2}},
	}, testCatalog())
}

func TestChangeTimeSlot_MutatesOneAssignment(t *testing.T) {
	m := NewChangeTimeSlot(1)
	st := testState()
	require.True(t, m.Applicable(st))

	next := m.Generate(st, 1).(*domain.State)
	assert.Equal(t, "R101", st.Assignments[0].RoomID, "original must not be mutated")
	assert.Len(t, next.Assignments, 2)
}

func TestChangeRoom_PicksFromProvidedRooms(t *testing.T) {
	m := NewChangeRoom(2, []string{"R101", "R102"})
	st := testState()
	next := m.Generate(st, 1).(*domain.State)
	for _, a := range next.Assignments {
		assert.Contains(t, []string{"R101", "R102"}, a.RoomID)
	}
}

func TestChangeRoom_NotApplicableWithOneRoom(t *testing.T) {
	m := NewChangeRoom(3, []string{"R101"})
	assert.False(t, m.Applicable(testState()))
}

func TestSwapAssignments_ExchangesRoomAndSlot(t *testing.T) {
	m := NewSwapAssignments(4)
	st := testState()
	next := m.Generate(st, 1).(*domain.State)

	rooms := map[string]bool{}
	for _, a := range next.Assignments {
		rooms[a.RoomID] = true
	}
	assert.Len(t, rooms, 2)
	assert.Equal(t, "R101", st.Assignments[0].RoomID, "original must not be mutated")
}

func TestSwapAssignments_NotApplicableWithOneAssignment(t *testing.T) {
	m := NewSwapAssignments(5)
	single := domain.NewState([]domain.Assignment{{ClassID: "A", RoomID: "R101"}}, testCatalog())
	assert.False(t, m.Applicable(single))
}

func TestChangeLecturer_ReplacesOneLecturer(t *testing.T) {
	m := NewChangeLecturer(6, []string{"L1", "L2"})
	st := testState()
	next := m.Generate(st, 1).(*domain.State)

	assert.Equal(t, []string{"L1"}, st.Assignments[0].LecturerIDs, "original must not be mutated")
	for _, a := range next.Assignments {
		for _, l := range a.LecturerIDs {
			assert.Contains(t, []string{"L1", "L2"}, l)
		}
	}
}

func TestChangeLecturer_NotApplicableWithoutLecturers(t *testing.T) {
	m := NewChangeLecturer(7, []string{"L1", "L2"})
	noLecturers := domain.NewState([]domain.Assignment{{ClassID: "A", RoomID: "R101"}}, testCatalog())
	assert.False(t, m.Applicable(noLecturers))
}
