// Package moves implements the neighbor-generating operators the
// annealer core selects between, grounded on the teacher repo's
// moveSessionSA / isValidMove pairing: a cheap applicability check
// followed by a mutation on an independent copy of the state.
package moves

import (
	"math/rand"

	"timetable-annealer/internal/annealer"
	"timetable-annealer/internal/domain"
)

func clone(s annealer.State) *domain.State {
	return s.Clone().(*domain.State)
}

func asState(s annealer.State) *domain.State {
	return s.(*domain.State)
}

// ChangeTimeSlot reassigns a single, randomly chosen assignment to a
// slot drawn at random from the catalog's grid; the drawn slot may be
// the one the assignment already has.
type ChangeTimeSlot struct {
	rng *rand.Rand
}

func NewChangeTimeSlot(seed int64) *ChangeTimeSlot {
	return &ChangeTimeSlot{rng: rand.New(rand.NewSource(seed))}
}

func (*ChangeTimeSlot) Name() string { return "change_time_slot" }

func (m *ChangeTimeSlot) Applicable(s annealer.State) bool {
	st := asState(s)
	return len(st.Assignments) > 0 && len(st.Catalog.Slots) > 1
}

func (m *ChangeTimeSlot) Generate(s annealer.State, _ float64) annealer.State {
	st := clone(s)
	if !m.Applicable(st) {
		return st
	}
	i := m.rng.Intn(len(st.Assignments))
	slot := st.Catalog.Slots[m.rng.Intn(len(st.Catalog.Slots))]
	st.Assignments[i].Slot = slot
	st.RefreshOverflow()
	return st
}

// ChangeRoom reassigns a single assignment to a room drawn at random
// from the room IDs given at construction; the drawn room may be the
// one the assignment already has.
type ChangeRoom struct {
	rng   *rand.Rand
	rooms []string
}

func NewChangeRoom(seed int64, roomIDs []string) *ChangeRoom {
	ids := append([]string(nil), roomIDs...)
	return &ChangeRoom{rng: rand.New(rand.NewSource(seed)), rooms: ids}
}

func (*ChangeRoom) Name() string { return "change_room" }

func (m *ChangeRoom) Applicable(s annealer.State) bool {
	st := asState(s)
	return len(st.Assignments) > 0 && len(m.rooms) > 1
}

func (m *ChangeRoom) Generate(s annealer.State, _ float64) annealer.State {
	st := clone(s)
	if !m.Applicable(st) {
		return st
	}
	i := m.rng.Intn(len(st.Assignments))
	st.Assignments[i].RoomID = m.rooms[m.rng.Intn(len(m.rooms))]
	st.RefreshOverflow()
	return st
}

// SwapAssignments exchanges the room and slot of two distinct
// assignments, useful for escaping local minima a single-assignment
// move can't reach in one step.
type SwapAssignments struct {
	rng *rand.Rand
}

func NewSwapAssignments(seed int64) *SwapAssignments {
	return &SwapAssignments{rng: rand.New(rand.NewSource(seed))}
}

func (*SwapAssignments) Name() string { return "swap_assignments" }

func (m *SwapAssignments) Applicable(s annealer.State) bool {
	return len(asState(s).Assignments) > 1
}

func (m *SwapAssignments) Generate(s annealer.State, _ float64) annealer.State {
	st := clone(s)
	if !m.Applicable(st) {
		return st
	}
	i := m.rng.Intn(len(st.Assignments))
	j := m.rng.Intn(len(st.Assignments))
	for j == i {
		j = m.rng.Intn(len(st.Assignments))
	}
	a, b := st.Assignments[i], st.Assignments[j]
	st.Assignments[i].RoomID, st.Assignments[j].RoomID = b.RoomID, a.RoomID
	st.Assignments[i].Slot, st.Assignments[j].Slot = b.Slot, a.Slot
	st.RefreshOverflow()
	return st
}

// ChangeLecturer replaces one lecturer on a randomly chosen assignment
// with a lecturer drawn at random from the lecturer IDs given at
// construction; the drawn lecturer may be the one being replaced.
type ChangeLecturer struct {
	rng       *rand.Rand
	lecturers []string
}

func NewChangeLecturer(seed int64, lecturerIDs []string) *ChangeLecturer {
	ids := append([]string(nil), lecturerIDs...)
	return &ChangeLecturer{rng: rand.New(rand.NewSource(seed)), lecturers: ids}
}

func (*ChangeLecturer) Name() string { return "change_lecturer" }

func (m *ChangeLecturer) Applicable(s annealer.State) bool {
	st := asState(s)
	hasLecturers := false
	for _, a := range st.Assignments {
		if len(a.LecturerIDs) > 0 {
			hasLecturers = true
			break
		}
	}
	return hasLecturers && len(m.lecturers) > 1
}

func (m *ChangeLecturer) Generate(s annealer.State, _ float64) annealer.State {
	st := clone(s)
	candidates := make([]int, 0, len(st.Assignments))
	for i, a := range st.Assignments {
		if len(a.LecturerIDs) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 || len(m.lecturers) < 2 {
		return st
	}
	i := candidates[m.rng.Intn(len(candidates))]
	slot := m.rng.Intn(len(st.Assignments[i].LecturerIDs))
	st.Assignments[i].LecturerIDs[slot] = m.lecturers[m.rng.Intn(len(m.lecturers))]
	return st
}
