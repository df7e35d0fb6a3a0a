package constraints

import (
	"math"
	"time"

	"timetable-annealer/internal/annealer"
	"timetable-annealer/internal/domain"
)

// NoOverflow penalizes assignments whose participant count exceeds
// their room's capacity, scoring each assignment by how far over
// capacity it runs rather than a flat pass/fail.
type NoOverflow struct {
	W float64
}

func (c NoOverflow) Name() string      { return "no_overflow" }
func (NoOverflow) Kind() annealer.Kind { return annealer.Soft }
func (c NoOverflow) Weight() float64   { return c.W }

func (NoOverflow) Evaluate(s annealer.State) float64 {
	st := asState(s)
	if len(st.Assignments) == 0 {
		return 1
	}
	total := 0.0
	for _, a := range st.Assignments {
		room, ok := st.Room(a.RoomID)
		if !ok || room.Capacity <= 0 {
			continue
		}
		if a.Participants > room.Capacity {
			over := float64(a.Participants-room.Capacity) / float64(room.Capacity)
			total += math.Min(over, 1)
		}
	}
	score := 1 - total/float64(len(st.Assignments))
	if score < 0 {
		score = 0
	}
	return score
}

func (NoOverflow) Violations(s annealer.State) []string { return nil }

// ClassTypeAlignment penalizes classes scheduled in a daypart that
// doesn't match their declared ClassType: a Morning class sitting in
// an evening slot (or vice versa) counts against the score in
// proportion to how many assignments are mismatched.
type ClassTypeAlignment struct {
	W             float64
	EveningCutoff int // slot periods >= this are evening
}

func (c ClassTypeAlignment) Name() string        { return "class_type_alignment" }
func (ClassTypeAlignment) Kind() annealer.Kind   { return annealer.Soft }
func (c ClassTypeAlignment) Weight() float64     { return c.W }

func (c ClassTypeAlignment) Evaluate(s annealer.State) float64 {
	st := asState(s)
	if len(st.Assignments) == 0 {
		return 1
	}
	mismatched := 0
	for _, a := range st.Assignments {
		isEvening := a.Slot.Period >= c.EveningCutoff
		switch a.ClassType {
		case "", "morning":
			if isEvening {
				mismatched++
			}
		case "evening":
			if !isEvening {
				mismatched++
			}
		}
	}
	return 1 - float64(mismatched)/float64(len(st.Assignments))
}

func (ClassTypeAlignment) Violations(s annealer.State) []string { return nil }

// PrayerTimeBuffer penalizes a class whose prayer-extension overlaps
// the start of another assignment in the same room, since the
// extension pushes the effective end time past the slot's nominal End.
type PrayerTimeBuffer struct {
	W float64
}

func (c PrayerTimeBuffer) Name() string        { return "prayer_time_buffer" }
func (PrayerTimeBuffer) Kind() annealer.Kind   { return annealer.Soft }
func (c PrayerTimeBuffer) Weight() float64     { return c.W }

func (PrayerTimeBuffer) Evaluate(s annealer.State) float64 {
	st := asState(s)
	if len(st.Assignments) == 0 {
		return 1
	}
	violations := len(crowdedByPrayerExtension(st))
	score := 1 - float64(violations)/float64(len(st.Assignments))
	if score < 0 {
		score = 0
	}
	return score
}

func (PrayerTimeBuffer) Violations(s annealer.State) []string {
	return crowdedByPrayerExtension(asState(s))
}

func crowdedByPrayerExtension(st *domain.State) []string {
	var out []string
	for i, a := range st.Assignments {
		if a.PrayerExtensionMinutes <= 0 {
			continue
		}
		extendedEnd := a.Slot.End + time.Duration(a.PrayerExtensionMinutes)*time.Minute
		for j, b := range st.Assignments {
			if i == j || a.RoomID != b.RoomID || a.Slot.Day != b.Slot.Day {
				continue
			}
			if b.Slot.Start >= a.Slot.End && b.Slot.Start < extendedEnd {
				out = append(out, a.ClassID+" prayer extension crowds "+b.ClassID)
			}
		}
	}
	return out
}

// LecturerLoadBalance penalizes uneven distribution of credit hours
// across lecturers, adapted from the teacher's balance-validator
// notion of comparing each lecturer's load against the class average.
type LecturerLoadBalance struct {
	W           float64
	MaxSpreadPc float64 // acceptable spread as a fraction of the mean load, e.g. 0.25
}

func (c LecturerLoadBalance) Name() string        { return "lecturer_load_balance" }
func (LecturerLoadBalance) Kind() annealer.Kind   { return annealer.Soft }
func (c LecturerLoadBalance) Weight() float64     { return c.W }

func (c LecturerLoadBalance) Evaluate(s annealer.State) float64 {
	st := asState(s)
	loads := map[string]float64{}
	for _, a := range st.Assignments {
		for _, l := range a.LecturerIDs {
			loads[l] += a.CreditHours
		}
	}
	if len(loads) == 0 {
		return 1
	}
	var sum float64
	for _, v := range loads {
		sum += v
	}
	mean := sum / float64(len(loads))
	if mean == 0 {
		return 1
	}
	var maxDev float64
	for _, v := range loads {
		dev := math.Abs(v-mean) / mean
		if dev > maxDev {
			maxDev = dev
		}
	}
	spread := c.MaxSpreadPc
	if spread <= 0 {
		spread = 0.25
	}
	score := 1 - maxDev/spread
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func (LecturerLoadBalance) Violations(s annealer.State) []string { return nil }
