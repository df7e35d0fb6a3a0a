// Package loader builds an initial domain.State and its Catalog from
// a JSON problem document, adapted from the teacher repo's
// JSON-course/JSON-teacher document shape.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"timetable-annealer/internal/domain"
)

// Document is the on-disk problem description: catalog reference
// data plus an initial (possibly infeasible) set of assignments.
type Document struct {
	Rooms       []jsonRoom       `json:"rooms"`
	Lecturers   []jsonLecturer   `json:"lecturers"`
	Slots       []jsonSlot       `json:"slots"`
	Assignments []jsonAssignment `json:"assignments"`
}

type jsonRoom struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"` // "classroom" or "lab"
}

type jsonLecturer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type jsonSlot struct {
	Day    string `json:"day"`
	Period int    `json:"period"`
	// StartMinutes/EndMinutes are minutes past midnight.
	StartMinutes int `json:"start_minutes"`
	EndMinutes   int `json:"end_minutes"`
}

type jsonAssignment struct {
	ClassID                string   `json:"class_id"`
	RoomID                 string   `json:"room_id"`
	LecturerIDs            []string `json:"lecturer_ids"`
	Day                    string   `json:"day"`
	Period                 int      `json:"period"`
	CreditHours            float64  `json:"credit_hours"`
	Participants           int      `json:"participants"`
	ClassType              string   `json:"class_type"`
	RequiresLab            bool     `json:"requires_lab"`
	PrayerExtensionMinutes int      `json:"prayer_extension_minutes"`
}

// Load reads path and builds an independent domain.State ready for
// the annealer core, failing loudly on any malformed record or one
// that cross-references a room/lecturer absent from the catalog,
// rather than silently dropping it.
func Load(path string) (*domain.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing problem document: %w", err)
	}

	catalog, err := buildCatalog(doc)
	if err != nil {
		return nil, err
	}

	assignments, err := buildAssignments(doc, catalog)
	if err != nil {
		return nil, err
	}

	return domain.NewState(assignments, catalog), nil
}

func buildCatalog(doc Document) (*domain.Catalog, error) {
	cat := &domain.Catalog{
		Rooms:     make(map[string]domain.Room, len(doc.Rooms)),
		Lecturers: make(map[string]domain.Lecturer, len(doc.Lecturers)),
		Slots:     make([]domain.TimeSlot, 0, len(doc.Slots)),
	}

	for _, r := range doc.Rooms {
		roomType := domain.Classroom
		if r.Type == "lab" {
			roomType = domain.Lab
		}
		cat.Rooms[r.ID] = domain.Room{ID: r.ID, Capacity: r.Capacity, Type: roomType}
	}

	for _, l := range doc.Lecturers {
		cat.Lecturers[l.ID] = domain.Lecturer{ID: l.ID, Name: l.Name}
	}

	for _, s := range doc.Slots {
		day, err := parseWeekday(s.Day)
		if err != nil {
			return nil, err
		}
		cat.Slots = append(cat.Slots, domain.TimeSlot{
			Day:    day,
			Period: s.Period,
			Start:  time.Duration(s.StartMinutes) * time.Minute,
			End:    time.Duration(s.EndMinutes) * time.Minute,
		})
	}

	return cat, nil
}

func buildAssignments(doc Document, cat *domain.Catalog) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0, len(doc.Assignments))
	for _, a := range doc.Assignments {
		day, err := parseWeekday(a.Day)
		if err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.ClassID, err)
		}
		if _, ok := cat.Rooms[a.RoomID]; a.RoomID != "" && !ok {
			return nil, fmt.Errorf("assignment %s references unknown room %q", a.ClassID, a.RoomID)
		}
		for _, l := range a.LecturerIDs {
			if _, ok := cat.Lecturers[l]; !ok {
				return nil, fmt.Errorf("assignment %s references unknown lecturer %q", a.ClassID, l)
			}
		}

		classType := domain.Morning
		if a.ClassType == "evening" {
			classType = domain.Evening
		}

		slot := domain.TimeSlot{Day: day, Period: a.Period}
		if full, ok := matchingSlot(cat, slot); ok {
			slot = full
		}

		out = append(out, domain.Assignment{
			ClassID:                a.ClassID,
			RoomID:                 a.RoomID,
			LecturerIDs:            append([]string(nil), a.LecturerIDs...),
			Slot:                   slot,
			CreditHours:            a.CreditHours,
			Participants:           a.Participants,
			ClassType:              classType,
			RequiresLab:            a.RequiresLab,
			PrayerExtensionMinutes: a.PrayerExtensionMinutes,
		})
	}
	return out, nil
}

// matchingSlot finds the catalog slot with the same day and period,
// carrying its Start/End so SlotValidity's equality check succeeds
// for assignments built only from day/period in the document.
func matchingSlot(cat *domain.Catalog, slot domain.TimeSlot) (domain.TimeSlot, bool) {
	for _, s := range cat.Slots {
		if s.Day == slot.Day && s.Period == slot.Period {
			return s, true
		}
	}
	return slot, false
}

func parseWeekday(s string) (domain.Weekday, error) {
	switch s {
	case "Sunday":
		return domain.Sunday, nil
	case "Monday":
		return domain.Monday, nil
	case "Tuesday":
		return domain.Tuesday, nil
	case "Wednesday":
		return domain.Wednesday, nil
	case "Thursday":
		return domain.Thursday, nil
	case "Friday":
		return domain.Friday, nil
	case "Saturday":
		return domain.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}
