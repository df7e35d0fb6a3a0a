// Package exporter renders a solved annealer.Solution wrapping a
// domain.State into a JSON document, adapted from the day/block
// schedule export shape the teacher repo produces for its own
// activity list.
package exporter

import (
	"encoding/json"
	"os"
	"sort"

	"timetable-annealer/internal/annealer"
	"timetable-annealer/internal/domain"
)

// ScheduleExport is the exported JSON document.
type ScheduleExport struct {
	RunID      string           `json:"run_id"`
	Summary    ScheduleSummary  `json:"summary"`
	Schedule   []DaySchedule    `json:"schedule"`
	Activities []ActivityExport `json:"activities"`
	Violations []string         `json:"violations,omitempty"`
}

// ScheduleSummary holds aggregate statistics about the solved schedule.
type ScheduleSummary struct {
	TotalAssignments int     `json:"total_assignments"`
	TotalRooms       int     `json:"total_rooms"`
	TotalLecturers   int     `json:"total_lecturers"`
	HardViolations   int     `json:"hard_violations"`
	Fitness          float64 `json:"fitness"`
	Iterations       int     `json:"iterations"`
}

// DaySchedule groups assignments by weekday.
type DaySchedule struct {
	Day        string           `json:"day"`
	Activities []ActivityExport `json:"activities"`
}

// ActivityExport is one assignment rendered for display.
type ActivityExport struct {
	ClassID      string   `json:"class_id"`
	Room         string   `json:"room"`
	Day          string   `json:"day"`
	Period       int      `json:"period"`
	Lecturers    []string `json:"lecturers"`
	Participants int      `json:"participants"`
	ClassType    string   `json:"class_type"`
	Overflow     bool     `json:"overflow"`
}

// Export renders a solved solution to filename as indented JSON.
func Export(sol *annealer.Solution, hardConstraints []annealer.Constraint, filename string) error {
	st := sol.Best.(*domain.State)

	doc := ScheduleExport{
		RunID:      sol.RunID,
		Summary:    summarize(st, sol),
		Schedule:   byDay(st),
		Activities: activityList(st),
	}
	for _, c := range hardConstraints {
		doc.Violations = append(doc.Violations, c.Violations(st)...)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func summarize(st *domain.State, sol *annealer.Solution) ScheduleSummary {
	rooms := map[string]bool{}
	lecturers := map[string]bool{}
	for _, a := range st.Assignments {
		if a.RoomID != "" {
			rooms[a.RoomID] = true
		}
		for _, l := range a.LecturerIDs {
			lecturers[l] = true
		}
	}
	return ScheduleSummary{
		TotalAssignments: len(st.Assignments),
		TotalRooms:       len(rooms),
		TotalLecturers:   len(lecturers),
		HardViolations:   sol.HardViolations,
		Fitness:          sol.BestFitness,
		Iterations:       sol.Iterations,
	}
}

func byDay(st *domain.State) []DaySchedule {
	byDay := map[domain.Weekday][]ActivityExport{}
	for _, a := range st.Assignments {
		byDay[a.Slot.Day] = append(byDay[a.Slot.Day], activityToExport(a))
	}

	var days []domain.Weekday
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	out := make([]DaySchedule, 0, len(days))
	for _, d := range days {
		acts := byDay[d]
		sort.Slice(acts, func(i, j int) bool { return acts[i].Period < acts[j].Period })
		out = append(out, DaySchedule{Day: d.String(), Activities: acts})
	}
	return out
}

func activityList(st *domain.State) []ActivityExport {
	result := make([]ActivityExport, 0, len(st.Assignments))
	for _, a := range st.Assignments {
		result = append(result, activityToExport(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClassID < result[j].ClassID })
	return result
}

func activityToExport(a domain.Assignment) ActivityExport {
	return ActivityExport{
		ClassID:      a.ClassID,
		Room:         a.RoomID,
		Day:          a.Slot.Day.String(),
		Period:       a.Slot.Period,
		Lecturers:    append([]string(nil), a.LecturerIDs...),
		Participants: a.Participants,
		ClassType:    string(a.ClassType),
		Overflow:     a.Overflow,
	}
}
