// Command analyze-schedule loads a solved schedule export and reports
// whether any class's instances landed on inconsistent slots, adapted
// from the teacher's lecture-distribution debug tool.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"timetable-annealer/internal/exporter"
)

func main() {
	path := "schedule.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var doc exporter.ScheduleExport
	if err := json.Unmarshal(data, &doc); err != nil {
		panic(err)
	}

	fmt.Println("🔍 analyzing class-slot consistency...")
	fmt.Println()

	slotsByClass := make(map[string]map[string]int)
	for _, a := range doc.Activities {
		key := fmt.Sprintf("%s p%d", a.Day, a.Period)
		if slotsByClass[a.ClassID] == nil {
			slotsByClass[a.ClassID] = make(map[string]int)
		}
		slotsByClass[a.ClassID][key]++
	}

	consistent, inconsistent := 0, 0
	for classID, slots := range slotsByClass {
		if len(slots) > 1 {
			inconsistent++
			fmt.Printf("❌ class %s has instances across %d distinct slots:\n", classID, len(slots))
			for slot, count := range slots {
				fmt.Printf("   %s: %d instances\n", slot, count)
			}
		} else {
			consistent++
		}
	}

	fmt.Println()
	fmt.Println("📊 summary:")
	fmt.Printf("✅ classes with one slot across all instances: %d\n", consistent)
	fmt.Printf("❌ classes spread across multiple slots: %d\n", inconsistent)

	fmt.Printf("\nhard violations recorded in export: %d\n", len(doc.Violations))
	for _, v := range doc.Violations {
		fmt.Printf("   - %s\n", v)
	}
}
