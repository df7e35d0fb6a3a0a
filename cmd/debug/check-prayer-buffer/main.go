// Command check-prayer-buffer loads a problem document and reports
// how many assignments carry a prayer-time extension and whether any
// of them crowd a neighboring class, adapted from the teacher's
// tutorial-distribution debug tool.
package main

import (
	"fmt"
	"os"

	"timetable-annealer/internal/constraints"
	"timetable-annealer/internal/loader"
)

func main() {
	path := "data/problem.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	state, err := loader.Load(path)
	if err != nil {
		panic(err)
	}

	fmt.Println("🕌 checking prayer-time buffer compliance...")
	fmt.Println()

	extended := 0
	for _, a := range state.Assignments {
		if a.PrayerExtensionMinutes > 0 {
			extended++
		}
	}
	fmt.Printf("assignments with a prayer extension: %d / %d\n", extended, len(state.Assignments))

	c := constraints.PrayerTimeBuffer{W: 1}
	violations := c.Violations(state)
	if len(violations) == 0 {
		fmt.Println("✅ no crowding detected")
		return
	}

	fmt.Printf("❌ %d crowding violation(s):\n", len(violations))
	for _, v := range violations {
		fmt.Printf("   - %s\n", v)
	}
}
