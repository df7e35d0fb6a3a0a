// Command check-class-balance reports each lecturer's total credit
// load and flags skew beyond the configured spread, adapted from the
// teacher's section-balance validator.
package main

import (
	"fmt"
	"os"
	"sort"

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

	fmt.Println("⚖️  checking lecturer load balance...")
	fmt.Println()

	loads := map[string]float64{}
	for _, a := range state.Assignments {
		for _, l := range a.LecturerIDs {
			loads[l] += a.CreditHours
		}
	}

	ids := make([]string, 0, len(loads))
	for id := range loads {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("  %-10s %.1f credit hours\n", id, loads[id])
	}

	c := constraints.LecturerLoadBalance{W: 1, MaxSpreadPc: 0.25}
	score := c.Evaluate(state)
	fmt.Printf("\nbalance score: %.3f (1.0 = perfectly even)\n", score)
	if score <= 0 {
		fmt.Println("⚠️  load is skewed beyond the configured spread")
	} else {
		fmt.Println("✅ load is within the configured spread")
	}
}
