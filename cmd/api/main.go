package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"timetable-annealer/internal/annealer"
	"timetable-annealer/internal/config"
	"timetable-annealer/internal/constraints"
	"timetable-annealer/internal/exporter"
	"timetable-annealer/internal/loader"
	"timetable-annealer/internal/moves"
)

func main() {
	root := &cobra.Command{
		Use:   "timetable-annealer",
		Short: "Simulated-annealing timetable solver",
	}

	var problemPath, configPath, outPath string
	var verbose bool

	solve := &cobra.Command{
		Use:   "solve",
		Short: "Load a problem document and anneal it into a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(problemPath, configPath, outPath, verbose)
		},
	}
	solve.Flags().StringVar(&problemPath, "problem", "data/problem.json", "path to the problem JSON document")
	solve.Flags().StringVar(&configPath, "config", "config.toml", "path to the annealer config file")
	solve.Flags().StringVar(&outPath, "out", "schedule.json", "path to write the solved schedule")
	solve.Flags().BoolVar(&verbose, "verbose", false, "emit progress to stderr every 500 iterations")

	var validateProblemPath string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load a problem document and report hard-constraint violations without annealing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(validateProblemPath)
		},
	}
	validate.Flags().StringVar(&validateProblemPath, "problem", "data/problem.json", "path to the problem JSON document")

	root.AddCommand(solve, validate)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolve(problemPath, configPath, outPath string, verbose bool) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	fmt.Println("⏳ [step 1] loading problem document...")
	state, err := loader.Load(problemPath)
	if err != nil {
		return fmt.Errorf("loading problem: %w", err)
	}
	fmt.Printf("✅ loaded %d assignments, %d rooms, %d lecturers, %d slots\n",
		len(state.Assignments), len(state.Catalog.Rooms), len(state.Catalog.Lecturers), len(state.Catalog.Slots))

	fmt.Println("\n⚙️  [step 2] loading annealer configuration...")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level := annealer.LevelNone
	if verbose {
		level = annealer.LevelInfo
	}
	cfg.Logging = &annealer.LoggingConfig{Enabled: verbose, Level: level, LogInterval: 500}

	hardConstraints := []annealer.Constraint{
		constraints.RoomConflict{},
		constraints.LecturerConflict{},
		constraints.LabRequirement{},
		constraints.SlotValidity{},
	}
	softConstraints := []annealer.Constraint{
		constraints.NoOverflow{W: 1},
		constraints.ClassTypeAlignment{W: 1, EveningCutoff: 5},
		constraints.PrayerTimeBuffer{W: 1.5},
		constraints.LecturerLoadBalance{W: 0.5, MaxSpreadPc: 0.25},
	}

	roomIDs := make([]string, 0, len(state.Catalog.Rooms))
	for id := range state.Catalog.Rooms {
		roomIDs = append(roomIDs, id)
	}
	lecturerIDs := make([]string, 0, len(state.Catalog.Lecturers))
	for id := range state.Catalog.Lecturers {
		lecturerIDs = append(lecturerIDs, id)
	}

	generators := []annealer.MoveGenerator{
		moves.NewChangeTimeSlot(cfg.Seed + 1),
		moves.NewChangeRoom(cfg.Seed+2, roomIDs),
		moves.NewSwapAssignments(cfg.Seed + 3),
		moves.NewChangeLecturer(cfg.Seed+4, lecturerIDs),
	}

	sink := annealer.NewZerologSink(logger, level)
	a, err := annealer.New(*cfg, append(hardConstraints, softConstraints...), generators, sink)
	if err != nil {
		return fmt.Errorf("building annealer: %w", err)
	}

	fmt.Println("\n🔥 [step 3] annealing schedule...")
	sol, err := a.Solve(state)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	printSolutionReport(sol)

	fmt.Printf("\n💾 [step 4] exporting solved schedule to %q...\n", outPath)
	if err := exporter.Export(sol, hardConstraints, outPath); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	fmt.Println("✅ done.")
	return nil
}

func runValidate(problemPath string) error {
	state, err := loader.Load(problemPath)
	if err != nil {
		return fmt.Errorf("loading problem: %w", err)
	}

	hardConstraints := []annealer.Constraint{
		constraints.RoomConflict{},
		constraints.LecturerConflict{},
		constraints.LabRequirement{},
		constraints.SlotValidity{},
	}

	total := 0
	for _, c := range hardConstraints {
		violations := c.Violations(state)
		if len(violations) == 0 {
			fmt.Printf("✅ %s: no violations\n", c.Name())
			continue
		}
		fmt.Printf("❌ %s: %d violation(s)\n", c.Name(), len(violations))
		for _, v := range violations {
			fmt.Printf("   - %s\n", v)
		}
		total += len(violations)
	}

	if total == 0 {
		fmt.Println("\n✅ the initial state is hard-feasible")
	} else {
		fmt.Printf("\n⚠️  %d total hard violation(s) found — annealing is needed to resolve them\n", total)
	}
	return nil
}

func printSolutionReport(sol *annealer.Solution) {
	fmt.Println("\n================================================================================")
	fmt.Println("📊 ANNEALING REPORT")
	fmt.Println("================================================================================")

	status := "✅ FEASIBLE"
	if sol.HardViolations > 0 {
		status = fmt.Sprintf("❌ INFEASIBLE (%d hard violations remain)", sol.HardViolations)
	}

	fmt.Printf("Status:           %s\n", status)
	fmt.Printf("Best fitness:     %.4f\n", sol.BestFitness)
	fmt.Printf("Soft violations:  %d\n", sol.SoftViolations)
	fmt.Printf("Iterations:       %d\n", sol.Iterations)
	fmt.Printf("Reheats:          %d\n", sol.Reheats)
	fmt.Printf("Final temp:       %.6f\n", sol.FinalTemp)
	if sol.TerminatedNoMoves {
		fmt.Println("⚠️  terminated early: no move generator was applicable")
	}

	if len(sol.OperatorStats) > 0 {
		fmt.Println("--------------------------------------------------------------------------------")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Operator\tAttempts\tAccepted\tImprovements\tSuccess rate")

		names := make([]string, 0, len(sol.OperatorStats))
		for name := range sol.OperatorStats {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			s := sol.OperatorStats[name]
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f%%\n", name, s.Attempts, s.Accepted, s.Improvements, s.SuccessRate()*100)
		}
		w.Flush()
	}
	fmt.Println("================================================================================")
}
