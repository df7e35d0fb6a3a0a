package annealer

import "github.com/rs/zerolog"

// Level mirrors the caller-facing logging config in §6. None disables
// the sink outright.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// Record is a structured progress event. Fields are advisory: the
// sink may drop any record without affecting the search, and the
// annealer never reads back from it.
type Record struct {
	Level          Level
	Phase          string
	Iteration      int
	Temperature    float64
	CurrentFitness float64
	BestFitness    float64
	HardViolations int
	Reheats        int
	Message        string
	OperatorStats  map[string]OperatorStats
}

// Sink receives Records. Implementations must not block the caller
// for long or mutate anything the annealer owns; logging is a
// fire-and-forget side channel.
type Sink interface {
	Log(Record)
}

// NoopSink discards every record. It is the default when New is given
// a nil sink.
type NoopSink struct{}

func (NoopSink) Log(Record) {}

// LoggingConfig is the caller-facing sink descriptor from §6.
type LoggingConfig struct {
	Enabled     bool
	Level       Level
	LogInterval int // iterations between progress emits; <= 0 means every iteration
}

// ZerologSink adapts Record to github.com/rs/zerolog, grounded on the
// structured-progress-logging pattern used by freedakipad-paiban's
// scheduler optimizer and sawpanic-cryptorun's zerolog wiring.
type ZerologSink struct {
	logger zerolog.Logger
	min    Level
}

func NewZerologSink(logger zerolog.Logger, min Level) *ZerologSink {
	return &ZerologSink{logger: logger, min: min}
}

func (z *ZerologSink) Log(r Record) {
	if r.Level < z.min {
		return
	}

	var ev *zerolog.Event
	switch r.Level {
	case LevelDebug:
		ev = z.logger.Debug()
	case LevelWarn:
		ev = z.logger.Warn()
	case LevelError:
		ev = z.logger.Error()
	default:
		ev = z.logger.Info()
	}

	ev = ev.Str("phase", r.Phase).
		Int("iteration", r.Iteration).
		Float64("temperature", r.Temperature).
		Float64("current_fitness", r.CurrentFitness).
		Float64("best_fitness", r.BestFitness).
		Int("hard_violations", r.HardViolations).
		Int("reheats", r.Reheats)

	if r.OperatorStats != nil {
		stats := zerolog.Dict()
		for name, s := range r.OperatorStats {
			stats = stats.Dict(name, zerolog.Dict().
				Int("attempts", s.Attempts).
				Int("accepted", s.Accepted).
				Int("improvements", s.Improvements).
				Float64("success_rate", s.SuccessRate()))
		}
		ev = ev.Dict("operators", stats)
	}

	ev.Msg(r.Message)
}
