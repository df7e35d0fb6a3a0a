// Package config loads the annealer's run configuration with viper,
// supporting a TOML file, environment overrides (TIMETABLE_ prefix),
// and the teacher's pattern of sane zero-value defaults resolved
// after binding rather than hardcoded into the struct tags.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"timetable-annealer/internal/annealer"
)

// Defaults mirror the zero-value fallbacks annealer.Config applies
// internally (alpha, explorationFloor, reheatFactor), stated here so a
// config file can omit them entirely and still get a valid run.
const (
	DefaultT0              = 1000.0
	DefaultTMin            = 0.01
	DefaultRCool           = 0.95
	DefaultIterMax         = 20000
	DefaultWHard           = 1000.0
	DefaultThresholdReheat = 200
	DefaultReheatFactor    = 2.0
	DefaultMaxReheats      = 5
	DefaultAlpha           = 0.60
	DefaultExplorationFloor = annealer.DefaultExplorationFloor
)

// Load reads path (if it exists) plus TIMETABLE_-prefixed environment
// variables into an annealer.Config, applying the defaults above for
// anything unset, and validates the result before returning it.
func Load(path string) (*annealer.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("t0", DefaultT0)
	v.SetDefault("tmin", DefaultTMin)
	v.SetDefault("rcool", DefaultRCool)
	v.SetDefault("itermax", DefaultIterMax)
	v.SetDefault("whard", DefaultWHard)
	v.SetDefault("thresholdreheat", DefaultThresholdReheat)
	v.SetDefault("reheatfactor", DefaultReheatFactor)
	v.SetDefault("maxreheats", DefaultMaxReheats)
	v.SetDefault("alpha", DefaultAlpha)
	v.SetDefault("explorationfloor", DefaultExplorationFloor)
	v.SetDefault("seed", int64(0))

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &annealer.Config{
		T0:               v.GetFloat64("t0"),
		TMin:             v.GetFloat64("tmin"),
		RCool:            v.GetFloat64("rcool"),
		IterMax:          v.GetInt("itermax"),
		WHard:            v.GetFloat64("whard"),
		ThresholdReheat:  v.GetInt("thresholdreheat"),
		ReheatFactor:     v.GetFloat64("reheatfactor"),
		MaxReheats:       v.GetInt("maxreheats"),
		Alpha:            v.GetFloat64("alpha"),
		ExplorationFloor: v.GetFloat64("explorationfloor"),
		Seed:             v.GetInt64("seed"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
