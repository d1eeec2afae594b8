// Package config loads solver parameters with viper, following
// precedence CLI flags > environment > YAML config file > defaults.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable parameter the four solvers in internal/
// accept, plus the backtracking time limit.
type Config struct {
	BacktrackTimeLimit time.Duration

	GraspAlpha              float64
	GraspMaxIterations      int
	GraspMaxLocalIterations int

	GAPopulationSize int
	GAGenerations    int
	GAMutationRate   float64
	GACrossoverRate  float64
	GATournamentSize int

	Seed int64

	RestartWorkers int
	RestartTime    time.Duration
}

// FlagBindings maps a solver flag's viper key (e.g. "grasp.alpha") to the
// name of the pflag that should be allowed to override it.
type FlagBindings map[string]string

// Load builds a Config from, in increasing precedence: built-in
// defaults, an optional YAML file at configPath (ignored if unset or
// missing), environment variables prefixed CBCTT_, and any flag in
// bindings that the caller actually set on the command line. An unset
// flag's zero value never overrides the config file or environment,
// since viper treats a bound-but-unchanged flag as just another default.
func Load(configPath string, flagSet *pflag.FlagSet, bindings FlagBindings) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix("CBCTT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flagSet != nil {
		for viperKey, flagName := range bindings {
			flag := flagSet.Lookup(flagName)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(viperKey, flag); err != nil {
				return nil, err
			}
		}
	}

	return &Config{
		BacktrackTimeLimit: v.GetDuration("backtrack.time_limit"),

		GraspAlpha:              v.GetFloat64("grasp.alpha"),
		GraspMaxIterations:      v.GetInt("grasp.max_iterations"),
		GraspMaxLocalIterations: v.GetInt("grasp.max_local_iterations"),

		GAPopulationSize: v.GetInt("genetic.population_size"),
		GAGenerations:    v.GetInt("genetic.generations"),
		GAMutationRate:   v.GetFloat64("genetic.mutation_rate"),
		GACrossoverRate:  v.GetFloat64("genetic.crossover_rate"),
		GATournamentSize: v.GetInt("genetic.tournament_size"),

		Seed: v.GetInt64("seed"),

		RestartWorkers: v.GetInt("restart.workers"),
		RestartTime:    v.GetDuration("restart.time"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backtrack.time_limit", "10s")

	v.SetDefault("grasp.alpha", 0.3)
	v.SetDefault("grasp.max_iterations", 100)
	v.SetDefault("grasp.max_local_iterations", 50)

	v.SetDefault("genetic.population_size", 50)
	v.SetDefault("genetic.generations", 200)
	v.SetDefault("genetic.mutation_rate", 0.1)
	v.SetDefault("genetic.crossover_rate", 0.8)
	v.SetDefault("genetic.tournament_size", 3)

	v.SetDefault("seed", int64(1))

	v.SetDefault("restart.workers", 1)
	v.SetDefault("restart.time", "0s")
}
