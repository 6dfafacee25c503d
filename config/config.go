// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/poagraph/poag/internal/poa"
)

// ScoringConfig holds the alignment penalties
type ScoringConfig struct {
	// the cost of aligning two differing symbols
	Mismatch int `mapstructure:"mismatch"`

	// the one time cost of starting a gap
	GapOpen int `mapstructure:"gap-open"`

	// the per symbol cost of a gap, the opening symbol included
	GapExtend int `mapstructure:"gap-extend"`
}

// OutputConfig is for settings involving rendered output
type OutputConfig struct {
	// max sequence characters per FASTA line
	LineWidth int `mapstructure:"line-width"`
}

// Config is the root-level settings struct and is a mix
// of settings available in poag.yaml and those
// available from the command line
type Config struct {
	// alignment penalty settings
	Scoring ScoringConfig `mapstructure:"scoring"`

	// output rendering settings
	Output OutputConfig `mapstructure:"output"`
}

// NewConfig returns a new Config struct populated by
// Viper settings (either from the local poag.yaml)
// and/or command line arguments
func NewConfig() Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	if c.Scoring.Mismatch < 0 || c.Scoring.GapOpen < 0 || c.Scoring.GapExtend < 0 {
		log.Fatalf("scoring penalties must be non-negative, got %+v", c.Scoring)
	}
	if c.Output.LineWidth < 1 {
		log.Fatalf("output line-width must be positive, got %d", c.Output.LineWidth)
	}
	return c
}

// Penalties converts the scoring settings into the aligner's cost struct
func (c Config) Penalties() poa.Penalties {
	return poa.Penalties{
		Mismatch: uint32(c.Scoring.Mismatch),
		GapOpen:  uint32(c.Scoring.GapOpen),
		GapExt:   uint32(c.Scoring.GapExtend),
	}
}

func setDefaults() {
	viper.SetDefault("scoring.mismatch", 4)
	viper.SetDefault("scoring.gap-open", 6)
	viper.SetDefault("scoring.gap-extend", 2)
	viper.SetDefault("output.line-width", 60)
}
