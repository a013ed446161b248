package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDoc mirrors SimConfig's serializable fields. sync_period is an
// explicit *float64 so an absent or null key decodes to nil (never sync)
// and an explicit 0 decodes to a non-nil pointer to zero (sync every
// tick), preserving the three-way distinction documented on SimConfig.
type yamlDoc struct {
	SyncPeriod      *float64 `yaml:"sync_period"`
	StepSize        float64  `yaml:"step_size"`
	IgnoreRemaining bool     `yaml:"ignore_remaining"`
	Staleness       int      `yaml:"staleness"`
	GreedyLimit     float64  `yaml:"greedy_limit"`
	Alpha           float64  `yaml:"alpha"`
}

// Dump marshals c to YAML. The Logger field is never serialized.
func (c *SimConfig) Dump() ([]byte, error) {
	doc := yamlDoc{
		SyncPeriod:      c.SyncPeriod,
		StepSize:        c.StepSize,
		IgnoreRemaining: c.IgnoreRemaining,
		Staleness:       c.Staleness,
		GreedyLimit:     c.GreedyLimit,
		Alpha:           c.Alpha,
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}

// Save writes c's YAML encoding to path.
func (c *SimConfig) Save(path string) error {
	out, err := c.Dump()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("config: write %q: %w", path, err)
	}
	return nil
}

// Load reads and validates a SimConfig from a YAML file at path. Fields
// absent from the file keep SimConfig's zero value except step_size,
// greedy_limit, and alpha, which fall back to their documented defaults.
func Load(path string) (*SimConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	c := New()
	c.SyncPeriod = doc.SyncPeriod
	if doc.StepSize != 0 {
		c.StepSize = doc.StepSize
	}
	c.IgnoreRemaining = doc.IgnoreRemaining
	c.Staleness = doc.Staleness
	if doc.GreedyLimit != 0 {
		c.GreedyLimit = doc.GreedyLimit
	}
	if doc.Alpha != 0 {
		c.Alpha = doc.Alpha
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
