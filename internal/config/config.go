// Package config holds the generator defaults that shape normalization and
// emission: default DUT name and data width, reserved clock/reset port names,
// boolean-flag prefixes and default datatypes.
//
// Settings may be overridden from a YAML file:
//
//	default_data_width: 16
//	reserved_ports: [clk, rst_n]
//	flag_prefixes: [enable_, flag_, en_]
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = ".uvm-testgen.yaml"

// Limits for data_width. Widths beyond maxDataWidth are almost certainly typos.
const (
	minDataWidth = 1
	maxDataWidth = 4096
)

// Config holds generator-wide defaults.
type Config struct {
	// DefaultDUT is used when the document has no "dut" key.
	DefaultDUT string `yaml:"default_dut"`
	// DefaultDataWidth is used when the document has no "data_width" key.
	DefaultDataWidth int `yaml:"default_data_width"`
	// DefaultNumTransactions is used when a scenario has no "num_transactions" key.
	DefaultNumTransactions int `yaml:"default_num_transactions"`
	// OutputDir is the directory artifacts are written to when none is given.
	OutputDir string `yaml:"output_dir"`
	// ReservedPorts are clock/reset names that never become transaction members.
	ReservedPorts []string `yaml:"reserved_ports"`
	// FlagPrefixes mark constraint keys as boolean flags.
	FlagPrefixes []string `yaml:"flag_prefixes"`
	// FieldDatatype is the datatype of a ranged field with no annotation.
	FieldDatatype string `yaml:"field_datatype"`
	// FlagDatatype is the datatype of a flag with no annotation.
	FlagDatatype string `yaml:"flag_datatype"`
	// PortDatatype is the datatype of a port with no "datatype" key.
	PortDatatype string `yaml:"port_datatype"`
	// SequencerPath is the hierarchical path, relative to the test, of the
	// sequencer that receives configurations and runs sequences.
	SequencerPath string `yaml:"sequencer_path"`
}

// Default returns the built-in generator configuration.
func Default() Config {
	return Config{
		DefaultDUT:             "generic_dut",
		DefaultDataWidth:       32,
		DefaultNumTransactions: 10,
		OutputDir:              "output_uvm",
		ReservedPorts:          []string{"clk", "clock", "rst", "reset", "reset_n", "rstn"},
		FlagPrefixes:           []string{"enable_", "flag_"},
		FieldDatatype:          "int",
		FlagDatatype:           "bit",
		PortDatatype:           "logic",
		SequencerPath:          "env.agent.sequencer",
	}
}

// LoadFile loads settings from path on top of Default.
// A missing file is not an error; the defaults are returned unchanged.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML settings on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a build.
func (c Config) Validate() error {
	var errs []error

	if c.DefaultDUT == "" {
		errs = append(errs, errors.New("default_dut must not be empty"))
	}

	if c.DefaultDataWidth < minDataWidth || c.DefaultDataWidth > maxDataWidth {
		errs = append(errs, fmt.Errorf("default_data_width %d out of range [%d, %d]",
			c.DefaultDataWidth, minDataWidth, maxDataWidth))
	}

	if c.DefaultNumTransactions < 0 {
		errs = append(errs, fmt.Errorf("default_num_transactions %d is negative", c.DefaultNumTransactions))
	}

	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}

	if len(c.FlagPrefixes) == 0 {
		errs = append(errs, errors.New("flag_prefixes must not be empty"))
	}

	if slices.Contains(c.FlagPrefixes, "") {
		errs = append(errs, errors.New("flag_prefixes must not contain an empty prefix"))
	}

	if c.FieldDatatype == "" || c.FlagDatatype == "" || c.PortDatatype == "" {
		errs = append(errs, errors.New("default datatypes must not be empty"))
	}

	if c.SequencerPath == "" {
		errs = append(errs, errors.New("sequencer_path must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// ValidDataWidth reports whether w is an acceptable data width.
func ValidDataWidth(w int) bool {
	return w >= minDataWidth && w <= maxDataWidth
}

// IsReserved reports whether a port name is a reserved clock/reset name.
func (c Config) IsReserved(port string) bool {
	return slices.Contains(c.ReservedPorts, port)
}

// IsFlag reports whether a constraint key carries a boolean-flag prefix.
func (c Config) IsFlag(key string) bool {
	for _, p := range c.FlagPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}

	return false
}
