package gen

import (
	"fmt"

	"uvm-testgen/internal/config"
	"uvm-testgen/internal/ident"
	"uvm-testgen/internal/model"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// ReservedPorts are port names left out of the transaction class.
	ReservedPorts []string
	// SequencerPath is where the test scopes configurations and starts sequences.
	SequencerPath string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfigFrom(config.Default())
}

// GeneratorConfigFrom extracts the emission settings from a generator Config.
func GeneratorConfigFrom(cfg config.Config) GeneratorConfig {
	return GeneratorConfig{
		ReservedPorts: cfg.ReservedPorts,
		SequencerPath: cfg.SequencerPath,
	}
}

// Generator renders SystemVerilog artifacts from a canonical model.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{config: cfg}
}

// GeneratedFile represents a generated SystemVerilog source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "basic_read_seq.sv").
	Filename string
	// Content is the rendered source.
	Content []byte
}

// Generate renders every artifact for m, in emission order: the transaction,
// then config and sequence per scenario, then the test.
func (g *Generator) Generate(m *model.Model) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, 2+2*len(m.Scenarios))

	text, err := RenderTransaction(m.DUT, m.Ports, m.ExtraFields, m.Flags, g.config.ReservedPorts)
	if err != nil {
		return nil, fmt.Errorf("generating transaction: %w", err)
	}

	files = append(files, newFile(ident.Transaction(m.DUT), text))

	for i := range m.Scenarios {
		sc := &m.Scenarios[i]

		text, err = RenderConfig(sc)
		if err != nil {
			return nil, fmt.Errorf("generating config for %s: %w", sc.Name, err)
		}

		files = append(files, newFile(ident.Config(sc.Name), text))

		text, err = RenderSequence(m.DUT, sc, m.Fields, m.Flags)
		if err != nil {
			return nil, fmt.Errorf("generating sequence for %s: %w", sc.Name, err)
		}

		files = append(files, newFile(ident.Sequence(sc.Name), text))
	}

	text, err = RenderTest(m.DUT, m.Scenarios, g.config.SequencerPath)
	if err != nil {
		return nil, fmt.Errorf("generating test: %w", err)
	}

	files = append(files, newFile(ident.Test(m.DUT), text))

	return files, nil
}

func newFile(class, text string) GeneratedFile {
	return GeneratedFile{Filename: ident.Filename(class), Content: []byte(text)}
}
