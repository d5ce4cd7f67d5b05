package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"uvm-testgen/internal/gen"
	"uvm-testgen/internal/model"
	"uvm-testgen/internal/spec"
)

// errStrict is returned when --strict is set and the spec has warnings.
var errStrict = errors.New("spec has warnings")

// result describes one completed generation run.
type result struct {
	DUT       string
	OutputDir string
	Written   []string
}

// generate runs the whole pipeline: load, build, render, write.
// Nothing is written unless the model builds.
func (a *app) generate(specPath, outDir string) (*result, error) {
	doc, err := spec.LoadFile(specPath)
	if err != nil {
		return nil, err
	}

	m, err := model.Build(doc, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", specPath, err)
	}

	a.logger.Info("parsed spec",
		zap.String("dut", m.DUT),
		zap.Int("data_width", m.DataWidth),
		zap.Int("ports", len(m.Ports)),
		zap.Strings("fields", m.Fields),
		zap.Strings("flags", m.Flags),
		zap.Int("scenarios", len(m.Scenarios)),
	)

	for _, w := range m.Diagnostics.Warnings {
		a.logger.Warn(w.Message,
			zap.String("code", w.Code),
			zap.String("scenario", w.Scenario),
			zap.String("field", w.Field),
		)
	}

	for _, info := range m.Diagnostics.Infos {
		a.logger.Debug(info.Message, zap.String("code", info.Code))
	}

	if a.strict {
		if err := m.Diagnostics.AsError(); err != nil {
			return nil, fmt.Errorf("%w: %w", errStrict, err)
		}
	}

	files, err := gen.NewGenerator(gen.GeneratorConfigFrom(a.cfg)).Generate(m)
	if err != nil {
		return nil, err
	}

	written, err := gen.WriteFiles(files, outDir)
	for _, p := range written {
		a.logger.Debug("wrote file", zap.String("path", p))
	}

	if err != nil {
		return nil, err
	}

	return &result{DUT: m.DUT, OutputDir: outDir, Written: written}, nil
}

// printSummary lists the created files in sorted order.
func printSummary(w io.Writer, res *result) {
	fmt.Fprintf(w, "Generated UVM files for '%s' in '%s'\n", res.DUT, res.OutputDir)
	fmt.Fprintln(w, "Files created:")

	names := make([]string, 0, len(res.Written))
	for _, p := range res.Written {
		names = append(names, filepath.Base(p))
	}

	slices.Sort(names)

	for _, n := range names {
		fmt.Fprintln(w, "  ", n)
	}
}
