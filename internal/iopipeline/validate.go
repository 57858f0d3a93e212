package iopipeline

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/ccslim/ccslim/internal/iofs"
	"github.com/ccslim/ccslim/internal/iotable"
	"github.com/ccslim/ccslim/pkg/rules"
	"github.com/gnames/gn"
)

// Validate applies the configured rule set to the merged scenario series
// and writes validation, pass and category columns per scenario.
func (p *pipeline) Validate(ctx context.Context) error {
	start := time.Now()
	if p.cfg.Inputs.Rules == "" {
		slog.Info("No rules file, skipping validation")
		return nil
	}
	if err := p.prepareOutput(); err != nil {
		return err
	}

	path := p.cfg.InputPath(p.cfg.Inputs.Rules)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return iofs.FileNotFoundError(path)
		}
		return iofs.ReadFileError(path, err)
	}
	rs, err := rules.Parse(data)
	if err != nil {
		return err
	}

	series, err := p.readSeries(SeriesFile)
	if err != nil {
		return err
	}

	sums, err := rules.NewEvaluator(rs, series).Run()
	if err != nil {
		return err
	}
	var cols []string
	for _, s := range sums {
		if !slices.Contains(cols, s.Column) {
			cols = append(cols, s.Column)
		}
		gn.Info("<em>%s</em>: %v", s.Column, s.Counts)
	}

	scens := series.Scenarios()
	outPath := p.cfg.OutputPath(ValidationFile)
	if err = iotable.WriteMeta(outPath, series.Meta, scens, cols); err != nil {
		return err
	}
	if p.archive != nil {
		if err = p.archive.WriteMeta(ctx, series.Meta); err != nil {
			return err
		}
	}

	p.finish("validate", start, len(scens), outPath)
	return nil
}
