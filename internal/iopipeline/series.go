package iopipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/ccslim/ccslim/internal/iotable"
	"github.com/ccslim/ccslim/pkg/lifecycle"
	"github.com/ccslim/ccslim/pkg/netzero"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// granularity is a scenario table of one region resolution.
type granularity struct {
	name  string
	input string
}

// Series merges World, R5 and R10 scenario series, reports coverage gaps,
// interpolates onto the analysis years and adds cumulative series. The
// result and its net-zero snapshots are written as IAMC tables.
func (p *pipeline) Series(ctx context.Context) error {
	start := time.Now()
	if err := p.prepareOutput(); err != nil {
		return err
	}

	grans := []granularity{
		{"World", p.cfg.Inputs.ScenariosWorld},
		{"R5", p.cfg.Inputs.ScenariosR5},
		{"R10", p.cfg.Inputs.ScenariosR10},
	}
	tables := make([]*timeseries.Table, len(grans))
	bar := newProgressBar(len(grans), "scenario tables: ")
	for i, g := range grans {
		sh, err := p.readInput(g.input, "")
		if err != nil {
			bar.Finish()
			return err
		}
		tables[i], err = iotable.Scenarios(sh, p.cfg.Analysis.Variables)
		if err != nil {
			bar.Finish()
			return err
		}
		slog.Info("Scenario series read", "granularity", g.name,
			"series", tables[i].Len())
		bar.Increment()
	}
	bar.Finish()

	for i := 1; i < len(grans); i++ {
		p.reportGap(grans[i-1].name, grans[i].name, tables[i-1], tables[i])
	}

	merged, err := timeseries.Merge(tables...)
	if err != nil {
		return err
	}

	md, err := p.readMetadata()
	if err != nil {
		return err
	}
	merged.Meta = md.Meta

	years := timeseries.YearRange(p.cfg.Analysis.YearStart, p.cfg.Analysis.YearEnd)
	data := timeseries.Interpolate(merged, years)

	parts := []*timeseries.Table{data}
	for _, v := range p.cfg.Analysis.Variables {
		cum, err := timeseries.Cumulate(data, timeseries.CumulateOptions{
			Variable: v,
			Start:    p.cfg.Analysis.YearStart,
			End:      p.cfg.Analysis.YearEnd,
		})
		if err != nil {
			return err
		}
		slog.Info("Cumulative series created", "variable", v, "series", cum.Len())
		parts = append(parts, cum)
	}
	all, err := timeseries.Merge(parts...)
	if err != nil {
		return err
	}

	snaps := netzero.Combine(all, md.CO2, md.GHG)

	seriesPath := p.cfg.OutputPath(SeriesFile)
	if err = iotable.WriteSeries(seriesPath, all); err != nil {
		return err
	}
	nzPath := p.cfg.OutputPath(NetZeroFile)
	if err = iotable.WriteSeries(nzPath, snaps); err != nil {
		return err
	}
	if p.archive != nil {
		if err = p.archive.WriteSeries(ctx, seriesDataset, all); err != nil {
			return err
		}
		if err = p.archive.WriteSeries(ctx, netzeroDataset, snaps); err != nil {
			return err
		}
	}

	gn.Info("Wrote <em>%s</em> series of <em>%s</em> scenarios",
		humanize.Comma(int64(all.Len())),
		humanize.Comma(int64(len(all.Scenarios()))),
	)
	p.finish("series", start, all.Len(), seriesPath, nzPath)
	return nil
}

// reportGap warns about scenarios that have coarse but no fine series.
// Nothing is removed.
func (p *pipeline) reportGap(coarseName, fineName string, coarse, fine *timeseries.Table) {
	gap := timeseries.CoverageGap(coarse, fine)
	if gap.Empty() {
		return
	}
	slog.Warn("Coverage gap",
		"coarse", coarseName,
		"fine", fineName,
		"scenarios", len(gap.Missing),
		"models", gap.Models,
	)
	gn.Warn("%d scenarios of %d models have %s but no %s series",
		len(gap.Missing), len(gap.Models), coarseName, fineName)
	p.report.CoverageGaps = append(p.report.CoverageGaps, lifecycle.GapReport{
		Coarse:    coarseName,
		Fine:      fineName,
		Models:    gap.Models,
		Scenarios: len(gap.Missing),
	})
}
