package iopipeline

import (
	"context"
	"time"

	"github.com/ccslim/ccslim/internal/iotable"
	"github.com/ccslim/ccslim/pkg/exceedance"
	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// Exceedance compares cumulative storage of the first analysis variable
// with regional limits taken from the aggregated potential.
func (p *pipeline) Exceedance(ctx context.Context) error {
	start := time.Now()
	if err := p.prepareOutput(); err != nil {
		return err
	}

	sh, err := p.readOutput(AggregatesFile)
	if err != nil {
		return err
	}
	aggs, err := iotable.Aggregates(sh)
	if err != nil {
		return err
	}
	regions := p.cfg.Analysis.Regions
	limits, err := potential.RegionLimits(aggs, regions, p.cfg.Analysis.Thresholds)
	if err != nil {
		return err
	}

	series, err := p.readSeries(SeriesFile)
	if err != nil {
		return err
	}
	snaps, err := p.readSeries(NetZeroFile)
	if err != nil {
		return err
	}

	rate := p.cfg.Analysis.Variables[0]
	in := exceedance.Input{
		Series:             series,
		Snapshots:          snaps,
		Limits:             limits,
		CumulativeVariable: timeseries.CumulateOptions{Variable: rate}.CumulativeName(),
		RateVariable:       rate,
		DomainStart:        p.cfg.Analysis.DomainStart,
		DomainEnd:          p.cfg.Analysis.DomainEnd,
	}

	var res []exceedance.Result
	bar := newProgressBar(len(regions), "regions: ")
	for _, reg := range regions {
		rs, err := exceedance.ComputeRegion(in, reg)
		if err != nil {
			bar.Finish()
			return err
		}
		res = append(res, rs...)
		bar.Increment()
	}
	bar.Finish()

	path := p.cfg.OutputPath(ExceedanceFile)
	if err = iotable.WriteExceedance(path, res); err != nil {
		return err
	}
	if p.archive != nil {
		if err = p.archive.WriteExceedance(ctx, res); err != nil {
			return err
		}
	}

	gn.Info("Computed <em>%s</em> exceedance results",
		humanize.Comma(int64(len(res))))
	p.finish("exceedance", start, len(res), path)
	return nil
}
