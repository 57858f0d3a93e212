package iopipeline

import (
	"context"
	"time"

	"github.com/ccslim/ccslim/internal/iotable"
	"github.com/ccslim/ccslim/pkg/region"
	"github.com/ccslim/ccslim/pkg/stats"
	"github.com/gnames/gn"
)

// Stats describes World storage at the end of the analysis period and at
// net-zero years for every climate category.
func (p *pipeline) Stats(ctx context.Context) error {
	start := time.Now()
	if err := p.prepareOutput(); err != nil {
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
	md, err := p.readMetadata()
	if err != nil {
		return err
	}

	rows := stats.Collect(stats.CollectInput{
		Series:         series,
		Snapshots:      snaps,
		Meta:           md.Meta,
		CategoryColumn: p.cfg.MetadataColumns.Category,
		Region:         region.World,
		EndYear:        p.cfg.Analysis.YearEnd,
	})
	groups := stats.GroupRows(rows, p.cfg.Analysis.Categories)

	path := p.cfg.OutputPath(StatsFile)
	if err = iotable.WriteStats(path, groups); err != nil {
		return err
	}
	if p.archive != nil {
		if err = p.archive.WriteStats(ctx, groups); err != nil {
			return err
		}
	}

	gn.Info("Described <em>%d</em> groups", len(groups))
	p.finish("stats", start, len(groups), path)
	return nil
}
