package iopipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/ccslim/ccslim/internal/iotable"
	"github.com/ccslim/ccslim/pkg/potential"
	"github.com/ccslim/ccslim/pkg/region"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// Potential aggregates the country potential dataset into R5, R10 and
// World regions, applies the World override and derives storage limits
// of the analysis regions.
func (p *pipeline) Potential(ctx context.Context) error {
	start := time.Now()
	if err := p.prepareOutput(); err != nil {
		return err
	}

	mappings, err := p.mappings()
	if err != nil {
		return err
	}

	sh, err := p.readInput(p.cfg.Inputs.Potential, "")
	if err != nil {
		return err
	}
	ds, err := iotable.Potential(sh, p.cfg.MappingColumns.PotentialISO)
	if err != nil {
		return err
	}
	ds = potential.Prepare(ds)
	gn.Info("Read potential of <em>%s</em> countries",
		humanize.Comma(int64(len(ds.Records))))

	override, err := p.worldOverride()
	if err != nil {
		return err
	}

	var all []potential.Aggregate
	for _, m := range mappings {
		aggs := ds.Aggregate(m)
		if override != nil && m.Name() == region.World {
			if aggs, err = potential.ApplyWorldOverride(aggs, override); err != nil {
				return err
			}
			slog.Info("World potential overridden", "fields", len(override))
		}
		if p.archive != nil {
			if err = p.archive.WriteAggregates(ctx, m.Name(), aggs); err != nil {
				return err
			}
		}
		all = append(all, aggs...)
	}

	aggPath := p.cfg.OutputPath(AggregatesFile)
	if err = iotable.WriteAggregates(aggPath, ds.Fields, all); err != nil {
		return err
	}

	limits, err := potential.RegionLimits(
		all, p.cfg.Analysis.Regions, p.cfg.Analysis.Thresholds,
	)
	if err != nil {
		return err
	}
	limPath := p.cfg.OutputPath(LimitsFile)
	if err = iotable.WriteLimits(limPath, p.cfg.Analysis.Regions, limits); err != nil {
		return err
	}
	if p.archive != nil {
		if err = p.archive.WriteLimits(ctx, limits); err != nil {
			return err
		}
	}

	gn.Info("Aggregated potential of <em>%d</em> regions", len(all))
	p.finish("potential", start, len(all), aggPath, limPath)
	return nil
}

// mappings builds R5, R10 and World mappings from the country lookup.
func (p *pipeline) mappings() ([]*region.Mapping, error) {
	sh, err := p.readInput(p.cfg.Inputs.RegionMapping, "")
	if err != nil {
		return nil, err
	}
	lk := iotable.Lookup(sh)
	cols := p.cfg.MappingColumns

	r5, err := region.Build(lk, cols.ISO, cols.R5, "R5")
	if err != nil {
		return nil, err
	}
	r10, err := region.Build(lk, cols.ISO, cols.R10, "R10")
	if err != nil {
		return nil, err
	}
	world, err := region.NewWorld(lk, cols.ISO)
	if err != nil {
		return nil, err
	}
	slog.Info("Region mappings built",
		"r5", r5.Len(), "r10", r10.Len(),
		"countries", len(world.Members(region.World)),
	)
	return []*region.Mapping{r5, r10, world}, nil
}

// worldOverride reads authoritative World figures, nil if not configured.
func (p *pipeline) worldOverride() (map[string]float64, error) {
	if p.cfg.Inputs.WorldOverride == "" {
		return nil, nil
	}
	sh, err := p.readInput(p.cfg.Inputs.WorldOverride, "")
	if err != nil {
		return nil, err
	}
	return iotable.Override(sh)
}
