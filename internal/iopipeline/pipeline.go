// Package iopipeline implements lifecycle.Pipeline. It reads input
// tables, runs the computations of pkg/ packages and writes derived
// tables, optionally also into the run archive.
package iopipeline

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ccslim/ccslim/internal/iofs"
	"github.com/ccslim/ccslim/internal/iotable"
	ccslim "github.com/ccslim/ccslim/pkg"
	"github.com/ccslim/ccslim/pkg/config"
	"github.com/ccslim/ccslim/pkg/db"
	"github.com/ccslim/ccslim/pkg/lifecycle"
	"github.com/ccslim/ccslim/pkg/timeseries"
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// Names of derived files in the output directory.
const (
	AggregatesFile = "101_Analysis_dataset_r5_r10.csv"
	LimitsFile     = "101_global_limits.csv"
	SeriesFile     = "102_ccs_data_r5_r10.csv"
	NetZeroFile    = "102_netzero_ccs_data_r5_r10.csv"
	ExceedanceFile = "103_exceedence_years.csv"
	ValidationFile = "104_scenario_validation.csv"
	StatsFile      = "105_storage_statistics.csv"
	ReportFile     = "report.json"
)

// Dataset names of series in the archive.
const (
	seriesDataset  = "series"
	netzeroDataset = "netzero"
)

// pipeline implements lifecycle.Pipeline.
type pipeline struct {
	cfg     *config.Config
	archive db.Archiver
	report  lifecycle.Report
	elapsed time.Duration
}

// New creates a pipeline. If archive is not nil it has to be open, and
// every stage also stores its tables there.
func New(cfg *config.Config, archive db.Archiver) lifecycle.Pipeline {
	res := &pipeline{
		cfg:     cfg,
		archive: archive,
		report:  lifecycle.Report{Version: ccslim.Version},
	}
	if archive != nil {
		res.report.RunID = archive.RunID()
	}
	return res
}

// Run executes all stages. The rules stage runs only if a rules file is
// configured.
func (p *pipeline) Run(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting pipeline run")
	if err := iofs.CheckInputs(p.inputTables()...); err != nil {
		return err
	}

	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"potential", p.Potential},
		{"series", p.Series},
		{"exceedance", p.Exceedance},
		{"validate", p.Validate},
		{"stats", p.Stats},
	}
	for i, st := range stages {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}
		gn.Info("(%d/%d) Stage <em>%s</em>", i+1, len(stages), st.name)
		if err := st.fn(ctx); err != nil {
			return err
		}
	}

	dur := time.Since(start)
	path, err := p.saveReport()
	if err != nil {
		return err
	}
	slog.Info("Pipeline complete",
		"stages", len(p.report.Stages),
		"report", path,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(`Pipeline complete
Report: <em>%s</em>
Elapsed time: <em>%s</em>
`, path, gnfmt.TimeString(dur.Seconds()))
	return nil
}

func (p *pipeline) Report() lifecycle.Report {
	res := p.report
	res.Stages = append([]lifecycle.StageReport(nil), p.report.Stages...)
	res.CoverageGaps = append([]lifecycle.GapReport(nil), p.report.CoverageGaps...)
	res.Duration = gnfmt.TimeString(p.elapsed.Seconds())
	return res
}

// saveReport writes the report as pretty JSON into the output directory.
func (p *pipeline) saveReport() (string, error) {
	path := p.cfg.OutputPath(ReportFile)
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(p.Report())
	if err != nil {
		return "", ReportError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", ReportError(path, err)
	}
	return path, nil
}

// finish records a stage in the report.
func (p *pipeline) finish(name string, start time.Time, rows int, outputs ...string) {
	dur := time.Since(start)
	p.elapsed += dur
	p.report.Stages = append(p.report.Stages, lifecycle.StageReport{
		Name:     name,
		Outputs:  outputs,
		Rows:     rows,
		Duration: gnfmt.TimeString(dur.Seconds()),
	})
	slog.Info("Stage complete", "stage", name, "rows", rows,
		"duration", gnfmt.TimeString(dur.Seconds()))
}

func (p *pipeline) prepareOutput() error {
	return iofs.EnsureDir(p.cfg.OutputDir)
}

// inputTables returns paths of all configured input tables.
func (p *pipeline) inputTables() []string {
	in := p.cfg.Inputs
	names := []string{
		in.RegionMapping, in.Potential, in.WorldOverride,
		in.ScenariosWorld, in.ScenariosR5, in.ScenariosR10, in.Metadata,
	}
	res := make([]string, len(names))
	for i, v := range names {
		res[i] = p.cfg.InputPath(v)
	}
	return res
}

// readInput reads a configured input table.
func (p *pipeline) readInput(name, sheet string) (*iotable.Sheet, error) {
	path := p.cfg.InputPath(name)
	slog.Info("Reading input", "path", path)
	return iotable.ReadTable(path, sheet)
}

// readOutput reads a table written by an earlier stage.
func (p *pipeline) readOutput(name string) (*iotable.Sheet, error) {
	path := p.cfg.OutputPath(name)
	slog.Info("Reading derived table", "path", path)
	return iotable.ReadTable(path, "")
}

// readSeries reads a derived IAMC table.
func (p *pipeline) readSeries(name string) (*timeseries.Table, error) {
	sh, err := p.readOutput(name)
	if err != nil {
		return nil, err
	}
	return iotable.Scenarios(sh, nil)
}

// readMetadata reads scenario metadata with categories and net-zero
// years.
func (p *pipeline) readMetadata() (iotable.Metadata, error) {
	sh, err := p.readInput(p.cfg.Inputs.Metadata, p.cfg.Inputs.MetadataSheet)
	if err != nil {
		return iotable.Metadata{}, err
	}
	return iotable.DecodeMetadata(sh, p.cfg.MetadataColumns)
}

// newProgressBar creates a progress bar that disappears when finished.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
