package iopipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ccslim/ccslim/internal/iodb"
	"github.com/ccslim/ccslim/internal/iopipeline"
	"github.com/ccslim/ccslim/internal/iotable"
	"github.com/ccslim/ccslim/pkg/config"
	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/ccslim/ccslim/pkg/lifecycle"
	"github.com/ccslim/ccslim/pkg/region"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ccs = "Carbon Sequestration|CCS"

var inputs = map[string]string{
	"lookup.csv": `iso3c,r5_iamc,r10_iamc
AFG,R5ASIA,R10INDIA+
CHN,R5ASIA,R10CHINA+
BRA,R5LAM,R10LATIN_AM
ATA,,
`,
	"potential.csv": `ISO,Pot_ON_Baseline,Pot_OFF_Baseline,Pot_ON_Final,Pot_OFF_Final,Pot_ON_OG,Pot_OFF_OG,Absolute_Loss
AFG,60,40,30,20,10,5,50
CHN,100,100,50,50,20,20,100
BRA,10,0,5,0,0,0,5
ATA,NA,NA,NA,NA,NA,NA,NA
`,
	"world.csv": `Model,Scenario,Region,Variable,Unit,2010,2020,2100
m1,s1,World,Carbon Sequestration|CCS,Mt CO2/yr,0,1000,2000
m1,s2,World,Carbon Sequestration|CCS,Mt CO2/yr,0,100,200
m1,s1,World,Emissions|CO2,Mt CO2/yr,40000,30000,0
`,
	"r5.csv": `Model,Scenario,Region,Variable,Unit,2010,2020,2100
m1,s1,R5ASIA,Carbon Sequestration|CCS,Mt CO2/yr,0,500,1000
`,
	"r10.csv": `Model,Scenario,Region,Variable,Unit,2010,2020,2100
m1,s1,R10CHINA+,Carbon Sequestration|CCS,Mt CO2/yr,0,300,600
`,
	"meta.csv": `Model,Scenario,Category,NZ CO2,NZ GHG
m1,s1,C1,2050,
m1,s2,C3,,
`,
	"rules.yaml": `ccs_2050:
  variable: Carbon Sequestration|CCS
  criteria:
    upper_bound: 1200
    year: 2050
  categorize:
    name: ccs_level
    label: low
`,
}

func setup(t *testing.T, opts ...config.Option) *config.Config {
	dataDir := t.TempDir()
	for name, content := range inputs {
		path := filepath.Join(dataDir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	cfg := config.New()
	base := []config.Option{
		config.OptDataDir(dataDir),
		config.OptOutputDir(filepath.Join(t.TempDir(), "derived")),
		config.OptInputsRegionMapping("lookup.csv"),
		config.OptInputsPotential("potential.csv"),
		config.OptInputsScenariosWorld("world.csv"),
		config.OptInputsScenariosR5("r5.csv"),
		config.OptInputsScenariosR10("r10.csv"),
		config.OptInputsMetadata("meta.csv"),
		config.OptMetadataNetZeroCO2("NZ CO2"),
		config.OptMetadataNetZeroGHG("NZ GHG"),
		config.OptAnalysisVariables([]string{ccs}),
		config.OptAnalysisRegions([]string{"R5ASIA", "R5LAM", "World"}),
	}
	cfg.Update(append(base, opts...))
	return cfg
}

func readOutput(t *testing.T, cfg *config.Config, name string) *iotable.Sheet {
	sh, err := iotable.ReadTable(cfg.OutputPath(name), "")
	require.NoError(t, err)
	return sh
}

func TestPotential(t *testing.T) {
	cfg := setup(t)
	p := iopipeline.New(cfg, nil)
	require.NoError(t, p.Potential(context.Background()))

	aggs, err := iotable.Aggregates(readOutput(t, cfg, iopipeline.AggregatesFile))
	require.NoError(t, err)
	var regions []string
	for _, a := range aggs {
		regions = append(regions, a.Region)
	}
	assert.Equal(t, []string{
		"R5ASIA", "R5LAM", "R10INDIA+", "R10CHINA+", "R10LATIN_AM", region.World,
	}, regions)
	assert.Equal(t, 300.0, aggs[0].Values["Pot_Baseline"])
	assert.Equal(t, 150.0, aggs[0].Values["Pot_Final"])
	assert.Equal(t, 0.5, aggs[0].PercentageLost)
	_, ok := aggs[0].Values["Absolute_Loss"]
	assert.False(t, ok, "loss columns are dropped")
	assert.Equal(t, 155.0, aggs[5].Values["Pot_Final"])

	lim := readOutput(t, cfg, iopipeline.LimitsFile)
	assert.Len(t, lim.Rows, 9, "three thresholds of three regions")

	rep := p.Report()
	require.Len(t, rep.Stages, 1)
	assert.Equal(t, "potential", rep.Stages[0].Name)
	assert.Equal(t, 6, rep.Stages[0].Rows)
}

func TestPotentialWorldOverride(t *testing.T) {
	cfg := setup(t, config.OptInputsWorldOverride("override.csv"))
	path := filepath.Join(cfg.DataDir, "override.csv")
	require.NoError(t, os.WriteFile(path, []byte("field,value\nPot_OFF_Final,100\n"), 0644))

	require.NoError(t, iopipeline.New(cfg, nil).Potential(context.Background()))
	aggs, err := iotable.Aggregates(readOutput(t, cfg, iopipeline.AggregatesFile))
	require.NoError(t, err)

	world := aggs[len(aggs)-1]
	require.Equal(t, region.World, world.Region)
	assert.Equal(t, 100.0, world.Values["Pot_OFF_Final"])
	assert.Equal(t, 185.0, world.Values["Pot_Final"], "total follows override")
	assert.InDelta(t, 1-185.0/310.0, world.PercentageLost, 1e-12)
	assert.Equal(t, 150.0, aggs[0].Values["Pot_Final"], "other regions unchanged")
}

func TestPotentialUnknownRegion(t *testing.T) {
	cfg := setup(t, config.OptAnalysisRegions([]string{"R5MAF"}))
	err := iopipeline.New(cfg, nil).Potential(context.Background())
	assert.Error(t, err)
}

func TestStageNeedsEarlierOutput(t *testing.T) {
	cfg := setup(t)
	err := iopipeline.New(cfg, nil).Exceedance(context.Background())
	assert.Error(t, err, "aggregates file does not exist yet")
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t, config.OptInputsRules("rules.yaml"))

	ar := iodb.NewSQLiteArchive()
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0755))
	require.NoError(t, ar.Open(ctx, cfg.ArchivePath()))
	defer ar.Close()

	p := iopipeline.New(cfg, ar)
	require.NoError(t, p.Run(ctx))

	t.Run("series", func(t *testing.T) {
		sh := readOutput(t, cfg, iopipeline.SeriesFile)
		tbl, err := iotable.Scenarios(sh, nil)
		require.NoError(t, err)
		assert.Equal(t, 8, tbl.Len(), "four rate and four cumulative series")
		assert.Equal(t, "2010", sh.Header[5])
		assert.Equal(t, "2100", sh.Header[len(sh.Header)-1])

		nz := readOutput(t, cfg, iopipeline.NetZeroFile)
		assert.Equal(t, []string{"-1"}, nz.Header[5:], "no GHG net-zero year")
	})

	t.Run("exceedance", func(t *testing.T) {
		sh := readOutput(t, cfg, iopipeline.ExceedanceFile)
		assert.Len(t, sh.Rows, 9)
		yIdx := sh.Index(iotable.ExceedanceColumn)
		nIdx := sh.Index(iotable.YearsToExceedColumn)
		var found bool
		for _, row := range sh.Rows {
			if row[1] != "s1" || row[2] != region.World || row[3] != "high" {
				continue
			}
			found = true
			assert.Equal(t, "2115", row[yIdx])
			n, err := strconv.ParseFloat(row[nIdx], 64)
			require.NoError(t, err)
			assert.InDelta(t, (155000-41312.5)/1375, n, 1e-6)
		}
		assert.True(t, found)
	})

	t.Run("validate", func(t *testing.T) {
		sh := readOutput(t, cfg, iopipeline.ValidationFile)
		assert.Equal(t, []string{
			"Model", "Scenario", "validation_ccs_2050", "pass_ccs_2050", "ccs_level",
		}, sh.Header)
		assert.Equal(t, [][]string{
			{"m1", "s1", "true", "false", ""},
			{"m1", "s2", "true", "true", "low"},
		}, sh.Rows)
	})

	t.Run("stats", func(t *testing.T) {
		sh := readOutput(t, cfg, iopipeline.StatsFile)
		assert.Equal(t, "Measure", sh.Header[0])
		assert.NotEmpty(t, sh.Rows)
	})

	t.Run("archive", func(t *testing.T) {
		n, err := ar.Count(ctx, "exceedance")
		require.NoError(t, err)
		assert.Equal(t, 9, n)
		n, err = ar.Count(ctx, "series")
		require.NoError(t, err)
		assert.Equal(t, 16, n, "series and snapshots")
	})

	t.Run("report", func(t *testing.T) {
		rep := p.Report()
		assert.Equal(t, ar.RunID(), rep.RunID)
		assert.Len(t, rep.Stages, 5)
		require.Len(t, rep.CoverageGaps, 1, "R10 covers every R5 scenario")
		assert.Equal(t, "World", rep.CoverageGaps[0].Coarse)
		assert.Equal(t, "R5", rep.CoverageGaps[0].Fine)
		assert.Equal(t, []string{"m1"}, rep.CoverageGaps[0].Models)
		assert.Equal(t, 1, rep.CoverageGaps[0].Scenarios)

		data, err := os.ReadFile(cfg.OutputPath(iopipeline.ReportFile))
		require.NoError(t, err)
		var saved map[string]any
		require.NoError(t, json.Unmarshal(data, &saved))
		assert.Equal(t, rep.RunID, saved["runId"])
	})
}

func TestRunWithoutRules(t *testing.T) {
	cfg := setup(t)
	p := iopipeline.New(cfg, nil)
	require.NoError(t, p.Run(context.Background()))
	assert.Len(t, p.Report().Stages, 4)
	_, err := os.Stat(cfg.OutputPath(iopipeline.ValidationFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := iopipeline.New(setup(t), nil).Run(ctx)
	assert.Error(t, err)
}

func TestRunMissingInput(t *testing.T) {
	cfg := setup(t)
	require.NoError(t, os.Remove(cfg.InputPath(cfg.Inputs.Metadata)))

	err := iopipeline.New(cfg, nil).Run(context.Background())
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.FileNotFoundError, gnErr.Code)
	_, err = os.Stat(cfg.OutputPath(iopipeline.AggregatesFile))
	assert.True(t, os.IsNotExist(err), "no stage runs")
}

func TestSeriesCoverageGaps(t *testing.T) {
	cfg := setup(t)
	r10 := "Model,Scenario,Region,Variable,Unit,2010,2020,2100\n" +
		"m2,s9,R10CHINA+,Carbon Sequestration|CCS,Mt CO2/yr,0,300,600\n"
	require.NoError(t, os.WriteFile(cfg.InputPath("r10.csv"), []byte(r10), 0644))

	p := iopipeline.New(cfg, nil)
	require.NoError(t, p.Series(context.Background()))

	gaps := p.Report().CoverageGaps
	require.Len(t, gaps, 2)
	assert.Equal(t, lifecycle.GapReport{
		Coarse: "World", Fine: "R5", Models: []string{"m1"}, Scenarios: 1,
	}, gaps[0])
	assert.Equal(t, lifecycle.GapReport{
		Coarse: "R5", Fine: "R10", Models: []string{"m1"}, Scenarios: 1,
	}, gaps[1], "R10 is checked against R5")
}
