package iodb

// tables lists archive tables in creation order.
var tables = []string{
	"runs", "aggregates", "limits", "series", "points",
	"exceedance", "stats", "meta",
}

var ddl = []string{
	`CREATE TABLE runs (
		id TEXT PRIMARY KEY,
		version TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE aggregates (
		granularity TEXT NOT NULL,
		region TEXT NOT NULL,
		field TEXT NOT NULL,
		value REAL,
		PRIMARY KEY (granularity, region, field)
	)`,
	`CREATE TABLE limits (
		region TEXT NOT NULL,
		threshold TEXT NOT NULL,
		field TEXT NOT NULL,
		note TEXT NOT NULL,
		value REAL,
		PRIMARY KEY (region, threshold)
	)`,
	`CREATE TABLE series (
		id TEXT PRIMARY KEY,
		dataset TEXT NOT NULL,
		model TEXT NOT NULL,
		scenario TEXT NOT NULL,
		region TEXT NOT NULL,
		variable TEXT NOT NULL,
		unit TEXT NOT NULL
	)`,
	`CREATE TABLE points (
		series_id TEXT NOT NULL REFERENCES series(id),
		year INTEGER NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (series_id, year)
	)`,
	`CREATE TABLE exceedance (
		model TEXT NOT NULL,
		scenario TEXT NOT NULL,
		region TEXT NOT NULL,
		threshold TEXT NOT NULL,
		note TEXT NOT NULL,
		years_to_exceed REAL,
		year REAL
	)`,
	`CREATE TABLE stats (
		measure TEXT NOT NULL,
		variable TEXT NOT NULL,
		category TEXT NOT NULL,
		count INTEGER NOT NULL,
		mean REAL,
		std REAL,
		min REAL,
		p5 REAL,
		p25 REAL,
		p50 REAL,
		p75 REAL,
		p95 REAL,
		max REAL
	)`,
	`CREATE TABLE meta (
		model TEXT NOT NULL,
		scenario TEXT NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (model, scenario, name)
	)`,
	`CREATE INDEX idx_points_year ON points (year)`,
	`CREATE INDEX idx_exceedance_region ON exceedance (region, threshold)`,
}
