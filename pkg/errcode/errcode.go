package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	FileNotFoundError
	UnsupportedFormatError

	// Logging errors
	CreateLogFileError

	// Table errors
	MissingColumnError
	EmptyTableError
	ParseNumberError
	MissingSheetError

	// Region mapping errors
	RegionDuplicateCodeError

	// Potential errors
	PotentialOverrideFieldError
	PotentialUnknownRegionError
	PotentialUnknownFieldError

	// Series errors
	SeriesDuplicateKeyError
	SeriesOffsetYearError
	SeriesYearRangeError
	SeriesNoDataError

	// Rules errors
	RulesDefinitionError
	RulesMissingValidationError

	// Archive errors
	ArchiveOpenError
	ArchiveSchemaError
	ArchiveWriteError
	ArchiveQueryError
	ArchiveNotOpenError

	// Pipeline errors
	CancelledError
)
