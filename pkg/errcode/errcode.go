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

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBQueryError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaRepairError

	// Sources errors
	SourcesConfigError
	SourcesUnknownComponentError

	// Seed errors
	SeedDownloadError
	SeedDecompressError
	SeedDecodeError
	SeedInsertError
	SeedCancelledError

	// Install errors
	InstallNoComponentsError
	InstallSeedFailedError
	InstallRollbackError

	// Link errors
	LinkUnknownComponentError
	LinkUpdateError

	// Uninstall errors
	UninstallStrategyError
	UninstallBlockedError
	UninstallDropError

	// Health errors
	HealthLedgerReadError
	HealthOrphanCountError
	HealthSampleError

	// Worldable attachment errors
	WorldablesTableMissingError
	WorldableUnknownKindError
	WorldableResolveError
)
