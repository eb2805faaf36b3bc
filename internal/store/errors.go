package store

import "errors"

// Sentinel errors returned by repository methods. Callers match them with
// [errors.Is].
var (
	// ErrPilotNotFound is returned when no profile matches the id or name.
	ErrPilotNotFound = errors.New("pilot was not found")

	// ErrPilotNameTaken is returned when saving a profile whose name is
	// already used by another id.
	ErrPilotNameTaken = errors.New("pilot name already exists")

	// ErrRequestNotFound is returned when a request handle does not exist.
	ErrRequestNotFound = errors.New("request was not found")

	// ErrRequestBucketFull is returned when a bucket used up its sequence
	// numbers. Handles are never reused, and a sequence of HandleBase would
	// fall into the next pilot's range.
	ErrRequestBucketFull = errors.New("request bucket has no free handles")

	// ErrConduitConfigNotFound is returned when a pilot has no stored
	// configuration for a conduit.
	ErrConduitConfigNotFound = errors.New("conduit config was not found")

	// ErrRecordNotFound is returned when a desktop record does not exist.
	ErrRecordNotFound = errors.New("desktop record was not found")

	// ErrUnknownDriver is returned by NewConnect for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
