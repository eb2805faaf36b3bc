package syncengine

import "errors"

var (
	// ErrNoConduit is returned for a job without a record conduit.
	ErrNoConduit = errors.New("no record conduit")
	// ErrSyncTypeDisabled is returned for a job whose sync type is NotSet.
	ErrSyncTypeDisabled = errors.New("sync type disabled")
	// ErrRecord wraps failures confined to one record.
	ErrRecord = errors.New("record failed")
)
