package models

import "time"

// InstallRequest asks the daemon to install a file on the next hotsync of
// a handheld.
type InstallRequest struct {
	Pilot       string      `json:"pilot"`
	File        string      `json:"file"`
	Description string      `json:"description,omitempty"`
	Persistence Persistence `json:"persistence,omitempty"`
	// Timeout in seconds; only immediate requests expire.
	Timeout int `json:"timeout,omitempty"`
}

// RestoreRequest asks for every backed up database to be reinstalled. An
// empty Directory means the pilot's default backup directory.
type RestoreRequest struct {
	Pilot       string      `json:"pilot"`
	Directory   string      `json:"directory,omitempty"`
	Persistence Persistence `json:"persistence,omitempty"`
	Timeout     int         `json:"timeout,omitempty"`
}

// ConduitRunRequest asks for one conduit to run with an explicit operation
// on the next hotsync.
type ConduitRunRequest struct {
	Pilot       string           `json:"pilot"`
	Conduit     string           `json:"conduit"`
	Operation   ConduitOperation `json:"operation,omitempty"`
	Persistence Persistence      `json:"persistence,omitempty"`
	Timeout     int              `json:"timeout,omitempty"`
}

// CradleRequest is a request served by whatever handheld connects to a
// cradle next: reading or writing its identity or reading its system block.
type CradleRequest struct {
	Cradle       string      `json:"cradle"`
	Persistence  Persistence `json:"persistence,omitempty"`
	Timeout      int         `json:"timeout,omitempty"`
	ContinueSync bool        `json:"continue_sync,omitempty"`
	// UserInfo is required by SetUserInfo.
	UserInfo *UserInfo `json:"user_info,omitempty"`
}

// TimeoutDuration converts a timeout in seconds.
func TimeoutDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// HandleResponse is returned for every queued request.
type HandleResponse struct {
	Handle int64 `json:"handle"`
}

// PauseRequest toggles the paused state.
type PauseRequest struct {
	On bool `json:"on"`
}
