// Package bridge carries dlp calls as newline-delimited JSON frames over a
// transport channel to an external protocol helper that owns the handheld
// wire bytes. Client implements dlp.Session; Serve is the helper side and
// exposes any dlp.Session over a channel.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/models"
)

// Method names of the frame protocol.
const (
	methodHello         = "hello"
	methodReadUserInfo  = "read_user_info"
	methodWriteUserInfo = "write_user_info"
	methodReadSysInfo   = "read_sys_info"
	methodReadDBList    = "read_db_list"
	methodOpenConduit   = "open_conduit"
	methodOpenDB        = "open_db"
	methodCreateDB      = "create_db"
	methodDeleteDB      = "delete_db"
	methodAddSyncLog    = "add_sync_log"
	methodEndOfSync     = "end_of_sync"
	methodClose         = "close"

	methodRecordCount      = "db.record_count"
	methodReadByID         = "db.read_by_id"
	methodReadByIndex      = "db.read_by_index"
	methodReadNextModified = "db.read_next_modified"
	methodWriteRecord      = "db.write_record"
	methodDeleteRecord     = "db.delete_record"
	methodDeleteAll        = "db.delete_all"
	methodResetFlags       = "db.reset_flags"
	methodCleanUp          = "db.clean_up"
	methodReadAppBlock     = "db.read_app_block"
	methodWriteAppBlock    = "db.write_app_block"
	methodReadResource     = "db.read_resource"
	methodWriteResource    = "db.write_resource"
	methodCloseDB          = "db.close"
)

// ProtocolVersion is exchanged in the hello frame.
const ProtocolVersion = 1

type request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params params `json:"params"`
}

type params struct {
	DB       int              `json:"db,omitempty"`
	Version  int              `json:"version,omitempty"`
	Start    int              `json:"start,omitempty"`
	Index    int              `json:"index,omitempty"`
	ID       uint32           `json:"id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Mode     dlp.OpenMode     `json:"mode,omitempty"`
	Status   dlp.EndStatus    `json:"status,omitempty"`
	Entry    string           `json:"entry,omitempty"`
	Data     []byte           `json:"data,omitempty"`
	Info     *models.DBInfo   `json:"info,omitempty"`
	User     *models.UserInfo `json:"user,omitempty"`
	Record   *models.Record   `json:"record,omitempty"`
	Resource *models.Resource `json:"resource,omitempty"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *frameError     `json:"error,omitempty"`
}

type frameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type dbResult struct {
	DB   int    `json:"db"`
	Name string `json:"name"`
}

type idResult struct {
	ID uint32 `json:"id"`
}

type countResult struct {
	Count int `json:"count"`
}

const (
	codeNotFound = "not_found"
	codeExists   = "exists"
	codeReadOnly = "read_only"
	codeClosed   = "closed"
	codeInternal = "internal"
)

func encodeError(err error) *frameError {
	code := codeInternal
	switch {
	case errors.Is(err, dlp.ErrNotFound):
		code = codeNotFound
	case errors.Is(err, dlp.ErrExists):
		code = codeExists
	case errors.Is(err, dlp.ErrReadOnly):
		code = codeReadOnly
	case errors.Is(err, dlp.ErrClosed):
		code = codeClosed
	}
	return &frameError{Code: code, Message: err.Error()}
}

func decodeError(e *frameError) error {
	switch e.Code {
	case codeNotFound:
		return fmt.Errorf("%w: %s", dlp.ErrNotFound, e.Message)
	case codeExists:
		return fmt.Errorf("%w: %s", dlp.ErrExists, e.Message)
	case codeReadOnly:
		return fmt.Errorf("%w: %s", dlp.ErrReadOnly, e.Message)
	case codeClosed:
		return fmt.Errorf("%w: %s", dlp.ErrClosed, e.Message)
	}
	return fmt.Errorf("%w: %s", dlp.ErrIO, e.Message)
}
