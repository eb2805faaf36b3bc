package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pilot/internal/daemon"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/queue"
	"github.com/MKhiriev/go-pilot/internal/service"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/internal/utils"
	"github.com/MKhiriev/go-pilot/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:    http.StatusBadRequest,
	ErrInvalidHandle:  http.StatusBadRequest,
	ErrInvalidPilotID: http.StatusBadRequest,

	validators.ErrEmptyPilot:          http.StatusBadRequest,
	validators.ErrEmptyFile:           http.StatusBadRequest,
	validators.ErrEmptyConduit:        http.StatusBadRequest,
	validators.ErrEmptyCradle:         http.StatusBadRequest,
	validators.ErrInvalidPersistence:  http.StatusBadRequest,
	validators.ErrInvalidTimeout:      http.StatusBadRequest,
	validators.ErrInvalidOperation:    http.StatusBadRequest,
	validators.ErrMissingUserInfo:     http.StatusBadRequest,
	validators.ErrInvalidUserName:     http.StatusBadRequest,
	validators.ErrTimeoutNotPersisted: http.StatusBadRequest,

	service.ErrValidationNoHandle: http.StatusBadRequest,
	service.ErrUnknownPilot:       http.StatusNotFound,
	service.ErrUnknownCradle:      http.StatusNotFound,
	service.ErrRequestNotQueued:   http.StatusNotFound,

	queue.ErrMissingFile:    http.StatusUnprocessableEntity,
	queue.ErrInvalidRequest: http.StatusBadRequest,
	queue.ErrNotFound:       http.StatusNotFound,

	daemon.ErrStopped: http.StatusServiceUnavailable,

	store.ErrPilotNotFound:     http.StatusNotFound,
	store.ErrPilotNameTaken:    http.StatusConflict,
	store.ErrRequestBucketFull: http.StatusConflict,
	store.ErrRequestNotFound:   http.StatusNotFound,
	store.ErrRecordNotFound:    http.StatusNotFound,
	store.ErrBuildingSQLQuery:  http.StatusInternalServerError,
	store.ErrExecutingQuery:    http.StatusInternalServerError,
	store.ErrScanningRow:       http.StatusInternalServerError,
	store.ErrScanningRows:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and answers with its mapped status. Server
// side failures hide the message.
func writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Send()
		utils.WriteError(w, http.StatusText(status), status)
		return
	}
	log.Debug().Err(err).Str("func", fn).Int("status", status).Send()
	utils.WriteError(w, err.Error(), status)
}
