// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/utils"
	"github.com/MKhiriev/go-pilot/models"
)

// writeHandle answers a queued request with 202 and its handle.
func writeHandle(w http.ResponseWriter, r *http.Request, fn string, handle int64) {
	logger.FromRequest(r).Info().Str("func", fn).Int64("handle", handle).Msg("request queued")
	utils.WriteJSON(w, models.HandleResponse{Handle: handle}, http.StatusAccepted)
}

func (h *Handler) requestInstall(w http.ResponseWriter, r *http.Request) {
	var req models.InstallRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.requestInstall", err)
		return
	}

	handle, err := h.control.RequestInstall(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "*Handler.requestInstall", err)
		return
	}
	writeHandle(w, r, "*Handler.requestInstall", handle)
}

func (h *Handler) requestRestore(w http.ResponseWriter, r *http.Request) {
	var req models.RestoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.requestRestore", err)
		return
	}

	handle, err := h.control.RequestRestore(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "*Handler.requestRestore", err)
		return
	}
	writeHandle(w, r, "*Handler.requestRestore", handle)
}

func (h *Handler) requestConduit(w http.ResponseWriter, r *http.Request) {
	var req models.ConduitRunRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.requestConduit", err)
		return
	}

	handle, err := h.control.RequestConduit(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "*Handler.requestConduit", err)
		return
	}
	writeHandle(w, r, "*Handler.requestConduit", handle)
}

func (h *Handler) removeRequest(w http.ResponseWriter, r *http.Request) {
	handle, err := strconv.ParseInt(chi.URLParam(r, "handle"), 10, 64)
	if err != nil {
		writeServiceError(w, r, "*Handler.removeRequest", ErrInvalidHandle)
		return
	}

	if err := h.control.RemoveRequest(r.Context(), handle); err != nil {
		writeServiceError(w, r, "*Handler.removeRequest", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.control.ListRequests(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.listRequests", err)
		return
	}
	if reqs == nil {
		reqs = []models.Request{}
	}
	utils.WriteJSON(w, reqs, http.StatusOK)
}
