package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pilot/internal/utils"
	"github.com/MKhiriev/go-pilot/models"
)

// PilotIDResponse answers /api/pilots/{pilot}/id.
type PilotIDResponse struct {
	ID uint32 `json:"id"`
}

// PilotNameResponse answers /api/pilots/id/{id}/name.
type PilotNameResponse struct {
	Name string `json:"name"`
}

// BaseDirResponse answers /api/pilots/{pilot}/basedir.
type BaseDirResponse struct {
	BaseDir string `json:"basedir"`
}

// writeList answers with a JSON array, never null.
func writeList[T any](w http.ResponseWriter, list []T) {
	if list == nil {
		list = []T{}
	}
	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.control.GetUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.getUsers", err)
		return
	}
	writeList(w, users)
}

func (h *Handler) getCradles(w http.ResponseWriter, r *http.Request) {
	cradles, err := h.control.GetCradles(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.getCradles", err)
		return
	}
	writeList(w, cradles)
}

func (h *Handler) getPilots(w http.ResponseWriter, r *http.Request) {
	pilots, err := h.control.GetPilots(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilots", err)
		return
	}
	writeList(w, pilots)
}

func (h *Handler) getPilotIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.control.GetPilotIDs(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotIDs", err)
		return
	}
	writeList(w, ids)
}

func (h *Handler) getPilotsByUserName(w http.ResponseWriter, r *http.Request) {
	pilots, err := h.control.GetPilotsByUserName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotsByUserName", err)
		return
	}
	writeList(w, pilots)
}

func (h *Handler) getPilotsByUserLogin(w http.ResponseWriter, r *http.Request) {
	pilots, err := h.control.GetPilotsByUserLogin(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotsByUserLogin", err)
		return
	}
	writeList(w, pilots)
}

func (h *Handler) getPilotBaseDir(w http.ResponseWriter, r *http.Request) {
	dir, err := h.control.GetPilotBaseDir(r.Context(), chi.URLParam(r, "pilot"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotBaseDir", err)
		return
	}
	utils.WriteJSON(w, BaseDirResponse{BaseDir: dir}, http.StatusOK)
}

func (h *Handler) getPilotIDFromName(w http.ResponseWriter, r *http.Request) {
	id, err := h.control.GetPilotIDFromName(r.Context(), chi.URLParam(r, "pilot"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotIDFromName", err)
		return
	}
	utils.WriteJSON(w, PilotIDResponse{ID: id}, http.StatusOK)
}

func (h *Handler) getPilotNameFromID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotNameFromID", ErrInvalidPilotID)
		return
	}

	name, err := h.control.GetPilotNameFromID(r.Context(), uint32(id))
	if err != nil {
		writeServiceError(w, r, "*Handler.getPilotNameFromID", err)
		return
	}
	utils.WriteJSON(w, PilotNameResponse{Name: name}, http.StatusOK)
}

func (h *Handler) getDatabasesFromCache(w http.ResponseWriter, r *http.Request) {
	dbs, err := h.control.GetDatabasesFromCache(r.Context(), chi.URLParam(r, "pilot"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getDatabasesFromCache", err)
		return
	}
	writeList[models.DBInfo](w, dbs)
}
