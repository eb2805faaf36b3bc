package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/utils"
	"github.com/MKhiriev/go-pilot/models"
)

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

func (h *Handler) pause(w http.ResponseWriter, r *http.Request) {
	var req models.PauseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.pause", err)
		return
	}

	if err := h.control.Pause(r.Context(), req.On); err != nil {
		writeServiceError(w, r, "*Handler.pause", err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.pause").Bool("on", req.On).Msg("pause toggled")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rereadConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.control.RereadConfig(r.Context()); err != nil {
		writeServiceError(w, r, "*Handler.rereadConfig", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) noop(w http.ResponseWriter, r *http.Request) {
	if err := h.control.Noop(r.Context()); err != nil {
		writeServiceError(w, r, "*Handler.noop", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.control.Status(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.status", err)
		return
	}
	utils.WriteJSON(w, st, http.StatusOK)
}
