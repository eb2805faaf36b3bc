package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pilot/models"
)

type cradleOperation func(ctx context.Context, req models.CradleRequest) (int64, error)

// cradleRequest decodes the optional body and takes the cradle name from
// the path.
func (h *Handler) cradleRequest(fn string, op cradleOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CradleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeServiceError(w, r, fn, err)
			return
		}
		req.Cradle = chi.URLParam(r, "cradle")

		handle, err := op(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, fn, err)
			return
		}
		writeHandle(w, r, fn, handle)
	}
}

func (h *Handler) getSystemInfo(w http.ResponseWriter, r *http.Request) {
	h.cradleRequest("*Handler.getSystemInfo", h.control.GetSystemInfo)(w, r)
}

func (h *Handler) getUserInfo(w http.ResponseWriter, r *http.Request) {
	h.cradleRequest("*Handler.getUserInfo", h.control.GetUserInfo)(w, r)
}

func (h *Handler) setUserInfo(w http.ResponseWriter, r *http.Request) {
	h.cradleRequest("*Handler.setUserInfo", h.control.SetUserInfo)(w, r)
}
