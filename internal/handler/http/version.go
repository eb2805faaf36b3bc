package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

// PCIDHeader carries the PC id the daemon stamps on synced handhelds.
const PCIDHeader = "X-PC-ID"

// getVersion answers with the daemon version as plain text.
func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(PCIDHeader, strconv.FormatUint(uint64(h.appInfo.GetPCID(ctx)), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.appInfo.GetAppVersion(ctx))); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.getVersion").Msg("failed to write version")
	}
}
