package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/infra/http/middleware"
)

// 1x1 transparent GIF
var pixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00,
	0x80, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x2c,
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x02,
	0x02, 0x44, 0x01, 0x00, 0x3b,
}

type OpenMarker interface {
	MarkOpened(ctx context.Context, trackingID string) (bool, error)
}

// TrackingHandler serves the email open pixel. It answers 200 with the
// image no matter what; the database side effect is best effort and any
// failure stays server-side.
type TrackingHandler struct {
	Repo OpenMarker
}

func NewTrackingHandler(repo OpenMarker) *TrackingHandler {
	return &TrackingHandler{Repo: repo}
}

func (h *TrackingHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	trackingID := r.URL.Query().Get("id")
	if trackingID != "" {
		opened, err := h.Repo.MarkOpened(r.Context(), trackingID)
		if err != nil {
			log.Printf("tracking: open update failed for %s: %v", trackingID, err)
		} else if opened {
			middleware.RecordEmailOpen()
			log.Printf("tracking: email opened, id=%s", trackingID)
		}
	}
	h.servePixel(w)
}

func (h *TrackingHandler) servePixel(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Write(pixelGIF)
}
