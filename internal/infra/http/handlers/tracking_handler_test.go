package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type failingOpenMarker struct{}

func (failingOpenMarker) MarkOpened(ctx context.Context, trackingID string) (bool, error) {
	return false, errors.New("database is down")
}

func getPixel(h *TrackingHandler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.HandleOpen(rec, req)
	return rec
}

func assertIsPixel(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-cache")
	assert.Equal(t, pixelGIF, rec.Body.Bytes())
}

func TestOpenPixelAlwaysServed(t *testing.T) {
	repo := newMemoryFormRepo()
	h := NewTrackingHandler(repo)

	assertIsPixel(t, getPixel(h, "/track-email-open"))                     // missing id
	assertIsPixel(t, getPixel(h, "/track-email-open?id=unknown.0000"))     // unknown form
	assertIsPixel(t, getPixel(NewTrackingHandler(failingOpenMarker{}), "/track-email-open?id=x.y")) // storage failure swallowed
}

func TestOpenMarksEventAndAdvancesStatus(t *testing.T) {
	repo := newMemoryFormRepo()
	form := entity.NewAbandonedForm([]byte(`{"email":"a@x.com"}`), "/book", "", "")
	_, err := repo.Save(context.Background(), form)
	require.NoError(t, err)

	trackingID := form.FormID + ".pixel-1"
	_, err = repo.AppendEvent(context.Background(), entity.ContactEvent{
		ID: "ev-1", FormID: form.FormID, Type: entity.ContactEmail,
		TrackingID: trackingID, OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	h := NewTrackingHandler(repo)
	assertIsPixel(t, getPixel(h, "/track-email-open?id="+trackingID))

	got, err := repo.FindByID(context.Background(), form.FormID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResponded, got.Status)
	require.True(t, got.ContactHistory[0].EmailOpened)
	firstOpenedAt := *got.ContactHistory[0].OpenedAt

	// second hit is idempotent: same openedAt, still responded
	assertIsPixel(t, getPixel(h, "/track-email-open?id="+trackingID))

	got, err = repo.FindByID(context.Background(), form.FormID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResponded, got.Status)
	assert.Equal(t, firstOpenedAt, *got.ContactHistory[0].OpenedAt)
}
