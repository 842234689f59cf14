package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/freshbins/freshbins-api/internal/infra/mail"
	"github.com/freshbins/freshbins-api/internal/usecase"
)

type stubMailer struct {
	mock.Mock
}

func (s *stubMailer) SendRecovery(to, template string, data mail.RecoveryData) error {
	args := s.Called(to, template, data)
	return args.Error(0)
}

func newFormHandler(repo *memoryFormRepo, mailer usecase.EmailService) *AbandonedFormHandler {
	return NewAbandonedFormHandler(
		usecase.NewCaptureFormUseCase(repo),
		usecase.NewLogContactUseCase(repo),
		usecase.NewSendRecoveryEmailUseCase(repo, mailer),
		repo,
	)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCaptureSkipsEmptySnapshots(t *testing.T) {
	repo := newMemoryFormRepo()
	h := newFormHandler(repo, new(stubMailer))

	rec := postJSON(t, h.HandleCapture, "/abandoned-forms", map[string]interface{}{
		"formData": map[string]interface{}{"postcode": "M1 1AA"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp usecase.CaptureFormOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Skipped)

	forms, _ := repo.FindAll(context.Background())
	assert.Empty(t, forms, "skipped snapshots must not create records")
}

func TestCaptureThenLogContactScenario(t *testing.T) {
	repo := newMemoryFormRepo()
	h := newFormHandler(repo, new(stubMailer))

	rec := postJSON(t, h.HandleCapture, "/abandoned-forms", map[string]interface{}{
		"formData": map[string]interface{}{"firstName": "A", "email": "a@x.com", "postcode": "SW1A 1AA"},
		"pageUrl":  "/book",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var captured usecase.CaptureFormOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &captured))
	assert.True(t, captured.Success)
	assert.False(t, captured.Skipped)
	require.NotEmpty(t, captured.FormID)

	// the returned formId is usable for a later log-contact call
	rec = postJSON(t, h.HandleLogContact, "/abandoned-forms/log-contact", usecase.LogContactInput{
		FormID: captured.FormID, Type: "phone", Details: "no answer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var logged usecase.LogContactOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logged))
	assert.Equal(t, "phone_called", logged.Status)

	// a second contact of any type becomes multiple_attempts
	rec = postJSON(t, h.HandleLogContact, "/abandoned-forms/log-contact", usecase.LogContactInput{
		FormID: captured.FormID, Type: "email", Details: "manual follow-up",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logged))
	assert.Equal(t, "multiple_attempts", logged.Status)
}

func TestLogContactUnknownForm(t *testing.T) {
	h := newFormHandler(newMemoryFormRepo(), new(stubMailer))

	rec := postJSON(t, h.HandleLogContact, "/abandoned-forms/log-contact", usecase.LogContactInput{
		FormID: "nope", Type: "phone", Details: "x",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchRejectsUnknownStatus(t *testing.T) {
	h := newFormHandler(newMemoryFormRepo(), new(stubMailer))

	raw, _ := json.Marshal(map[string]string{"formId": "f", "status": "sideways"})
	req := httptest.NewRequest(http.MethodPatch, "/abandoned-forms", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.HandlePatch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteClearAllEmptiesStore(t *testing.T) {
	repo := newMemoryFormRepo()
	h := newFormHandler(repo, new(stubMailer))

	for i := 0; i < 3; i++ {
		postJSON(t, h.HandleCapture, "/abandoned-forms", map[string]interface{}{
			"formData":   map[string]interface{}{"email": "a@x.com"},
			"trackingId": string(rune('a' + i)),
		})
	}
	forms, _ := repo.FindAll(context.Background())
	require.Len(t, forms, 3)

	req := httptest.NewRequest(http.MethodDelete, "/abandoned-forms?clearAll=true", nil)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/abandoned-forms", nil)
	rec = httptest.NewRecorder()
	h.HandleList(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Forms []json.RawMessage `json:"forms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Forms)
}

func TestSendEmailDispatchesThenLogs(t *testing.T) {
	repo := newMemoryFormRepo()
	mailer := new(stubMailer)
	mailer.On("SendRecovery", "a@x.com", "reminder", mock.Anything).Return(nil)
	h := newFormHandler(repo, mailer)

	rec := postJSON(t, h.HandleCapture, "/abandoned-forms", map[string]interface{}{
		"formData": map[string]interface{}{"email": "a@x.com"},
	})
	var captured usecase.CaptureFormOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &captured))

	rec = postJSON(t, h.HandleSendEmail, "/abandoned-forms/send-email", usecase.SendRecoveryEmailInput{
		FormID: captured.FormID, Email: "a@x.com", Template: "reminder", CustomerName: "A",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sent usecase.SendRecoveryEmailOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.Equal(t, "email_sent", sent.Status)
	mailer.AssertExpectations(t)

	form, err := repo.FindByID(context.Background(), captured.FormID)
	require.NoError(t, err)
	require.Len(t, form.ContactHistory, 1)
	assert.Equal(t, sent.TrackingID, form.ContactHistory[0].TrackingID)
}
