package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/shared/failure"
	"studiodesk/transport/http/response"
)

func TestWithError(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithError(recorder, failure.Unauthorized("bot verification failed", "timeout-or-duplicate"))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "bot verification failed", body["message"])
	assert.Equal(t, []any{"timeout-or-duplicate"}, body["reasons"])
}

func TestWithJSONHasNoEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, []string{"kitchens", "pools"})

	assert.JSONEq(t, `["kitchens","pools"]`, recorder.Body.String())
}

func TestWithFile(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithFile(recorder, "invoice-7.pdf", "application/pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, `attachment; filename="invoice-7.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", recorder.Body.String())
}
