//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorBody is the error envelope written by httperr.AbortWithError.
type ErrorBody struct {
	Error struct {
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

// FailureBody is the part of a purchase response describing a store-side failure.
type FailureBody struct {
	Success bool `json:"success"`
	Failure *struct {
		Kind      string `json:"kind"`
		Reason    string `json:"reason"`
		Message   string `json:"message"`
		Retryable bool   `json:"retryable"`
	} `json:"failure"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus < 200 || expectedStatus >= 300 || targetStruct == nil {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "decode response: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the error message contains
// expectedErrorMsg. An empty expectedErrorMsg only checks the envelope shape.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var body ErrorBody
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error response: %s", w.Body.String())
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
	return body
}

// AssertPurchaseFailure checks that a purchase completed at the HTTP level but
// was refused by the store with the given failure kind.
func AssertPurchaseFailure(t *testing.T, w *httptest.ResponseRecorder, expectedKind string) FailureBody {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, "store failures are not HTTP errors, body: %s", w.Body.String())

	var body FailureBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode purchase response: %s", w.Body.String())
	assert.False(t, body.Success)
	require.NotNil(t, body.Failure, "failure missing from body: %s", w.Body.String())
	assert.Equal(t, expectedKind, body.Failure.Kind)
	return body
}
