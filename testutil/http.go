package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertJSONBody(t *testing.T, req RecordedRequest, target any) {
	t.Helper()

	err := json.Unmarshal(req.Body, target)
	require.NoError(t, err, "Request body should be valid JSON")
}

func AssertHeader(t *testing.T, req RecordedRequest, header, expectedValue string) {
	t.Helper()
	assert.Equal(t, expectedValue, req.Header.Get(header), "Header %s mismatch", header)
}

func AssertNoHeader(t *testing.T, req RecordedRequest, header string) {
	t.Helper()
	assert.Empty(t, req.Header.Values(header), "Header %s should not be sent", header)
}

func AssertEmptyBody(t *testing.T, req RecordedRequest) {
	t.Helper()
	assert.Empty(t, req.Body, "Request body should be empty")
}

func AssertRequestLine(t *testing.T, req RecordedRequest, method, path string) {
	t.Helper()
	assert.Equal(t, method, req.Method, "Request method mismatch")
	assert.Equal(t, path, req.Path, "Request path mismatch")
}
