package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API envelope with data left undecoded.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// DecodeEnvelope parses the recorded body as an envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// DecodeData decodes the envelope's data field into v.
func DecodeData(t *testing.T, env Envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v), "data: %s", string(env.Data))
}

// AssertFailure checks status, success=false, message, and that error is set.
func AssertFailure(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) Envelope {
	t.Helper()
	env := DecodeEnvelope(t, rec)
	assert.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	assert.False(t, env.Success)
	if message != "" {
		assert.Equal(t, message, env.Message)
	}
	assert.NotEmpty(t, env.Error, "failure envelopes always carry an error field")
	return env
}

// NewRequest builds a request whose body is body as-is when it is a string,
// otherwise its JSON encoding. token, when set, becomes a bearer credential.
func NewRequest(t *testing.T, method, path, token string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
