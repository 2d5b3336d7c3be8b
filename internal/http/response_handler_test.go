package http

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/brendan.keane/toastsms/internal/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, &mockError{msg: "connection reset"}
}

func newResponse(status int, contentType, body string) *http.Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestResponseHandler_Success(t *testing.T) {
	handler := NewResponseHandler(zerolog.Nop())

	message, err := handler.HandleResponse(newResponse(200, "application/json;charset=UTF-8", `{"a":1}`))
	require.NoError(t, err)

	assert.Equal(t, 200, message.StatusCode)
	assert.Equal(t, "application/json;charset=UTF-8", message.ContentType)
	assert.Equal(t, `{"a":1}`, string(message.Body))
}

func TestResponseHandler_DefaultContentType(t *testing.T) {
	handler := NewResponseHandler(zerolog.Nop())

	message, err := handler.HandleResponse(newResponse(204, "", ""))
	require.NoError(t, err)

	assert.Equal(t, DefaultContentType, message.ContentType)
	assert.Empty(t, message.Body)
}

func TestResponseHandler_NonSuccess(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{400, `{"header":{"resultCode":-9}}`},
		{404, `not found`},
		{500, ``},
		{301, `moved`},
	}

	handler := NewResponseHandler(zerolog.Nop())

	for _, tt := range tests {
		_, err := handler.HandleResponse(newResponse(tt.status, "text/plain", tt.body))
		require.Error(t, err)

		assert.Equal(t, errors.ErrorTypeUpstream, errors.GetType(err))
		ctx := errors.GetContext(err)
		assert.Equal(t, tt.status, ctx["status_code"])
		assert.Equal(t, tt.body, ctx["body"])
		assert.Equal(t, "text/plain", ctx["content_type"])
	}
}

func TestResponseHandler_ReadFailure(t *testing.T) {
	handler := NewResponseHandler(zerolog.Nop())

	resp := newResponse(200, "", "")
	resp.Body = io.NopCloser(failingReader{})

	_, err := handler.HandleResponse(resp)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNetwork, errors.GetType(err))
}
