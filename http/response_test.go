package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func newResponse(status int, body string) *Response {
	return &Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestResponse_GetBody(t *testing.T) {
	body := `{"message":"success"}`
	resp := newResponse(200, body)

	first, err := resp.GetBody()
	require.NoError(t, err)
	assert.Equal(t, body, string(first))

	// cached; the reader is already drained
	second, err := resp.GetBody()
	require.NoError(t, err)
	assert.Equal(t, body, string(second))

	text, err := resp.GetBodyAsString()
	require.NoError(t, err)
	assert.Equal(t, body, text)
}

func TestResponse_GetBodyAsJSON(t *testing.T) {
	resp := newResponse(200, `{"message":"success","code":200}`)

	var decoded struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	require.NoError(t, resp.GetBodyAsJSON(&decoded))
	assert.Equal(t, "success", decoded.Message)
	assert.Equal(t, 200, decoded.Code)

	assert.Error(t, newResponse(200, `not json`).GetBodyAsJSON(&decoded))
}

func TestResponse_ReadError(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: io.NopCloser(failingReader{})}
	_, err := resp.GetBody()
	assert.Error(t, err)
	assert.True(t, resp.IsEmpty())
}

func TestResponse_IsEmpty(t *testing.T) {
	assert.True(t, newResponse(204, "").IsEmpty())
	assert.True(t, (&Response{StatusCode: 200}).IsEmpty())
	assert.False(t, newResponse(200, "{}").IsEmpty())
}

func TestResponse_StatusClasses(t *testing.T) {
	tests := []struct {
		status   int
		success  bool
		redirect bool
		isError  bool
	}{
		{200, true, false, false},
		{204, true, false, false},
		{301, false, true, false},
		{399, false, true, false},
		{400, false, false, true},
		{404, false, false, true},
		{500, false, false, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			resp := newResponse(tt.status, "")
			assert.Equal(t, tt.success, resp.IsSuccess())
			assert.Equal(t, tt.redirect, resp.IsRedirect())
			assert.Equal(t, tt.isError, resp.IsError())
		})
	}
}

func TestResponse_HeadersAndTiming(t *testing.T) {
	resp := newResponse(200, "")
	resp.Timing = TimingInfo{TotalTime: 150 * time.Millisecond}

	assert.Equal(t, "application/json", resp.GetHeader("content-type"))
	assert.Equal(t, "", resp.GetHeader("X-Missing"))
	assert.Equal(t, int64(150), resp.TotalMillis())
	assert.Equal(t, int64(0), (&Response{}).TotalMillis())
}
