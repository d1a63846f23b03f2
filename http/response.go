package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// TimingInfo stores per-phase timing for a single request.
type TimingInfo struct {
	StartTime time.Time

	DNSLookupTime    time.Duration
	TCPConnectTime   time.Duration
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is measured from the end of the last completed
	// connection phase, or from StartTime on a reused connection.
	TimeToFirstByte time.Duration

	ContentTransferTime time.Duration
	TotalTime           time.Duration
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       io.ReadCloser
	Timing     TimingInfo

	rawBody []byte
	parsed  bool
}

// GetBody returns the response body. The body is cached, so this method can
// be called multiple times.
func (r *Response) GetBody() ([]byte, error) {
	if r.parsed {
		return r.rawBody, nil
	}
	if r.Body == nil {
		r.parsed = true
		return nil, nil
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.rawBody = body
	r.parsed = true
	return body, nil
}

// GetBodyAsString returns the response body as a string.
func (r *Response) GetBodyAsString() (string, error) {
	body, err := r.GetBody()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetBodyAsJSON unmarshals the response body into v.
func (r *Response) GetBodyAsJSON(v interface{}) error {
	body, err := r.GetBody()
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// IsEmpty reports whether the response carried no body bytes.
func (r *Response) IsEmpty() bool {
	body, err := r.GetBody()
	return err != nil || len(body) == 0
}

// GetHeader returns the value of the specified header, or "" if absent.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsError returns true for any status code of 400 or above.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// TotalMillis returns the total request time in milliseconds.
func (r *Response) TotalMillis() int64 {
	return r.Timing.TotalTime.Milliseconds()
}
