package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request represents an HTTP request with a fluent builder pattern.
// URL is used as given; callers are expected to have folded any query
// string into it already.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    interface{}

	username    string
	password    string
	bearerToken string
}

// NewRequest creates a new HTTP request with the specified method and absolute URL.
//
// Example:
//
//	req := http.NewRequest("GET", "https://api.example.com/users?limit=10").
//	    WithHeader("Accept", "application/json")
func NewRequest(method, url string) *Request {
	return &Request{
		Method:  method,
		URL:     url,
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders adds multiple headers to the request.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithBody sets the body of the request.
// The body can be:
//   - string: sent as-is
//   - []byte: sent as-is
//   - io.Reader: read and sent
//   - any other type: marshaled as JSON (Content-Type is set to application/json if not already set)
func (r *Request) WithBody(body interface{}) *Request {
	r.Body = body
	return r
}

// WithJSON sets the body of the request as JSON and sets the Content-Type header.
func (r *Request) WithJSON(v interface{}) *Request {
	r.Body = v
	r.Headers["Content-Type"] = "application/json"
	return r
}

// WithFormData sets the body of the request as URL-encoded form data.
func (r *Request) WithFormData(data url.Values) *Request {
	r.Body = data.Encode()
	r.Headers["Content-Type"] = "application/x-www-form-urlencoded"
	return r
}

// WithBasicAuth sends the given credentials using HTTP basic authentication.
func (r *Request) WithBasicAuth(username, password string) *Request {
	r.username = username
	r.password = password
	return r
}

// WithBearerToken sends the token in an "Authorization: Bearer" header.
func (r *Request) WithBearerToken(token string) *Request {
	r.bearerToken = token
	return r
}

// Build constructs an http.Request bound to ctx.
func (r *Request) Build(ctx context.Context) (*http.Request, error) {
	if _, err := url.Parse(r.URL); err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}

	var bodyReader io.Reader
	if r.Body != nil {
		switch body := r.Body.(type) {
		case string:
			bodyReader = strings.NewReader(body)
		case []byte:
			bodyReader = bytes.NewReader(body)
		case io.Reader:
			bodyReader = body
		default:
			jsonBody, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			bodyReader = bytes.NewReader(jsonBody)
			if _, ok := r.Headers["Content-Type"]; !ok {
				r.Headers["Content-Type"] = "application/json"
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	switch {
	case r.bearerToken != "":
		req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	case r.username != "" || r.password != "":
		req.SetBasicAuth(r.username, r.password)
	}

	return req, nil
}
