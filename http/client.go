package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptrace"
	"sync"
	"time"
)

// Client performs single HTTP requests and records per-phase timing.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options.
//
// Example:
//
//	client := http.NewClient(
//	    http.WithTimeout(30*time.Second),
//	    http.WithHeader("User-Agent", "apitopy"),
//	)
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets the timeout for all requests made by this client.
// The default timeout is 30 seconds.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a default header to all requests made by this client.
// Headers set on individual requests override these defaults.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHTTPClient sets a custom *http.Client for this client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// WARNING: This should only be used against hosts you control.
func WithInsecureSkipVerify() ClientOption {
	return func(c *Client) {
		transport, ok := c.httpClient.Transport.(*http.Transport)
		if ok && transport != nil {
			transport = transport.Clone()
		} else {
			transport = http.DefaultTransport.(*http.Transport).Clone()
		}
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
		c.httpClient.Transport = transport
	}
}

// Do executes an HTTP request and returns the response with detailed timing information.
// Transport failures are returned as produced by net/http.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.Build(ctx)
	if err != nil {
		return nil, err
	}

	// Request headers win over client defaults
	for key, value := range c.headers {
		if httpReq.Header.Get(key) == "" {
			httpReq.Header.Set(key, value)
		}
	}

	timer := newPhaseTimer(time.Now())
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), timer.trace()))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	contentTransferStart := time.Now()
	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	timing := timer.snapshot()
	timing.ContentTransferTime = time.Since(contentTransferStart)
	timing.TotalTime = time.Since(timing.StartTime)

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       io.NopCloser(bytes.NewReader(bodyBytes)),
		Timing:     timing,
		rawBody:    bodyBytes,
		parsed:     true,
	}, nil
}

// phaseTimer collects httptrace callbacks. net/http invokes them from the
// dialer and the connection read loop, so all state is guarded by mu.
// Connection phases reported after GotConn belong to a dial this request
// did not end up using and are ignored.
type phaseTimer struct {
	mu sync.Mutex

	timing            TimingInfo
	dnsStart          time.Time
	connectStart      time.Time
	tlsHandshakeStart time.Time
	dnsDone           bool
	connectDone       bool
	gotConn           bool
	lastPhaseEnd      time.Time
}

func newPhaseTimer(start time.Time) *phaseTimer {
	return &phaseTimer{
		timing:       TimingInfo{StartTime: start},
		lastPhaseEnd: start,
	}
}

func (p *phaseTimer) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if !p.gotConn {
				p.dnsStart = time.Now()
			}
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.gotConn || p.dnsStart.IsZero() {
				return
			}
			dnsEnd := time.Now()
			p.timing.DNSLookupTime = dnsEnd.Sub(p.dnsStart)
			p.dnsDone = true
			p.lastPhaseEnd = dnsEnd
		},
		ConnectStart: func(network, addr string) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if !p.gotConn && (p.dnsDone || p.dnsStart.IsZero()) {
				p.connectStart = time.Now()
			}
		},
		ConnectDone: func(network, addr string, err error) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.gotConn || err != nil || p.connectStart.IsZero() {
				return
			}
			connectEnd := time.Now()
			p.timing.TCPConnectTime = connectEnd.Sub(p.connectStart)
			p.connectDone = true
			p.lastPhaseEnd = connectEnd
		},
		TLSHandshakeStart: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if !p.gotConn && p.connectDone {
				p.tlsHandshakeStart = time.Now()
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.gotConn || err != nil || p.tlsHandshakeStart.IsZero() {
				return
			}
			tlsHandshakeEnd := time.Now()
			p.timing.TLSHandshakeTime = tlsHandshakeEnd.Sub(p.tlsHandshakeStart)
			p.lastPhaseEnd = tlsHandshakeEnd
		},
		GotConn: func(info httptrace.GotConnInfo) {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.gotConn = true
			if info.Reused {
				// no dial, DNS or handshake happened for this request
				p.timing.DNSLookupTime = 0
				p.timing.TCPConnectTime = 0
				p.timing.TLSHandshakeTime = 0
				p.lastPhaseEnd = time.Now()
			}
		},
		GotFirstResponseByte: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.timing.TimeToFirstByte = time.Since(p.lastPhaseEnd)
		},
	}
}

func (p *phaseTimer) snapshot() TimingInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timing
}

// Get is a convenience method for making GET requests.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, url))
}

// Post is a convenience method for making POST requests with a body.
func (c *Client) Post(ctx context.Context, url string, body interface{}) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, url).WithBody(body))
}

// Put is a convenience method for making PUT requests with a body.
func (c *Client) Put(ctx context.Context, url string, body interface{}) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPut, url).WithBody(body))
}

// Delete is a convenience method for making DELETE requests.
func (c *Client) Delete(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, url))
}

// Patch is a convenience method for making PATCH requests with a body.
func (c *Client) Patch(ctx context.Context, url string, body interface{}) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPatch, url).WithBody(body))
}
