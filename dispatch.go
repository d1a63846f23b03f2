package apitopy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wesleyorama2/apitopy/dot"
	apihttp "github.com/wesleyorama2/apitopy/http"
)

// CallOption customizes a single request.
type CallOption func(*callConfig)

type callConfig struct {
	query   url.Values
	body    interface{}
	form    url.Values
	headers map[string]string
}

func newCallConfig(opts []CallOption) *callConfig {
	cfg := &callConfig{
		query:   make(url.Values),
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Param adds a query string parameter. value is formatted with fmt.Sprint.
func Param(key string, value interface{}) CallOption {
	return func(c *callConfig) {
		c.query.Add(key, fmt.Sprint(value))
	}
}

// Params adds every value in params to the query string.
func Params(params url.Values) CallOption {
	return func(c *callConfig) {
		for key, values := range params {
			for _, value := range values {
				c.query.Add(key, value)
			}
		}
	}
}

// Body sets the request body. Strings, byte slices and readers are sent
// as-is; anything else is encoded as JSON.
func Body(v interface{}) CallOption {
	return func(c *callConfig) {
		c.body = v
		c.form = nil
	}
}

// Form sets a URL-encoded form body.
func Form(values url.Values) CallOption {
	return func(c *callConfig) {
		c.form = values
		c.body = nil
	}
}

// Header sets a header for this request only, overriding the API defaults.
func Header(key, value string) CallOption {
	return func(c *callConfig) {
		c.headers[http.CanonicalHeaderKey(key)] = value
	}
}

// Do performs verb against path relative to the base URL and returns the raw
// response once its status has been validated. Param options are folded
// into the query string.
func (a *API) Do(ctx context.Context, verb, path string, opts ...CallOption) (*apihttp.Response, error) {
	if !IsVerb(verb) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
	}
	cfg := newCallConfig(opts)
	if len(cfg.query) > 0 {
		path += "?" + cfg.query.Encode()
	}
	return a.send(ctx, verb, path, cfg)
}

// fetch sends the request and decodes the body.
func (a *API) fetch(ctx context.Context, verb, path string, cfg *callConfig) (*dot.Value, error) {
	resp, err := a.send(ctx, verb, path, cfg)
	if err != nil {
		return nil, err
	}

	body, err := resp.GetBody()
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w", verb, a.baseURL+path, err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	value, err := dot.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", verb, a.baseURL+path, ErrInvalidJSON)
	}
	return value, nil
}

func (a *API) send(ctx context.Context, verb, path string, cfg *callConfig) (*apihttp.Response, error) {
	fullURL := a.baseURL + path
	if a.verbose {
		fmt.Fprintf(a.trace, "%s %s\n", verb, fullURL)
	}

	req := apihttp.NewRequest(verb, fullURL).
		WithHeaders(a.headers).
		WithHeaders(cfg.headers)
	switch {
	case cfg.form != nil:
		req.WithFormData(cfg.form)
	case cfg.body != nil:
		req.WithBody(cfg.body)
	}
	if a.auth != nil {
		a.auth.Apply(req)
	}

	a.logger.Debug("sending request", "verb", verb, "url", fullURL)

	resp, err := a.transport.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", verb, fullURL, err)
	}

	if err := a.validate(verb, fullURL, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *API) validate(verb, fullURL string, resp *apihttp.Response) error {
	body, err := resp.GetBody()
	if err != nil {
		a.logger.Warn("reading response body failed", "verb", verb, "url", fullURL, "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%s %s: reading body: %w", verb, fullURL, err)
	}
	err = statusErrorFor(verb, fullURL, resp.StatusCode, body)
	if err != nil {
		a.logger.Warn(err.Error(), "verb", verb, "url", fullURL, "status", resp.StatusCode)
	}
	return err
}
