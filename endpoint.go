package apitopy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wesleyorama2/apitopy/dot"
)

// Verbs lists the recognized verb tokens. Matching is case-sensitive.
var Verbs = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodDelete,
	http.MethodPut,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// IsVerb reports whether name is one of Verbs.
func IsVerb(name string) bool {
	for _, verb := range Verbs {
		if name == verb {
			return true
		}
	}
	return false
}

// Kind tags the variant held by a Resolution.
type Kind int

const (
	// KindEndpoint means the name extended the path.
	KindEndpoint Kind = iota
	// KindVerb means the name selected an HTTP verb.
	KindVerb
)

func (k Kind) String() string {
	switch k {
	case KindEndpoint:
		return "endpoint"
	case KindVerb:
		return "verb"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Resolution is the result of resolving a name on an API or Endpoint.
// Exactly one of Endpoint and Verb is set, as indicated by Kind.
type Resolution struct {
	Kind     Kind
	Endpoint *Endpoint
	Verb     *VerbCall
}

// Endpoint is a partial or complete URL path below an API. Endpoints are
// immutable: Attr and Index return new values and never modify the receiver.
type Endpoint struct {
	api    *API
	path   string
	suffix string
}

// API returns the root the endpoint belongs to.
func (e *Endpoint) API() *API { return e.api }

// Path returns the accumulated path, without suffix or query string.
func (e *Endpoint) Path() string { return e.path }

// Suffix returns the suffix appended by BuildURL.
func (e *Endpoint) Suffix() string { return e.suffix }

// Attr appends name as a single segment. Underscores are not split and verb
// tokens are not interpreted.
func (e *Endpoint) Attr(name string) *Endpoint {
	return e.child(name)
}

// Index appends key, formatted with fmt.Sprint, as a single segment.
func (e *Endpoint) Index(key interface{}) *Endpoint {
	return e.child(fmt.Sprint(key))
}

// Resolve interprets name: a verb token yields a VerbCall bound to this
// endpoint, anything else a child endpoint.
func (e *Endpoint) Resolve(name string) Resolution {
	if IsVerb(name) {
		return Resolution{Kind: KindVerb, Verb: &VerbCall{verb: name, endpoint: e}}
	}
	return Resolution{Kind: KindEndpoint, Endpoint: e.Attr(name)}
}

// Verb binds verb to this endpoint.
func (e *Endpoint) Verb(verb string) (*VerbCall, error) {
	if !IsVerb(verb) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
	}
	return &VerbCall{verb: verb, endpoint: e}, nil
}

func (e *Endpoint) child(segment string) *Endpoint {
	path := segment
	if e.path != "" {
		path = e.path + "/" + segment
	}
	return &Endpoint{api: e.api, path: path, suffix: e.suffix}
}

// BuildURL returns path, suffix and encoded query for a request with verb.
// With ensure-slash enabled a POST path gets exactly one trailing "/" before
// the suffix. Query keys are sorted.
func (e *Endpoint) BuildURL(verb string, query url.Values) string {
	path := e.path
	if e.api.ensureSlash && verb == http.MethodPost && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	var extra string
	if len(query) > 0 {
		extra = "?" + query.Encode()
	}
	return path + e.suffix + extra
}

// Call performs a request with verb against this endpoint.
func (e *Endpoint) Call(ctx context.Context, verb string, opts ...CallOption) (*dot.Value, error) {
	if !IsVerb(verb) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
	}
	cfg := newCallConfig(opts)
	return e.api.fetch(ctx, verb, e.BuildURL(verb, cfg.query), cfg)
}

// Invoke performs a GET. Param options become the query string.
func (e *Endpoint) Invoke(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodGet, opts...)
}

// Get performs a GET request.
func (e *Endpoint) Get(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodGet, opts...)
}

// Post performs a POST request.
func (e *Endpoint) Post(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodPost, opts...)
}

// Put performs a PUT request.
func (e *Endpoint) Put(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodPut, opts...)
}

// Patch performs a PATCH request.
func (e *Endpoint) Patch(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodPatch, opts...)
}

// Delete performs a DELETE request.
func (e *Endpoint) Delete(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodDelete, opts...)
}

// Head performs a HEAD request. The result is always nil on success.
func (e *Endpoint) Head(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodHead, opts...)
}

// Options performs an OPTIONS request.
func (e *Endpoint) Options(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return e.Call(ctx, http.MethodOptions, opts...)
}

// VerbCall is a verb bound to an endpoint, ready to be performed.
type VerbCall struct {
	verb     string
	endpoint *Endpoint
}

// Verb returns the bound verb token.
func (v *VerbCall) Verb() string { return v.verb }

// Endpoint returns the endpoint the verb is bound to.
func (v *VerbCall) Endpoint() *Endpoint { return v.endpoint }

// BuildURL is Endpoint.BuildURL with the bound verb.
func (v *VerbCall) BuildURL(query url.Values) string {
	return v.endpoint.BuildURL(v.verb, query)
}

// Do performs the request.
func (v *VerbCall) Do(ctx context.Context, opts ...CallOption) (*dot.Value, error) {
	return v.endpoint.Call(ctx, v.verb, opts...)
}
