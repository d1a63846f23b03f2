package apitopy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	apihttp "github.com/wesleyorama2/apitopy/http"
)

// Transport performs a single HTTP request. *http.Client from
// github.com/wesleyorama2/apitopy/http satisfies it.
type Transport interface {
	Do(ctx context.Context, req *apihttp.Request) (*apihttp.Response, error)
}

// API is the root of a target HTTP API. It holds the configuration shared by
// every Endpoint derived from it and is never modified after New returns, so
// it may be used from multiple goroutines.
type API struct {
	baseURL     string
	auth        Credential
	verifyTLS   bool
	suffix      string
	verbose     bool
	ensureSlash bool
	headers     map[string]string
	timeout     time.Duration
	transport   Transport
	logger      *slog.Logger
	trace       io.Writer
}

// Option configures an API.
type Option func(*API)

// WithAuth sets the credential sent with every request.
func WithAuth(cred Credential) Option {
	return func(a *API) {
		a.auth = cred
	}
}

// WithVerifyTLS controls TLS certificate verification. It is on by default
// and has no effect when WithTransport is used.
func WithVerifyTLS(verify bool) Option {
	return func(a *API) {
		a.verifyTLS = verify
	}
}

// WithSuffix sets a string, such as ".json", appended to every path before
// the query string.
func WithSuffix(suffix string) Option {
	return func(a *API) {
		a.suffix = suffix
	}
}

// WithVerbose enables the "VERB URL" trace line written before each request.
func WithVerbose(verbose bool) Option {
	return func(a *API) {
		a.verbose = verbose
	}
}

// WithEnsureSlash makes POST requests always target a path ending in "/".
func WithEnsureSlash(ensure bool) Option {
	return func(a *API) {
		a.ensureSlash = ensure
	}
}

// WithHeaders merges headers into the defaults sent with every request.
// Values given here override the default Accept header. The map is copied.
func WithHeaders(headers map[string]string) Option {
	return func(a *API) {
		for key, value := range headers {
			a.headers[http.CanonicalHeaderKey(key)] = value
		}
	}
}

// WithTimeout sets the request timeout of the bundled transport.
func WithTimeout(timeout time.Duration) Option {
	return func(a *API) {
		a.timeout = timeout
	}
}

// WithTransport replaces the bundled transport.
func WithTransport(t Transport) Option {
	return func(a *API) {
		a.transport = t
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// WithTraceWriter sets where verbose trace lines go. Defaults to os.Stdout.
func WithTraceWriter(w io.Writer) Option {
	return func(a *API) {
		a.trace = w
	}
}

// New creates an API rooted at baseURL. Paths are appended to baseURL as-is,
// so it normally ends with "/".
//
//	api := apitopy.New("https://sprint.ly/api/",
//	    apitopy.WithAuth(apitopy.BasicAuth{Username: "user", Password: "token"}),
//	    apitopy.WithSuffix(".json"),
//	)
//	people, err := api.Attr("products").Index(9134).Attr("people").Invoke(ctx)
func New(baseURL string, options ...Option) *API {
	api := &API{
		baseURL:   baseURL,
		verifyTLS: true,
		headers: map[string]string{
			"Accept": "application/json",
		},
		timeout: 30 * time.Second,
		logger:  slog.Default(),
		trace:   os.Stdout,
	}

	for _, option := range options {
		option(api)
	}

	if api.transport != nil && !api.verifyTLS {
		api.logger.Debug("TLS verification setting ignored: a custom transport is configured")
	}
	if api.transport == nil {
		clientOptions := []apihttp.ClientOption{apihttp.WithTimeout(api.timeout)}
		if !api.verifyTLS {
			clientOptions = append(clientOptions, apihttp.WithInsecureSkipVerify())
		}
		api.transport = apihttp.NewClient(clientOptions...)
	}

	return api
}

// BaseURL returns the URL every path is appended to.
func (a *API) BaseURL() string { return a.baseURL }

// Suffix returns the configured path suffix.
func (a *API) Suffix() string { return a.suffix }

// VerifyTLS reports whether certificates are verified.
func (a *API) VerifyTLS() bool { return a.verifyTLS }

// Verbose reports whether trace lines are written.
func (a *API) Verbose() bool { return a.verbose }

// EnsureSlash reports whether POST paths get a trailing slash.
func (a *API) EnsureSlash() bool { return a.ensureSlash }

// Headers returns a copy of the default request headers.
func (a *API) Headers() map[string]string {
	headers := make(map[string]string, len(a.headers))
	for key, value := range a.headers {
		headers[key] = value
	}
	return headers
}

// Attr returns the endpoint for a root-level name. Each underscore in name
// becomes a path separator, so "order_items" yields "order/items". Verb
// tokens are treated as plain names; use Resolve to honor them.
func (a *API) Attr(name string) *Endpoint {
	return &Endpoint{api: a, path: strings.ReplaceAll(name, "_", "/"), suffix: a.suffix}
}

// Index returns the endpoint whose single segment is key formatted with
// fmt.Sprint. Underscores are kept.
func (a *API) Index(key interface{}) *Endpoint {
	return a.root().Index(key)
}

// Resolve interprets a root-level name: a verb token yields a verb bound to
// the empty path, anything else the endpoint Attr would return.
func (a *API) Resolve(name string) Resolution {
	if IsVerb(name) {
		return Resolution{Kind: KindVerb, Verb: &VerbCall{verb: name, endpoint: a.root()}}
	}
	return Resolution{Kind: KindEndpoint, Endpoint: a.Attr(name)}
}

func (a *API) root() *Endpoint {
	return &Endpoint{api: a, suffix: a.suffix}
}
