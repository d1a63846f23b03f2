package apitopy

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_Path(t *testing.T) {
	api := New("http://example.com/")

	tests := []struct {
		name     string
		endpoint *Endpoint
		expected string
	}{
		{
			name:     "Attributes and indexes",
			endpoint: api.Attr("a").Index(1).Attr("b").Index(2),
			expected: "a/1/b/2",
		},
		{
			name:     "Products and items",
			endpoint: api.Attr("products").Index(123).Attr("items").Index(24),
			expected: "products/123/items/24",
		},
		{
			name:     "String and numeric keys are identical",
			endpoint: api.Attr("products").Index("9134"),
			expected: "products/9134",
		},
		{
			name:     "Root underscores split",
			endpoint: api.Attr("order_items"),
			expected: "order/items",
		},
		{
			name:     "Nested underscores do not split",
			endpoint: api.Attr("a").Attr("order_items"),
			expected: "a/order_items",
		},
		{
			name:     "Index keeps underscores",
			endpoint: api.Attr("a").Index("x_y"),
			expected: "a/x_y",
		},
		{
			name:     "Root index",
			endpoint: api.Index(9134).Attr("people"),
			expected: "9134/people",
		},
		{
			name:     "Non-string keys",
			endpoint: api.Attr("flags").Index(true).Index(2.5),
			expected: "flags/true/2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.endpoint.Path())
		})
	}
}

func TestEndpoint_Immutable(t *testing.T) {
	api := New("http://example.com/")
	base := api.Attr("products")

	first := base.Index(1)
	second := base.Index(2)

	assert.Equal(t, "products", base.Path())
	assert.Equal(t, "products/1", first.Path())
	assert.Equal(t, "products/2", second.Path())
	assert.Same(t, api, first.API())
}

func TestEndpoint_Resolve(t *testing.T) {
	api := New("http://example.com/")
	widgets := api.Attr("widgets")

	for _, verb := range Verbs {
		t.Run(verb, func(t *testing.T) {
			r := widgets.Resolve(verb)
			require.Equal(t, KindVerb, r.Kind)
			assert.Nil(t, r.Endpoint)
			assert.Equal(t, verb, r.Verb.Verb())
			assert.Equal(t, "widgets", r.Verb.Endpoint().Path())
		})
	}

	r := widgets.Resolve("post")
	require.Equal(t, KindEndpoint, r.Kind)
	assert.Nil(t, r.Verb)
	assert.Equal(t, "widgets/post", r.Endpoint.Path())
}

func TestAPI_Resolve(t *testing.T) {
	api := New("http://example.com/")

	r := api.Resolve("order_items")
	require.Equal(t, KindEndpoint, r.Kind)
	assert.Equal(t, "order/items", r.Endpoint.Path())

	r = api.Resolve("GET")
	require.Equal(t, KindVerb, r.Kind)
	assert.Equal(t, "", r.Verb.Endpoint().Path())
	assert.Equal(t, "?q=1", r.Verb.BuildURL(url.Values{"q": {"1"}}))
}

func TestEndpoint_Verb(t *testing.T) {
	api := New("http://example.com/")

	call, err := api.Attr("widgets").Verb("PATCH")
	require.NoError(t, err)
	assert.Equal(t, "PATCH", call.Verb())

	_, err = api.Attr("widgets").Verb("FETCH")
	assert.ErrorIs(t, err, ErrUnknownVerb)
}

func TestEndpoint_BuildURL(t *testing.T) {
	tests := []struct {
		name     string
		api      *API
		path     func(*API) *Endpoint
		verb     string
		query    url.Values
		expected string
	}{
		{
			name:     "Query string",
			api:      New("http://example.com/"),
			path:     func(a *API) *Endpoint { return a.Attr("people").Attr("items").Index(24) },
			verb:     "GET",
			query:    url.Values{"hello": {"dolly"}},
			expected: "people/items/24?hello=dolly",
		},
		{
			name:     "No query",
			api:      New("http://example.com/"),
			path:     func(a *API) *Endpoint { return a.Attr("people") },
			verb:     "GET",
			expected: "people",
		},
		{
			name:     "Percent encoding",
			api:      New("http://example.com/"),
			path:     func(a *API) *Endpoint { return a.Attr("search") },
			verb:     "GET",
			query:    url.Values{"q": {"a b&c"}, "k y": {"ü"}},
			expected: "search?k+y=%C3%BC&q=a+b%26c",
		},
		{
			name:     "Suffix before query",
			api:      New("https://sprint.ly/api/", WithSuffix(".json")),
			path:     func(a *API) *Endpoint { return a.Attr("products").Index(9134).Attr("items") },
			verb:     "GET",
			query:    url.Values{"assigned_to": {"11039"}},
			expected: "products/9134/items.json?assigned_to=11039",
		},
		{
			name:     "Ensure slash on POST",
			api:      New("http://example.com/", WithSuffix(".json"), WithEnsureSlash(true)),
			path:     func(a *API) *Endpoint { return a.Attr("widgets") },
			verb:     "POST",
			expected: "widgets/.json",
		},
		{
			name:     "Ensure slash keeps existing slash",
			api:      New("http://example.com/", WithEnsureSlash(true)),
			path:     func(a *API) *Endpoint { return a.Attr("widgets").Attr("") },
			verb:     "POST",
			expected: "widgets/",
		},
		{
			name:     "Ensure slash ignores other verbs",
			api:      New("http://example.com/", WithEnsureSlash(true)),
			path:     func(a *API) *Endpoint { return a.Attr("widgets") },
			verb:     "PUT",
			expected: "widgets",
		},
		{
			name:     "POST without ensure slash",
			api:      New("http://example.com/"),
			path:     func(a *API) *Endpoint { return a.Attr("widgets") },
			verb:     "POST",
			expected: "widgets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.path(tt.api).BuildURL(tt.verb, tt.query))
		})
	}
}
