// Package apitopy maps path-style access on a Go value to requests against a
// JSON HTTP API.
//
// Every Attr or Index call returns a new immutable Endpoint with one more
// path segment; calling a verb method on an endpoint performs the request
// and returns the body as a *dot.Value:
//
//	api := apitopy.New("https://sprint.ly/api/",
//	    apitopy.WithAuth(apitopy.BasicAuth{Username: "user", Password: "token"}),
//	    apitopy.WithSuffix(".json"),
//	)
//
//	// GET https://sprint.ly/api/products/9134/people.json
//	people, err := api.Attr("products").Index(9134).Attr("people").Invoke(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(people.Index(0).Attr("email").String())
//
//	// GET https://sprint.ly/api/products/9134/items.json?assigned_to=11039
//	items, err := api.Attr("products").Index("9134").Attr("items").
//	    Invoke(ctx, apitopy.Param("assigned_to", 11039))
//
// Names can also be resolved dynamically. Resolve returns a Resolution that
// is either a deeper Endpoint or a VerbCall when the name is one of the verb
// tokens (GET, POST, DELETE, PUT, PATCH, HEAD, OPTIONS):
//
//	r := api.Attr("widgets").Resolve("POST")
//	if r.Kind == apitopy.KindVerb {
//	    created, err := r.Verb.Do(ctx, apitopy.Body(widget))
//	}
//
// At the root only, underscores in a name are path separators:
// api.Attr("order_items") targets "order/items", while
// api.Attr("shop").Attr("order_items") targets "shop/order_items".
//
// Responses with a status of 400 or above fail with *StatusError, or
// *NotFoundError for 404. An empty body decodes to a nil *dot.Value.
package apitopy
