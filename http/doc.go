// Package http is the transport underneath apitopy: a small HTTP client with
// functional options, a fluent request builder and per-phase timing.
//
// Requests carry an absolute URL. The client never rewrites it, so query
// strings built by the caller are sent exactly as given.
//
//	client := http.NewClient(
//	    http.WithTimeout(10*time.Second),
//	    http.WithHeader("Accept", "application/json"),
//	)
//
//	req := http.NewRequest("GET", "https://api.example.com/users?limit=10").
//	    WithBasicAuth("user", "token")
//
//	resp, err := client.Do(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.StatusCode, resp.Timing.TimeToFirstByte)
//
// Client is safe for concurrent use.
package http
