package apitopy

import (
	apihttp "github.com/wesleyorama2/apitopy/http"
)

// Credential attaches authentication to an outgoing request.
type Credential interface {
	Apply(req *apihttp.Request)
}

// BasicAuth sends a username and password (or API token) with HTTP basic
// authentication.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements Credential.
func (a BasicAuth) Apply(req *apihttp.Request) {
	req.WithBasicAuth(a.Username, a.Password)
}

// BearerToken sends an "Authorization: Bearer" header.
type BearerToken string

// Apply implements Credential.
func (t BearerToken) Apply(req *apihttp.Request) {
	req.WithBearerToken(string(t))
}
