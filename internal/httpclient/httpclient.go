package httpclient

import "net/http"

// HTTPClient is the subset of *http.Client the remote clients depend on, so
// tests can substitute a fake transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
