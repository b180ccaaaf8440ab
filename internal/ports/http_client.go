package ports

import "net/http"

// HTTPClient is what the HTTP source fetcher sends its GET through.
// *http.Client satisfies it; tests inject fakes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
