package recipes

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// NewTransport returns a RoundTripper that asks for compressed responses and
// decodes them transparently. A nil parent means http.DefaultTransport.
func NewTransport(parent http.RoundTripper) http.RoundTripper {
	if parent == nil {
		parent = http.DefaultTransport
	}
	return gzhttp.Transport(parent)
}

// userAgentTransport sets the User-Agent header on every request
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}
