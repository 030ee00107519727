// Package util holds the outbound-HTTP plumbing shared by the fetcher
// and the hosted extraction providers.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a transport proxy selector. Explicit proxy URLs win
// over HTTP_PROXY/HTTPS_PROXY; with neither set the environment decides.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return url.Parse(httpsProxy)
		case httpProxy != "":
			return url.Parse(httpProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
