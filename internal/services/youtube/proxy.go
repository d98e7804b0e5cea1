package youtube

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

const (
	defaultProxyDomain = "p.webshare.io"
	defaultProxyPort   = 80
)

// CheckProxy reports whether proxy can be turned into a Webshare proxy URL.
// The credentials themselves are only checked by the proxy on first use.
func (c *Client) CheckProxy(proxy transcript.ProxyConfig) error {
	_, err := c.proxyURL(proxy)
	return err
}

// proxyURL builds the rotating residential endpoint:
// http://<user>-rotate:<pass>@p.webshare.io:80/
// Credentials go into the URL unchanged; url.UserPassword escapes them.
func (c *Client) proxyURL(proxy transcript.ProxyConfig) (*url.URL, error) {
	if proxy.Username == "" || proxy.Password == "" {
		return nil, errors.New("proxy username and password must both be set")
	}
	return &url.URL{
		Scheme: "http",
		User:   url.UserPassword(proxy.Username+"-rotate", proxy.Password),
		Host:   net.JoinHostPort(c.proxyDomain, strconv.Itoa(c.proxyPort)),
		Path:   "/",
	}, nil
}

// clientFor returns the HTTP client to use for one provider call. Each
// proxied call gets its own transport with keep-alives off, so the
// rotating proxy hands out a fresh exit IP per connection.
func (c *Client) clientFor(proxy *transcript.ProxyConfig) (*http.Client, error) {
	if !proxy.Enabled() {
		return c.httpClient, nil
	}

	u, err := c.proxyURL(*proxy)
	if err != nil {
		return nil, err
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = http.ProxyURL(u)
	tr.DisableKeepAlives = true
	return &http.Client{Transport: c.transport(tr), Timeout: c.timeout}, nil
}

// transport wraps next so requests reach the configured origin instead of
// www.youtube.com, which the library has hard-coded.
func (c *Client) transport(next http.RoundTripper) http.RoundTripper {
	if c.origin == nil {
		return next
	}
	return &originTransport{origin: c.origin, next: next}
}

type originTransport struct {
	origin *url.URL
	next   http.RoundTripper
}

func (t *originTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.origin.Scheme
	out.URL.Host = t.origin.Host
	out.Host = t.origin.Host
	return t.next.RoundTrip(out)
}
