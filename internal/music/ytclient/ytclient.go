// Package ytclient builds the HTTP client shared by everything that talks to
// YouTube. A single proxy setting (http, https, socks4 or socks5) covers both
// metadata lookups and stream downloads.
package ytclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	_ "github.com/bdandy/go-socks4" // registers the socks4 scheme with x/net/proxy
	youtube "github.com/kkdai/youtube/v2"
	"golang.org/x/net/proxy"
)

var (
	mu         sync.RWMutex
	httpClient = &http.Client{Timeout: 15 * time.Second}
)

// Configure sets the package-wide proxy. An empty string means direct
// connections. Must be called before the first YouTube request.
func Configure(proxyStr string) error {
	if proxyStr == "" {
		return nil
	}

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		return fmt.Errorf("invalid proxy %q: %w", proxyStr, err)
	}

	var transport *http.Transport

	switch proxyURL.Scheme {
	case "http", "https":
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}

	case "socks4", "socks5":
		dialer, err := proxy.FromURL(proxyURL, &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 10 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("proxy dialer for %q: %w", proxyStr, err)
		}
		transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}

	default:
		return fmt.Errorf("unsupported proxy scheme: %s", proxyURL.Scheme)
	}

	mu.Lock()
	httpClient = &http.Client{Timeout: 15 * time.Second, Transport: transport}
	mu.Unlock()
	return nil
}

// HTTP returns the shared HTTP client.
func HTTP() *http.Client {
	mu.RLock()
	defer mu.RUnlock()
	return httpClient
}

// New returns a kkdai youtube client using the shared HTTP client.
func New() *youtube.Client {
	return &youtube.Client{HTTPClient: HTTP()}
}
