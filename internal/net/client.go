package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	neturl "net/url"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// ErrFetch signals a failed download.
var ErrFetch = errors.New("fetch failed")

// maxBody caps a downloaded allow list.
const maxBody = 4 << 20

// shared client (keep-alive, TLS session reuse).
var (
	client     tls_client.HttpClient
	clientErr  error
	clientOnce sync.Once
)

func shared() (tls_client.HttpClient, error) {
	clientOnce.Do(func() {
		client, clientErr = tls_client.NewHttpClient(tls_client.NewNoopLogger(),
			tls_client.WithTimeoutSeconds(10),
			tls_client.WithClientProfile(profiles.DefaultClientProfile),
		)
	})
	return client, clientErr
}

// Get downloads url and returns the body of a 2xx response.
func Get(ctx context.Context, url string) ([]byte, error) {
	c, err := shared()
	if err != nil {
		return nil, fmt.Errorf("%w: client: %v", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("%w: %s: body over %d bytes", ErrFetch, url, maxBody)
	}
	return body, nil
}

// PathOf returns the path part of url, or url itself if it does not parse.
func PathOf(url string) string {
	u, err := neturl.Parse(url)
	if err != nil {
		return url
	}
	return u.Path
}

const ua = "kanacheck/1.0 (+https://github.com/Alfex4936/kanacheck)"
