package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"

	"github.com/sells-group/uniqa/internal/model"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent       string
	Timeout         time.Duration
	MaxConnsPerHost int
	MaxBodyBytes    int64
	InsecureTLS     bool
}

// HTTPFetcher implements Fetcher with a single GET per URL. The underlying
// transport is shared by every caller, so the per-host connection cap holds
// across concurrent requests.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions
}

// acceptedTypes are the content types worth extracting text from.
var acceptedTypes = map[string]bool{
	"text/html":             true,
	"text/plain":            true,
	"application/xhtml+xml": true,
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxConnsPerHost == 0 {
		opts.MaxConnsPerHost = 5
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 2 * 1024 * 1024
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; uniqa/1.0)"
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		TLSHandshakeTimeout: opts.Timeout,
		MaxIdleConnsPerHost: opts.MaxConnsPerHost,
		MaxConnsPerHost:     opts.MaxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for sites with non-public CAs
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts: opts,
	}
}

// Fetch downloads rawURL. Non-200 statuses, non-text content types,
// transport errors, timeouts and undecodable bodies all yield an empty Body.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) model.FetchResult {
	result := model.FetchResult{URL: rawURL}

	body, err := f.get(ctx, rawURL)
	if err != nil {
		zap.L().Debug("fetcher: page unusable",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return result
	}

	result.Body = body
	return result
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: get")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("fetcher: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !textual(contentType) {
		return "", eris.Errorf("fetcher: unsupported content type %q", contentType)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "fetcher: read body")
	}

	return decodeBody(raw, contentType)
}

// textual reports whether the Content-Type header names a text format.
func textual(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return acceptedTypes[strings.ToLower(mediaType)]
}

// decodeBody converts raw bytes to UTF-8 using the declared or sniffed
// charset, falling back to latin-1 when that fails. An undeclared body that
// is already valid UTF-8 is returned as is.
func decodeBody(raw []byte, contentType string) (string, error) {
	if _, _, certain := charset.DetermineEncoding(raw, contentType); !certain && utf8.Valid(raw) {
		return string(raw), nil
	}

	if r, err := charset.NewReader(bytes.NewReader(raw), contentType); err == nil {
		decoded, readErr := io.ReadAll(r)
		if readErr == nil && utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: decode body")
	}
	return string(decoded), nil
}
