package checker

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/namelens/handlescan/internal/core"
)

const maxBodyBytes = 2 << 20

// base carries the per-checker state shared by every platform.
type base struct {
	platform core.Platform
	session  *Session
	requests atomic.Uint64
	tokens   TokenCache
}

// Platform returns the platform the checker probes.
func (b *base) Platform() core.Platform {
	return b.platform
}

type request struct {
	method  string
	url     string
	query   url.Values
	form    url.Values
	headers map[string]string
	cookies []*http.Cookie
}

type reply struct {
	Status  int
	Header  http.Header
	Body    []byte
	Cookies []*http.Cookie
}

func (r *reply) contentType() string {
	return r.Header.Get("Content-Type")
}

func (r *reply) text() string {
	return string(r.Body)
}

// nextProxy returns the proxy for the next request, cycling through the list.
func (b *base) nextProxy() *url.URL {
	proxies := b.session.proxies()
	n := b.requests.Add(1) - 1
	if len(proxies) == 0 {
		return nil
	}
	return proxies[n%uint64(len(proxies))]
}

func (b *base) endpoint(name, fallback string) string {
	return b.session.endpoint(b.platform, name, fallback)
}

func (b *base) get(ctx context.Context, rawURL string, query url.Values, headers map[string]string, cookies ...*http.Cookie) (*reply, error) {
	return b.do(ctx, request{method: http.MethodGet, url: rawURL, query: query, headers: headers, cookies: cookies})
}

func (b *base) post(ctx context.Context, rawURL string, form url.Values, headers map[string]string, cookies ...*http.Cookie) (*reply, error) {
	return b.do(ctx, request{method: http.MethodPost, url: rawURL, form: form, headers: headers, cookies: cookies})
}

// do sends one request and reads the whole body before returning.
// A 429 answer is reported as a RateLimitError whatever the body says.
func (b *base) do(ctx context.Context, r request) (*reply, error) {
	ctx, cancel := context.WithTimeout(ctx, b.session.timeout(b.platform))
	defer cancel()

	target := r.url
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + r.query.Encode()
	}

	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}

	ctx = withProxy(ctx, b.nextProxy())
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, err
	}
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for key, value := range r.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", b.session.userAgent())
	req.Header.Set("Accept-Language", b.session.acceptLanguage())
	for _, cookie := range r.cookies {
		if cookie != nil {
			req.AddCookie(cookie)
		}
	}

	start := time.Now()
	resp, err := b.session.client().Do(req)
	if err != nil {
		b.debug("request failed", zap.String("method", r.method), zap.String("url", r.url), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	b.debug("request completed",
		zap.String("method", r.method),
		zap.String("url", r.url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("retry_after", resp.Header.Get("Retry-After")),
	)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, core.RateLimited()
	}

	return &reply{
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Body:    data,
		Cookies: resp.Cookies(),
	}, nil
}

// decodeJSON parses a JSON reply, refusing anything not declared as JSON.
func decodeJSON(r *reply, target any) error {
	contentType := r.contentType()
	if !strings.HasPrefix(contentType, "application/json") {
		return core.UnexpectedContent(contentType)
	}
	if err := json.Unmarshal(r.Body, target); err != nil {
		return core.WrapError(core.ErrorKindLookup, err)
	}
	return nil
}

func (b *base) debug(msg string, fields ...zap.Field) {
	if b.session == nil || b.session.Logger == nil {
		return
	}
	fields = append([]zap.Field{zap.String("platform", string(b.platform))}, fields...)
	b.session.Logger.Debug(msg, fields...)
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie != nil && cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// stripTags returns the text content of an HTML fragment with entities decoded.
func stripTags(value string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(doc.Text())
}

func linkFor(format, query string) string {
	return strings.ReplaceAll(format, "{}", query)
}
