package checker

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/corpix/uarand"
	"github.com/fulmenhq/gofulmen/logging"

	"github.com/namelens/handlescan/internal/core"
)

const (
	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 15 * time.Second
	// DefaultAcceptLanguage is sent with every request.
	DefaultAcceptLanguage = "en-GB,en-US;q=0.9,en;q=0.8"
)

// Session is the shared HTTP state for every checker of a run.
type Session struct {
	Client           *http.Client
	Proxies          []*url.URL
	UserAgent        string
	AcceptLanguage   string
	RandomUserAgent  bool
	Timeout          time.Duration
	PlatformTimeouts map[core.Platform]time.Duration
	// Endpoints overrides platform URLs by platform and endpoint name.
	Endpoints map[core.Platform]map[string]string
	Logger    *logging.Logger
}

// NewClient builds an HTTP client whose proxy is chosen per request.
func NewClient() *http.Client {
	transport := &http.Transport{
		Proxy: proxyForRequest,
		DialContext: (&net.Dialer{
			Timeout:   DefaultTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Transport: transport}
}

// ParseProxies parses proxy URLs, skipping blank entries.
func ParseProxies(values []string) ([]*url.URL, error) {
	proxies := make([]*url.URL, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", value)
		}
		proxies = append(proxies, parsed)
	}
	return proxies, nil
}

type proxyKey struct{}

func withProxy(ctx context.Context, proxy *url.URL) context.Context {
	if proxy == nil {
		return ctx
	}
	return context.WithValue(ctx, proxyKey{}, proxy)
}

func proxyForRequest(req *http.Request) (*url.URL, error) {
	if proxy, ok := req.Context().Value(proxyKey{}).(*url.URL); ok && proxy != nil {
		return proxy, nil
	}
	return http.ProxyFromEnvironment(req)
}

func (s *Session) client() *http.Client {
	if s != nil && s.Client != nil {
		return s.Client
	}
	return defaultClient
}

var defaultClient = NewClient()

func (s *Session) timeout(platform core.Platform) time.Duration {
	if s == nil {
		return DefaultTimeout
	}
	if timeout, ok := s.PlatformTimeouts[platform]; ok && timeout > 0 {
		return timeout
	}
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Session) userAgent() string {
	if s != nil && s.RandomUserAgent {
		return uarand.GetRandom()
	}
	if s != nil && s.UserAgent != "" {
		return s.UserAgent
	}
	return "handlescan"
}

func (s *Session) acceptLanguage() string {
	if s != nil && s.AcceptLanguage != "" {
		return s.AcceptLanguage
	}
	return DefaultAcceptLanguage
}

func (s *Session) endpoint(platform core.Platform, name, fallback string) string {
	if s != nil {
		if override, ok := s.Endpoints[platform][name]; ok && override != "" {
			return override
		}
	}
	return fallback
}

func (s *Session) proxies() []*url.URL {
	if s == nil {
		return nil
	}
	return s.Proxies
}
