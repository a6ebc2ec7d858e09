package checker

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/namelens/handlescan/internal/core"
)

// newTestServer starts a server and a session that routes the platform's endpoints to it.
func newTestServer(t *testing.T, platform core.Platform, mux *http.ServeMux, endpoints map[string]string) *Session {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resolved := make(map[string]string, len(endpoints))
	for name, path := range endpoints {
		resolved[name] = server.URL + path
	}
	return &Session{
		Client:    server.Client(),
		UserAgent: "handlescan test",
		Endpoints: map[core.Platform]map[string]string{platform: resolved},
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
