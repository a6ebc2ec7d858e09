package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namelens/handlescan/internal/core"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRecordResponse(t *testing.T) {
	RecordResponse(core.Available(core.PlatformGitLab, "alice", ""), 10*time.Millisecond)
	RecordResponse(nil, time.Second)

	body := scrape(t)
	require.Contains(t, body, `handlescan_responses_total{class="available",platform="gitlab"}`)
	require.Contains(t, body, `handlescan_check_duration_seconds_count{platform="gitlab"}`)
}

func TestRecordTokenFetch(t *testing.T) {
	RecordTokenFetch(core.PlatformSnapchat, false)
	require.Contains(t, scrape(t), `handlescan_token_fetches_total{platform="snapchat",status="failure"}`)
}

func TestHandlerExposesHTTPMetrics(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	RecordHTTPRequest(http.MethodPost, "/v1/check", http.StatusBadRequest, time.Millisecond)
	RecordBatch(true)

	body := scrape(t)
	require.Contains(t, body, `handlescan_http_requests_total{endpoint="/health",method="GET",status="200"}`)
	require.Contains(t, body, `handlescan_http_errors_total{endpoint="/v1/check",error_type="client_error",method="POST"}`)
	require.Contains(t, body, `handlescan_batches_total{status="success"}`)
}
