package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAPICall(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordAPICall("words", "live", 10*time.Millisecond, nil)
	r.RecordAPICall("words", "live", 20*time.Millisecond, errors.New("boom"))
	r.RecordAPICall("quick_stats", "mock", time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.APIRequests.WithLabelValues("words", "live", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.APIRequests.WithLabelValues("words", "live", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.APIErrors.WithLabelValues("words")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.APIErrors.WithLabelValues("quick_stats")))

	calls, failures := r.Totals()
	assert.Equal(t, int64(3), calls)
	assert.Equal(t, int64(1), failures)
}

func TestHandler(t *testing.T) {
	r := New(prometheus.NewRegistry())
	r.RecordAPICall("groups", "live", time.Millisecond, errors.New("x"))
	r.RecordViewLoad("/groups")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.Contains(out, `langportal_api_errors_total{operation="groups"} 1`))
	assert.True(t, strings.Contains(out, `langportal_view_loads_total{view="/groups"} 1`))
}

func TestGetIsSingleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
