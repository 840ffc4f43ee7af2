package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/langportal/internal/clock"
)

func healthy(context.Context) Check { return Check{Status: StatusHealthy, Message: "OK"} }

func TestCheckerWorstStatusWins(t *testing.T) {
	c := NewChecker(WithTTL(0))
	c.Register("a", healthy)
	assert.Equal(t, StatusHealthy, c.Check(context.Background()).Status)

	c.Register("b", func(context.Context) Check { return Check{Status: StatusDegraded} })
	assert.Equal(t, StatusDegraded, c.Check(context.Background()).Status)

	c.Register("c", Probe(StatusUnhealthy, "", func(context.Context) error { return errors.New("down") }))
	report := c.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, []string{"a", "b", "c"}, report.Names())
	assert.Equal(t, "down", report.Checks["c"].Message)
	assert.Equal(t, "c", report.Checks["c"].Name)
}

func TestCheckerCachesReport(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewChecker(WithClock(clk), WithTTL(time.Minute))

	calls := 0
	c.Register("count", func(context.Context) Check {
		calls++
		return Check{Status: StatusHealthy}
	})

	c.Check(context.Background())
	c.Check(context.Background())
	assert.Equal(t, 1, calls)

	clk.Advance(2 * time.Minute)
	c.Check(context.Background())
	assert.Equal(t, 2, calls)
}

func TestHandlers(t *testing.T) {
	c := NewChecker(WithTTL(0))
	c.Register("ok", healthy)

	rec := httptest.NewRecorder()
	c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusHealthy, report.Status)

	rec = httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, "OK", rec.Body.String())

	c.Register("down", Probe(StatusUnhealthy, "", func(context.Context) error { return errors.New("x") }))
	rec = httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT READY", rec.Body.String())
}
