package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-strategy-lab/internal/observability"
)

func testClient(baseURL string) *Client {
	cfg := DefaultClientConfig(baseURL)
	cfg.RequestsPerSec = 1000
	cfg.Burst = 1000
	cfg.RetryDelay = time.Millisecond
	return NewClient(cfg)
}

func TestDailyBars_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/daily", r.URL.Path)
		assert.Equal(t, "sh.600519", r.URL.Query().Get("code"))
		w.Write([]byte(`{"code":200,"msg":"ok","data":[
			{"date":"2023-01-02","close":100.5,"valuationRatio":20.1},
			{"date":"2023-01-03","close":101.0,"valuationRatio":20.2}
		]}`))
	}))
	defer srv.Close()

	quotes, err := testClient(srv.URL).DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, 100.5, quotes[0].Close)
}

func TestDailyBars_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"code":200,"msg":"ok","data":[{"date":"2023-01-02","close":100,"valuationRatio":20}]}`))
	}))
	defer srv.Close()

	quotes, err := testClient(srv.URL).DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDailyBars_RecordsProviderMetrics(t *testing.T) {
	m := observability.DefaultMetrics
	retriesBefore := testutil.ToFloat64(m.ProviderRetries)
	successBefore := testutil.ToFloat64(m.ProviderCallsTotal.WithLabelValues("/daily", "success"))
	errorBefore := testutil.ToFloat64(m.ProviderCallsTotal.WithLabelValues("/daily", "error"))

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"code":200,"msg":"ok","data":[{"date":"2023-01-02","close":100,"valuationRatio":20}]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.NoError(t, err)

	assert.Equal(t, retriesBefore+1, testutil.ToFloat64(m.ProviderRetries))
	assert.Equal(t, successBefore+1, testutil.ToFloat64(m.ProviderCallsTotal.WithLabelValues("/daily", "success")))
	assert.Equal(t, errorBefore+1, testutil.ToFloat64(m.ProviderCallsTotal.WithLabelValues("/daily", "error")))
}

func TestDailyBars_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.ErrorIs(t, err, ErrProviderFailure)
}

func TestDailyBars_ProviderErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":500,"msg":"upstream login failed","data":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "upstream login failed")
}

func TestDailyBars_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"msg":"ok","data":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.ErrorIs(t, err, ErrNoData)
}

func TestQuarterlyEarnings_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/earnings", r.URL.Path)
		assert.Equal(t, "2021", r.URL.Query().Get("startYear"))
		w.Write([]byte(`{"code":200,"msg":"ok","data":{"2023-Q1":4.25}}`))
	}))
	defer srv.Close()

	earnings, err := testClient(srv.URL).QuarterlyEarnings(context.Background(), "sh.600519", 2021, 2023)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2023-Q1": 4.25}, earnings)
}

func TestDailyBars_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testClient(srv.URL).DailyBars(ctx, "sh.600519", "2023-01-01", "2023-01-31")
	require.Error(t, err)
}
