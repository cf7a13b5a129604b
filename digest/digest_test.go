package digest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-digest/timerange"
)

func backend(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/exposures", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "20240501", r.URL.Query().Get("dayObsStart"))
		assert.Equal(t, "LSSTCam", r.URL.Query().Get("instrument"))
		fmt.Fprint(w, `{"exposures_count": 120, "sum_exposure_time": 21600}`)
	})
	mux.HandleFunc("/almanac", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Empty(t, r.URL.Query().Get("instrument"))
		fmt.Fprint(w, `{"night_hours": 10}`)
	})
	mux.HandleFunc("/narrative-log", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		fmt.Fprint(w, `{"time_lost_to_weather": 1.5, "time_lost_to_faults": 0.5}`)
	})
	mux.HandleFunc("/data-log", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		fmt.Fprint(w, `{"data": [{"exposure name": "MC_O_20240501_000001", "day_obs": 20240501,
			"seq_num": 1, "obs_start": "2024-05-01T23:10:05.1", "exp_time": 30,
			"band": "r", "target_name": "field", "exposure_flag": "none"}]}`)
	})
	mux.HandleFunc("/broken/exposures", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

var query = Query{Start: 20240501, End: 20240501, Instrument: "LSSTCam"}

func TestSummary(t *testing.T) {
	var hits int32
	srv := backend(t, &hits)
	c := NewClient(srv.URL, 5*time.Second, nil)

	s, err := c.Summary(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 120, s.Exposures)
	assert.Equal(t, 10.0, s.NightHours)
	assert.Equal(t, 71, s.Efficiency)
	assert.Equal(t, "2.00 hours", s.TimeLoss)
	assert.Equal(t, "(75% weather; 25% fault)", s.TimeLossDetails)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestStatusError(t *testing.T) {
	var hits int32
	srv := backend(t, &hits)
	c := NewClient(srv.URL+"/broken", 5*time.Second, nil)

	_, err := c.Exposures(context.Background(), query)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Contains(t, se.Error(), "database unavailable")
}

func TestDataLogAndRecords(t *testing.T) {
	var hits int32
	srv := backend(t, &hits)
	c := NewClient(srv.URL, 5*time.Second, nil)

	exps, err := c.DataLog(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, exps, 1)

	recs := Records(exps)
	require.Len(t, recs, 2)
	assert.Equal(t, DataLogHeader, recs[0])
	assert.Equal(t, "MC_O_20240501_000001", recs[1][0])
	assert.Equal(t, "30.00", recs[1][4])
}

func TestCacheServesFinalNights(t *testing.T) {
	var hits int32
	srv := backend(t, &hits)
	cache := NewCache(t.TempDir(), time.Minute, 1<<20)
	c := NewClient(srv.URL, 5*time.Second, cache)
	c.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	for i := 0; i < 3; i++ {
		got, err := c.Exposures(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, 120, got.Count)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestCacheExpiresOpenNights(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Minute, 0)
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Put("http://x/exposures", []byte(`{"a":1}`)))
	body, ok := cache.Get("http://x/exposures", false)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(body))

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("http://x/exposures", false)
	assert.False(t, ok)
	_, ok = cache.Get("http://x/exposures", true)
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(t.TempDir(), time.Minute, 1<<20)
	require.NoError(t, cache.Put("http://x/almanac", []byte(`{"night_hours":9}`)))
	require.NoError(t, cache.Put("http://x/exposures", []byte(`{"a":1}`)))
	assert.NotEqual(t, cacheKey("http://x/almanac"), cacheKey("http://x/exposures"))

	require.NoError(t, cache.Clear())
	_, ok := cache.Get("http://x/almanac", true)
	assert.False(t, ok)
	_, ok = cache.Get("http://x/exposures", true)
	assert.False(t, ok)
}

func TestEfficiencyAndTimeLoss(t *testing.T) {
	assert.Equal(t, 0, Efficiency(0, 1000, 0))
	assert.Equal(t, 50, Efficiency(2, 3600, 0))
	assert.Equal(t, 100, Efficiency(2, 3600, 1))

	loss, details := TimeLoss(0, 0)
	assert.Equal(t, "0 hours", loss)
	assert.Equal(t, "(- weather; - fault)", details)
}

func TestInstrument(t *testing.T) {
	got, err := Instrument("Simonyi")
	require.NoError(t, err)
	assert.Equal(t, "LSSTCam", got)
	got, err = Instrument("auxtel")
	require.NoError(t, err)
	assert.Equal(t, "LATISS", got)
	_, err = Instrument("hubble")
	assert.Error(t, err)
}

func TestDashboardURL(t *testing.T) {
	w := timerange.Range{
		Start: time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 2, 2, 0, 0, 0, time.UTC),
	}
	got := DashboardURL("https://example.org/nightlydigest/plots", LinkParams{
		StartDayObs: 20240501, EndDayObs: 20240501, Telescope: "Simonyi", Window: w,
	})
	assert.Equal(t, "https://example.org/nightlydigest/plots?endDayobs=20240501&endTime=1714615200000"+
		"&startDayobs=20240501&startTime=1714600800000&telescope=Simonyi", got)
}
