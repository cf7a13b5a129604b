// Package digest talks to the Nightly Digest backend: exposure counts, the
// almanac, the narrative log and the per-exposure data log.
package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andareed/siftly-digest/logging"
	"github.com/andareed/siftly-digest/timerange"
)

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s failed with status %d: %s", e.URL, e.Code, strings.TrimSpace(e.Body))
}

// Query selects the nights and instrument to fetch.
type Query struct {
	Start      timerange.DayObs
	End        timerange.DayObs
	Instrument string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("dayObsStart", q.Start.String())
	v.Set("dayObsEnd", q.End.String())
	if q.Instrument != "" {
		v.Set("instrument", q.Instrument)
	}
	return v
}

// Instrument maps a telescope name to the backend instrument name.
func Instrument(telescope string) (string, error) {
	switch strings.ToLower(telescope) {
	case "simonyi":
		return "LSSTCam", nil
	case "auxtel":
		return "LATISS", nil
	default:
		return "", fmt.Errorf("unknown telescope %q (want Simonyi or AuxTel)", telescope)
	}
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *Cache
	// Now is used to decide whether a cached night is final.
	Now func() time.Time
}

func NewClient(baseURL string, timeout time.Duration, cache *Cache) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Cache:   cache,
		Now:     time.Now,
	}
}

func (c *Client) endpoint(path string, q Query) string {
	return c.BaseURL + path + "?" + q.values().Encode()
}

func (c *Client) getJSON(ctx context.Context, path string, q Query, out any) error {
	u := c.endpoint(path, q)

	final := c.Now != nil && q.End < timerange.CurrentDayObs(c.Now())
	if c.Cache != nil {
		if body, ok := c.Cache.Get(u, final); ok {
			logging.Debugf("digest: cache hit %s", u)
			return json.Unmarshal(body, out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debugf("digest: GET %s", u)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching data from %s: %w", u, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", u, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{URL: u, Code: res.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	if c.Cache != nil {
		if err := c.Cache.Put(u, body); err != nil {
			logging.Warnf("digest: cache write %s: %v", u, err)
		}
	}
	return nil
}

type ExposureTotals struct {
	Count           int     `json:"exposures_count"`
	SumExposureTime float64 `json:"sum_exposure_time"`
}

func (c *Client) Exposures(ctx context.Context, q Query) (ExposureTotals, error) {
	var out ExposureTotals
	err := c.getJSON(ctx, "/exposures", q, &out)
	return out, err
}

type Almanac struct {
	NightHours float64 `json:"night_hours"`
}

func (c *Client) Almanac(ctx context.Context, q Query) (Almanac, error) {
	var out Almanac
	// The almanac is per night and has no instrument.
	err := c.getJSON(ctx, "/almanac", Query{Start: q.Start, End: q.End}, &out)
	return out, err
}

type NarrativeLog struct {
	WeatherLoss float64 `json:"time_lost_to_weather"`
	FaultLoss   float64 `json:"time_lost_to_faults"`
}

func (c *Client) NarrativeLog(ctx context.Context, q Query) (NarrativeLog, error) {
	var out NarrativeLog
	err := c.getJSON(ctx, "/narrative-log", q, &out)
	return out, err
}

// Exposure is one row of the data log.
type Exposure struct {
	Name         string  `json:"exposure name"`
	DayObs       int     `json:"day_obs"`
	SeqNum       int     `json:"seq_num"`
	ObsStart     string  `json:"obs_start"`
	ExpTime      float64 `json:"exp_time"`
	Band         string  `json:"band"`
	TargetName   string  `json:"target_name"`
	ExposureFlag string  `json:"exposure_flag"`
	MessageText  string  `json:"message_text"`
}

type dataLogResponse struct {
	Data []Exposure `json:"data"`
}

func (c *Client) DataLog(ctx context.Context, q Query) ([]Exposure, error) {
	var out dataLogResponse
	if err := c.getJSON(ctx, "/data-log", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
