package digest

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/andareed/siftly-digest/timerange"
)

// Summary is the night digest shown in the summary drawer and printed by the
// summary command.
type Summary struct {
	Start           timerange.DayObs `json:"start_dayobs" yaml:"start_dayobs"`
	End             timerange.DayObs `json:"end_dayobs" yaml:"end_dayobs"`
	Instrument      string           `json:"instrument" yaml:"instrument"`
	Exposures       int              `json:"exposures" yaml:"exposures"`
	SumExposureTime float64          `json:"sum_exposure_time" yaml:"sum_exposure_time"`
	NightHours      float64          `json:"night_hours" yaml:"night_hours"`
	WeatherLoss     float64          `json:"weather_loss_hours" yaml:"weather_loss_hours"`
	FaultLoss       float64          `json:"fault_loss_hours" yaml:"fault_loss_hours"`
	Efficiency      int              `json:"efficiency_percent" yaml:"efficiency_percent"`
	TimeLoss        string           `json:"time_loss" yaml:"time_loss"`
	TimeLossDetails string           `json:"time_loss_details" yaml:"time_loss_details"`
}

func (c *Client) Summary(ctx context.Context, q Query) (Summary, error) {
	s := Summary{Start: q.Start, End: q.End, Instrument: q.Instrument}

	var (
		totals  ExposureTotals
		almanac Almanac
		narr    NarrativeLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = c.Exposures(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		almanac, err = c.Almanac(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		narr, err = c.NarrativeLog(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return s, err
	}

	s.Exposures = totals.Count
	s.SumExposureTime = totals.SumExposureTime
	s.NightHours = almanac.NightHours
	s.WeatherLoss = narr.WeatherLoss
	s.FaultLoss = narr.FaultLoss
	s.Efficiency = Efficiency(s.NightHours, s.SumExposureTime, s.WeatherLoss)
	s.TimeLoss, s.TimeLossDetails = TimeLoss(s.WeatherLoss, s.FaultLoss)
	return s, nil
}

// Efficiency is the percentage of usable night time spent exposing.
// sumExpTime is in seconds, nightHours and weatherLoss in hours.
func Efficiency(nightHours, sumExpTime, weatherLoss float64) int {
	if nightHours == 0 {
		return 0
	}
	usable := nightHours*3600 - weatherLoss*3600
	if usable <= 0 {
		return 0
	}
	return int(math.Round(100 * sumExpTime / usable))
}

// TimeLoss describes hours lost and the weather/fault split.
func TimeLoss(weatherLoss, faultLoss float64) (string, string) {
	loss := weatherLoss + faultLoss
	if loss <= 0 {
		return "0 hours", "(- weather; - fault)"
	}
	weatherPct := math.Round(weatherLoss / loss * 100)
	faultPct := math.Round(faultLoss / loss * 100)
	return fmt.Sprintf("%.2f hours", loss), fmt.Sprintf("(%d%% weather; %d%% fault)", int(weatherPct), int(faultPct))
}

// DataLogHeader is the column order produced by Records.
var DataLogHeader = []string{
	"exposure name", "day_obs", "seq_num", "obs_start", "exp_time",
	"band", "target_name", "exposure_flag", "message_text",
}

// Records flattens exposures into a header row followed by one record per
// exposure, the shape the table loader expects.
func Records(exps []Exposure) [][]string {
	out := make([][]string, 0, len(exps)+1)
	out = append(out, append([]string(nil), DataLogHeader...))
	for _, e := range exps {
		out = append(out, []string{
			e.Name,
			strconv.Itoa(e.DayObs),
			strconv.Itoa(e.SeqNum),
			e.ObsStart,
			strconv.FormatFloat(e.ExpTime, 'f', 2, 64),
			e.Band,
			e.TargetName,
			e.ExposureFlag,
			e.MessageText,
		})
	}
	return out
}

// LinkParams are the dashboard search parameters that survive navigation.
type LinkParams struct {
	StartDayObs timerange.DayObs
	EndDayObs   timerange.DayObs
	Telescope   string
	Window      timerange.Range
}

// DashboardURL builds a deep link into the web dashboard for the same nights
// and window.
func DashboardURL(base string, p LinkParams) string {
	v := url.Values{}
	v.Set("startDayobs", p.StartDayObs.String())
	v.Set("endDayobs", p.EndDayObs.String())
	if p.Telescope != "" {
		v.Set("telescope", p.Telescope)
	}
	if !p.Window.IsZero() {
		v.Set("startTime", strconv.FormatInt(timerange.ToMillis(p.Window.Start), 10))
		v.Set("endTime", strconv.FormatInt(timerange.ToMillis(p.Window.End), 10))
	}
	return base + "?" + v.Encode()
}
