package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andareed/siftly-digest/config"
	"github.com/andareed/siftly-digest/digest"
	"github.com/andareed/siftly-digest/logging"
	"github.com/andareed/siftly-digest/timerange"
)

// app is the state shared by the commands.
type app struct {
	v         *viper.Viper
	cfg       *config.Config
	debugLog  string
	configDir string
	cleanup   func()
	now       func() time.Time

	startDayObs string
	endDayObs   string
	noCache     bool
}

func newApp() *app {
	return &app{v: config.New(), cleanup: func() {}, now: time.Now}
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

type viewOptions struct {
	annotations string
	startTime   string
	endTime     string
}

func newRootCommand(a *app) *cobra.Command {
	o := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "sfdigest [file.csv|file.json]",
		Short: "Browse a night's exposures in the terminal",
		Long: `Browse the exposures of one or more observing nights, flag and comment
them, and narrow the time window with the chart or the window editors.

Without a file the data log is fetched from the nightly digest backend.`,
		Example: `
sfdigest --start-dayobs 20240101 --end-dayobs 20240102
sfdigest --telescope AuxTel --start-time 1704117600000 --end-time 1704128400000
sfdigest night.json
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := a.prepareModel(m, o); err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			if err != nil {
				logging.Errorf("tea program error: %v", err)
			}
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.debugLog, "debug", "", "Write debug logs to `file`.")
	pf.StringVar(&a.configDir, "config", "", "Directory containing .sfdigest.yaml.")
	pf.String("telescope", "", "Telescope: Simonyi or AuxTel.")
	pf.String("backend-url", "", "Nightly digest backend base URL.")
	pf.StringVar(&a.startDayObs, "start-dayobs", "", "First night, yyyyMMdd (default: last night).")
	pf.StringVar(&a.endDayObs, "end-dayobs", "", "Last night, yyyyMMdd (default: last night).")
	pf.BoolVar(&a.noCache, "no-cache", false, "Do not read or write the response cache.")
	_ = a.v.BindPFlag("telescope", pf.Lookup("telescope"))
	_ = a.v.BindPFlag("backend_url", pf.Lookup("backend-url"))

	f := cmd.Flags()
	f.StringVar(&o.annotations, "annotations", "", "Merge flags and comments from a saved snapshot.")
	f.StringVar(&o.startTime, "start-time", "", "Window start, epoch millis or \"15:04  2006-01-02\".")
	f.StringVar(&o.endTime, "end-time", "", "Window end, epoch millis or \"15:04  2006-01-02\".")

	cmd.AddCommand(newSummaryCommand(a), newCacheCommand(a), newVersionCommand())
	return cmd
}

func (a *app) setup() error {
	cleanup, err := logging.SetupLogging(a.debugLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.cleanup = cleanup
	logging.Infof("siftly-digest %s: started", Version)

	if a.configDir != "" {
		a.v.AddConfigPath(a.configDir)
	}
	a.cfg, err = config.Load(a.v)
	return err
}

// query resolves the nights and instrument from the flags, defaulting to
// last night and enforcing the site's retention policy.
func (a *app) query() (digest.Query, error) {
	now := a.now().UTC()
	start, end := timerange.DefaultDayObs(now), timerange.DefaultDayObs(now)
	var err error
	if a.startDayObs != "" {
		if start, err = timerange.ParseDayObs(a.startDayObs); err != nil {
			return digest.Query{}, fmt.Errorf("--start-dayobs: %w", err)
		}
		if a.endDayObs == "" {
			end = start
		}
	}
	if a.endDayObs != "" {
		if end, err = timerange.ParseDayObs(a.endDayObs); err != nil {
			return digest.Query{}, fmt.Errorf("--end-dayobs: %w", err)
		}
	}
	if err := timerange.ValidateNights(start, end, now, a.cfg.Retention); err != nil {
		return digest.Query{}, err
	}
	instrument, err := digest.Instrument(a.cfg.Telescope)
	if err != nil {
		return digest.Query{}, err
	}
	return digest.Query{Start: start, End: end, Instrument: instrument}, nil
}

func (a *app) client() *digest.Client {
	var cache *digest.Cache
	if a.cfg.Cache.Enabled && !a.noCache {
		cache = digest.NewCache(a.cfg.Cache.Path, a.cfg.Cache.TTL, a.cfg.Cache.MaxMemory)
	}
	return digest.NewClient(a.cfg.BackendURL, a.cfg.Timeout, cache)
}

func (a *app) loadModel(ctx context.Context, args []string) (*model, error) {
	if len(args) == 1 {
		m, err := loadModelAuto(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", args[0], err)
		}
		return m, nil
	}
	q, err := a.query()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	m, err := loadModelFromBackend(ctx, a.client(), q, a.cfg.Telescope)
	if err != nil {
		return nil, err
	}
	m.dashboardBase = a.cfg.DashboardURL
	return m, nil
}

func (a *app) prepareModel(m *model, o *viewOptions) error {
	if o.annotations != "" {
		n, err := MergeAnnotations(m, o.annotations)
		if err != nil {
			return fmt.Errorf("annotations %q: %w", o.annotations, err)
		}
		logging.Infof("merged annotations for %d rows from %s", n, o.annotations)
		m.applyFilter()
	}
	startMs, err := parseTimeFlag(o.startTime)
	if err != nil {
		return fmt.Errorf("--start-time: %w", err)
	}
	endMs, err := parseTimeFlag(o.endTime)
	if err != nil {
		return fmt.Errorf("--end-time: %w", err)
	}
	m.applyInitialWindow(startMs, endMs)
	return nil
}

// parseTimeFlag accepts epoch milliseconds or a UTC timestamp. Empty means
// not given.
func parseTimeFlag(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &ms, nil
	}
	t, ok := timerange.ParseTimestamp(s)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as epoch millis or %q", s, timerange.DisplayLayout)
	}
	ms := timerange.ToMillis(t)
	return &ms, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Version:", Version)
		},
	}
}
