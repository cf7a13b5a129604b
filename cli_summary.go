package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andareed/siftly-digest/digest"
)

func newSummaryCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the night summary",
		Example: `
sfdigest summary --start-dayobs 20240101
sfdigest summary -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unknown output %q (want table, json or yaml)", output)
			}
			q, err := a.query()
			if err != nil {
				return err
			}
			ctx, cancel := contextWithTimeout(cmd, a.cfg.Timeout)
			defer cancel()
			s, err := a.client().Summary(ctx, q)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), s, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml.")
	return cmd
}

func printSummary(w io.Writer, s digest.Summary, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}

	bold := color.New(color.Bold)
	nights := s.Start.ForDisplay()
	if s.End != s.Start {
		nights += " to " + s.End.ForDisplay()
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Nights"), nights)
	tbl.AddRow(bold.Sprint("Instrument"), s.Instrument)
	tbl.AddRow(bold.Sprint("Exposures"), humanize.Comma(int64(s.Exposures)))
	tbl.AddRow(bold.Sprint("Open shutter"), fmt.Sprintf("%.2f hours", s.SumExposureTime/3600))
	tbl.AddRow(bold.Sprint("Night hours"), fmt.Sprintf("%.2f", s.NightHours))
	tbl.AddRow(bold.Sprint("Efficiency"), fmt.Sprintf("%d%%", s.Efficiency))
	tbl.AddRow(bold.Sprint("Time loss"), strings.TrimSpace(s.TimeLoss+" "+s.TimeLossDetails))
	tbl.RightAlign(0)

	_, err := fmt.Fprintln(w, tbl)
	return err
}
