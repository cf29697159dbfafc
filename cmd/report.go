package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/jekabolt/shopdesk-reports/app"
	"github.com/jekabolt/shopdesk-reports/internal/chart"
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/jekabolt/shopdesk-reports/internal/metrics"
	"github.com/jekabolt/shopdesk-reports/internal/render"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var (
	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Compute a report once and print it",
		RunE:  report,
	}

	reportFrom    string
	reportTo      string
	reportOutput  string
	reportSection string
	reportShape   string
	reportLimit   int
)

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFrom, "from", "", "first day of the period (YYYY-MM-DD), open when empty")
	f.StringVar(&reportTo, "to", "", "last day of the period (YYYY-MM-DD), open when empty")
	f.StringVarP(&reportOutput, "output", "o", "table", "output format: table or json")
	f.StringVar(&reportSection, "section", "", "print only the chart points of one section")
	f.StringVar(&reportShape, "shape", string(chart.Bar), "chart shape for --section")
	f.IntVar(&reportLimit, "limit", 0, "max chart points for --section, 0 for all")
}

// parsePeriod turns the flags into a range of whole days. Either end may be
// left open.
func parsePeriod(from, to string, loc *time.Location) (entity.TimeRange, error) {
	var tr entity.TimeRange
	for _, p := range []struct {
		name, value string
		dst         *time.Time
	}{{"from", from, &tr.From}, {"to", to, &tr.To}} {
		if p.value == "" {
			continue
		}
		if !govalidator.IsTime(p.value, dateLayout) {
			return entity.TimeRange{}, fmt.Errorf("%w: --%s %q is not a %s date", gerr.ErrInvalidPeriod, p.name, p.value, dateLayout)
		}
		t, _ := time.ParseInLocation(dateLayout, p.value, loc)
		*p.dst = t
	}
	if !tr.From.IsZero() {
		tr.From = entity.DayRange(tr.From, tr.From, loc).From
	}
	if !tr.To.IsZero() {
		tr.To = entity.DayRange(tr.To, tr.To, loc).To
	}
	if !tr.Valid() {
		return entity.TimeRange{}, fmt.Errorf("%w: --from is after --to", gerr.ErrInvalidPeriod)
	}
	return tr, nil
}

func report(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}
	period, err := parsePeriod(reportFrom, reportTo, engine.Location())
	if err != nil {
		return err
	}

	src, closeSrc, err := app.NewSource(ctx, cfg, engine.Location())
	if err != nil {
		return err
	}
	defer closeSrc()

	snap, err := src.LoadSnapshot(ctx, period)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	rep := engine.Build(snap, period)

	out := cmd.OutOrStdout()
	if reportSection != "" {
		shape, err := chart.ParseShape(reportShape)
		if err != nil {
			return err
		}
		items, err := metrics.Section(rep, reportSection)
		if err != nil {
			return err
		}
		points, err := chart.Project(items, chart.Options{
			Shape:       shape,
			Limit:       reportLimit,
			LabelBudget: cfg.Chart.LabelBudget,
		})
		if err != nil {
			return err
		}
		return encodeJSON(out, points)
	}

	switch reportOutput {
	case "json":
		return encodeJSON(out, rep)
	case "table":
		return render.New(cfg.Locale).Report(out, rep)
	}
	return fmt.Errorf("unknown output %q", reportOutput)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
