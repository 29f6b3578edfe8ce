package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studytime/internal/bootstrap"
	"studytime/internal/ui/chart"
	"studytime/internal/ui/format"
	"studytime/internal/ui/theme"
)

const staleWarning = "warning: sessions could not be read; showing the last data loaded"

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Study totals per subject, per day and overall",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				if err := printOverall(ctx, cmd, app); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out)
				if err := printSubjects(ctx, cmd, app); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out)
				return printDays(ctx, cmd, app)
			})
		},
	}

	stats.AddCommand(&cobra.Command{
		Use:   "subjects",
		Short: "Total study time per subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return printSubjects(ctx, cmd, app)
			})
		},
	})
	stats.AddCommand(&cobra.Command{
		Use:   "days",
		Short: "Total study time per calendar day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return printDays(ctx, cmd, app)
			})
		},
	})
	stats.AddCommand(&cobra.Command{
		Use:   "overall",
		Short: "Total study time across every session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return printOverall(ctx, cmd, app)
			})
		},
	})
	return stats
}

func printOverall(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
	out, err := app.StatsCLI.Overall(ctx)
	if err != nil {
		return err
	}
	warnStale(cmd, out.Stale)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %s over %d sessions\n", format.Duration(out.Total), out.Sessions)
	return nil
}

func printSubjects(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
	out, err := app.StatsCLI.BySubject(ctx)
	if err != nil {
		return err
	}
	warnStale(cmd, out.Stale)
	if len(out.Items) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
		return nil
	}
	for _, s := range out.Items {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %9s %5.1f%%  %d sessions\n", s.Subject, format.Duration(s.Total), s.Share, s.Sessions)
	}
	return nil
}

func printDays(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
	out, err := app.StatsCLI.ByDay(ctx)
	if err != nil {
		return err
	}
	warnStale(cmd, out.Stale)
	if len(out.Items) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
		return nil
	}
	for _, d := range out.Items {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %9s\n", d.Day, format.Duration(d.Total))
	}
	return nil
}

func warnStale(cmd *cobra.Command, stale bool) {
	if stale {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), staleWarning)
	}
}

func newChartCmd(dataDir *string) *cobra.Command {
	chartCmd := &cobra.Command{Use: "chart", Short: "Draw study charts in the terminal"}

	chartCmd.AddCommand(&cobra.Command{
		Use:   "pie",
		Short: "Share of study time per subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StatsCLI.BySubject(ctx)
				if err != nil {
					return err
				}
				warnStale(cmd, out.Stale)
				slices := make([]chart.Slice, len(out.Items))
				for i, s := range out.Items {
					slices[i] = chart.Slice{Label: s.Subject, Value: s.Total.Seconds(), Caption: format.Duration(s.Total)}
				}
				return render(cmd.OutOrStdout(), app, func() string { return chart.Pie(slices, 8) })
			})
		},
	})

	var days int
	bar := &cobra.Command{
		Use:   "bar",
		Short: "Study time over the last days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				n := days
				if !cmd.Flags().Changed("days") {
					n = app.Config.ChartDays
				}
				out, err := app.StatsCLI.LastDays(ctx, n)
				if err != nil {
					return err
				}
				warnStale(cmd, out.Stale)
				bars := make([]chart.Bar, len(out.Items))
				for i, d := range out.Items {
					bars[i] = chart.Bar{Label: d.Date.Format("Mon 02"), Value: d.Total.Seconds(), Caption: format.Hours(d.Total)}
				}
				return render(cmd.OutOrStdout(), app, func() string { return chart.Bars(bars, 12) })
			})
		},
	}
	bar.Flags().IntVar(&days, "days", 0, "number of days, ending today (default from config)")

	chartCmd.AddCommand(bar)
	return chartCmd
}

// render draws with the configured palette.
func render(w io.Writer, app *bootstrap.App, draw func() string) error {
	theme.Use(app.Config.Theme)
	_, err := fmt.Fprintln(w, draw())
	return err
}
