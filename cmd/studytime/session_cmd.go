package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studytime/internal/bootstrap"
	sessiondto "studytime/internal/modules/session/dto"
	"studytime/internal/ui/format"
)

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session lifecycle"}

	session.AddCommand(&cobra.Command{
		Use:   "start <subject>",
		Short: "Start timing a subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(ctx, joinArgs(args))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s subject=%s at=%s\n",
					out.SessionID, out.Subject, format.Stamp(out.StartedAt, app.Config.Location))
				return nil
			})
		},
	})

	session.AddCommand(stopwatchCmd(dataDir, "pause", "Pause the running session", func(ctx context.Context, app *bootstrap.App) (sessiondto.StopwatchOutput, error) {
		return app.SessionCLI.Pause(ctx)
	}))
	session.AddCommand(stopwatchCmd(dataDir, "resume", "Resume the paused session", func(ctx context.Context, app *bootstrap.App) (sessiondto.StopwatchOutput, error) {
		return app.SessionCLI.Resume(ctx)
	}))
	session.AddCommand(stopwatchCmd(dataDir, "discard", "Drop the open session without saving it", func(ctx context.Context, app *bootstrap.App) (sessiondto.StopwatchOutput, error) {
		return app.SessionCLI.Discard(ctx)
	}))
	session.AddCommand(stopwatchCmd(dataDir, "status", "Show the open session, if any", func(ctx context.Context, app *bootstrap.App) (sessiondto.StopwatchOutput, error) {
		return app.SessionCLI.Status(ctx)
	}))

	session.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the open session and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Stop(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session recorded: %s subject=%s studied=%s\n",
					out.ID, out.Subject, format.Duration(out.Duration))
				return nil
			})
		},
	})

	session.AddCommand(newSessionListCmd(dataDir))
	session.AddCommand(newSessionAddCmd(dataDir))
	session.AddCommand(newSessionEditCmd(dataDir))

	session.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session deleted: %s\n", args[0])
				return nil
			})
		},
	})
	return session
}

func stopwatchCmd(dataDir *string, use, short string, fn func(context.Context, *bootstrap.App) (sessiondto.StopwatchOutput, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := fn(ctx, app)
				if err != nil {
					return err
				}
				printStopwatch(cmd, out, app.Config.Location)
				return nil
			})
		},
	}
}

func printStopwatch(cmd *cobra.Command, out sessiondto.StopwatchOutput, loc *time.Location) {
	if !out.Active() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "idle")
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s subject=%s elapsed=%s started=%s id=%s\n",
		out.State, out.Subject, format.Clock(out.Elapsed), format.Stamp(out.StartedAt, loc), out.SessionID)
}

func newSessionListCmd(dataDir *string) *cobra.Command {
	var subject string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(ctx, subject, limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				loc := app.Config.Location
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s → %s  %8s  %s\n",
						s.ID, format.Stamp(s.Start, loc), s.Start.In(loc).Format("15:04"), s.End.In(loc).Format("15:04"),
						format.Duration(s.Duration), s.Subject)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&subject, "subject", "", "only sessions of this subject")
	list.Flags().IntVar(&limit, "limit", 0, "show only the N most recent sessions (0 = all)")
	return list
}

func newSessionAddCmd(dataDir *string) *cobra.Command {
	var subject, start, end string
	add := &cobra.Command{
		Use:   "add --subject <name> --start <time> --end <time>",
		Short: "Record a finished session by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				from, err := parseTime(start, app.Config.Location)
				if err != nil {
					return err
				}
				to, err := parseTime(end, app.Config.Location)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Record(ctx, subject, from, to)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session recorded: %s subject=%s studied=%s\n",
					out.ID, out.Subject, format.Duration(out.Duration))
				return nil
			})
		},
	}
	add.Flags().StringVar(&subject, "subject", "", "subject name")
	add.Flags().StringVar(&start, "start", "", "start time (RFC 3339 or YYYY-MM-DD HH:MM)")
	add.Flags().StringVar(&end, "end", "", "end time (RFC 3339 or YYYY-MM-DD HH:MM)")
	_ = add.MarkFlagRequired("subject")
	_ = add.MarkFlagRequired("start")
	_ = add.MarkFlagRequired("end")
	return add
}

func newSessionEditCmd(dataDir *string) *cobra.Command {
	var subject, start, end string
	var duration time.Duration
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a recorded session",
		Long: "Change a recorded session. Moving --start or --end without --duration\n" +
			"resets the studied time to the new span.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				in := sessiondto.EditInput{ID: args[0]}
				flags := cmd.Flags()
				if flags.Changed("subject") {
					in.Subject = &subject
				}
				if flags.Changed("start") {
					t, err := parseTime(start, app.Config.Location)
					if err != nil {
						return err
					}
					in.Start = &t
				}
				if flags.Changed("end") {
					t, err := parseTime(end, app.Config.Location)
					if err != nil {
						return err
					}
					in.End = &t
				}
				if flags.Changed("duration") {
					in.Duration = &duration
				}
				out, err := app.SessionCLI.Edit(ctx, in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session updated: %s subject=%s %s → %s studied=%s\n",
					out.ID, out.Subject,
					format.Stamp(out.Start, app.Config.Location), format.Stamp(out.End, app.Config.Location),
					format.Duration(out.Duration))
				return nil
			})
		},
	}
	edit.Flags().StringVar(&subject, "subject", "", "new subject")
	edit.Flags().StringVar(&start, "start", "", "new start time")
	edit.Flags().StringVar(&end, "end", "", "new end time")
	edit.Flags().DurationVar(&duration, "duration", 0, "new studied time, e.g. 45m")
	return edit
}
