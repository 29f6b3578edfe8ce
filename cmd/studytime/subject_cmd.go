package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studytime/internal/bootstrap"
	"studytime/internal/ui/format"
)

func newSubjectCmd(dataDir *string) *cobra.Command {
	subject := &cobra.Command{Use: "subject", Short: "Manage the subject registry"}

	subject.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List subjects in the order they were added",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				subjects, err := app.SubjectCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(subjects) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no subjects")
					return nil
				}
				for _, s := range subjects {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  (added %s)\n", s.Name, format.Stamp(s.CreatedAt, app.Config.Location))
				}
				return nil
			})
		},
	})

	subject.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SubjectCLI.Create(ctx, joinArgs(args))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject added: %s\n", out.Name)
				return nil
			})
		},
	})

	subject.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a subject and every session recorded under it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SubjectCLI.Rename(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject renamed: %s -> %s (%d sessions updated)\n", out.From, out.To, out.SessionsUpdated)
				return nil
			})
		},
	})

	var cascade bool
	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a subject",
		Long: "Remove a subject. A subject with recorded sessions is kept unless\n" +
			"--cascade is given, which deletes those sessions too.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SubjectCLI.Delete(ctx, joinArgs(args), cascade)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject deleted: %s (%d sessions removed)\n", out.Name, out.SessionsRemoved)
				return nil
			})
		},
	}
	del.Flags().BoolVar(&cascade, "cascade", false, "also delete the subject's sessions")

	subject.AddCommand(del)
	return subject
}
