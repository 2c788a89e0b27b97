package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SmartScheduler/internal/app"
	"github.com/m04kA/SMC-SmartScheduler/internal/infra/migrations"
)

func newStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Task and deadline summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				tasks, err := a.Tasks.Stats(ctx)
				if err != nil {
					return err
				}
				deadlines, err := a.Deadlines.Analytics(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Tasks:     %d total, %d pending, %d scheduled, %d in progress, %d completed\n",
					tasks.TotalTasks, tasks.Pending, tasks.Scheduled, tasks.InProgress, tasks.Completed)
				fmt.Fprintf(out, "           %d today, %d overdue, %.1f%% completion\n",
					tasks.TodayTasks, tasks.Overdue, tasks.CompletionRate)
				fmt.Fprintf(out, "Deadlines: %d total, %d completed, %d overdue, %d upcoming\n",
					deadlines.Total, deadlines.Completed, deadlines.Overdue, deadlines.Upcoming)
				return nil
			})
		},
	}
}

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, a *app.App) error {
				log, err := opts.logger(cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				applied, err := migrations.Run(ctx, a.DB.Unwrap(), a.Driver, log)
				if err != nil {
					return err
				}
				versions, err := migrations.Versions(ctx, a.DB.Unwrap(), a.Driver)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Applied %d migration(s) on %s\n", applied, a.Driver)
				for _, v := range versions {
					fmt.Fprintf(out, "  %s\n", v)
				}
				return nil
			})
		},
	}
}
