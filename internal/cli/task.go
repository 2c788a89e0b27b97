package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SmartScheduler/internal/app"
	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
	createTask "github.com/m04kA/SMC-SmartScheduler/internal/usecase/create_task"
)

func newTaskCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(newTaskAddCommand(opts))
	cmd.AddCommand(newTaskListCommand(opts))
	cmd.AddCommand(newTaskCompleteCommand(opts))
	cmd.AddCommand(newTaskDeleteCommand(opts))
	return cmd
}

func newTaskAddCommand(opts *options) *cobra.Command {
	var (
		date, start, end, priority, category string
		duration                             int
		allDay                               bool
		projectID                            int64
		tags                                 []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task, rejecting it if its time overlaps another task",
		Example: `  scheduler-cli task add "Write report"
  scheduler-cli task add "Stand-up" --date 2025-05-05 --start 09:30 --end 09:45
  scheduler-cli task add "Deep work" --date 2025-05-05 --start 13:00 --duration 90 --priority high`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduledDate, err := optionalDate(date)
			if err != nil {
				return err
			}
			startTime, err := optionalTime(start)
			if err != nil {
				return err
			}
			endTime, err := optionalTime(end)
			if err != nil {
				return err
			}

			req := &createTask.Request{
				Title:         strings.Join(args, " "),
				Priority:      priority,
				Category:      optionalString(category),
				Tags:          tags,
				ScheduledDate: scheduledDate,
				StartTime:     startTime,
				EndTime:       endTime,
				AllDay:        allDay,
			}
			if duration > 0 {
				req.EstimatedDuration = &duration
			}
			if projectID > 0 {
				req.ProjectID = &projectID
			}

			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				task, err := a.CreateTask.Execute(ctx, req)
				if err != nil {
					var conflictErr *domain.ConflictError
					if errors.As(err, &conflictErr) {
						printTasks(cmd.OutOrStdout(), "Conflicting tasks:", conflictErr.Conflicts)
					}
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d %q (%s)\n", task.ID, task.Title, task.Status)
				if label := task.TimeSlotLabel(); label != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", task.ScheduledDate, label)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled date, YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "Start time, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "End time, HH:MM (default start + duration)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Estimated duration in minutes")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "All-day task, never conflicts")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low|medium|high|urgent")
	cmd.Flags().StringVar(&category, "category", "", "Free-form category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag, repeatable")
	cmd.Flags().Int64Var(&projectID, "project", 0, "Project ID")
	return cmd
}

func newTaskListCommand(opts *options) *cobra.Command {
	var (
		status, from, to, search string
		limit                    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &models.ListTasksRequest{
				Status:   optionalString(status),
				DateFrom: optionalString(from),
				DateTo:   optionalString(to),
				Search:   optionalString(search),
				Limit:    limit,
			}

			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				list, err := a.Tasks.List(ctx, req)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if list.Total == 0 {
					fmt.Fprintln(out, "No tasks found.")
					return nil
				}
				fmt.Fprintf(out, "Tasks (%d):\n", list.Total)
				for _, t := range list.Tasks {
					when := "-"
					if t.ScheduledDate != nil {
						when = *t.ScheduledDate
						if t.TimeSlot != "" {
							when += " " + t.TimeSlot
						}
					}
					fmt.Fprintf(out, "  #%-4d %-12s %-8s %-24s %s\n", t.ID, t.Status, t.Priority, when, t.Title)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&from, "from", "", "Scheduled on or after, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Scheduled on or before, YYYY-MM-DD")
	cmd.Flags().StringVar(&search, "search", "", "Substring of title or description")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of tasks")
	return cmd
}

func newTaskCompleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				task, err := a.Tasks.Complete(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d %q\n", task.ID, task.Title)
				return nil
			})
		},
	}
}

func newTaskDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				if err := a.Tasks.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
				return nil
			})
		},
	}
}

func printTasks(out io.Writer, title string, tasks []*domain.Task) {
	fmt.Fprintln(out, title)
	for _, t := range tasks {
		fmt.Fprintf(out, "  #%-4d %s %s\n", t.ID, t.TimeSlotLabel(), t.Title)
	}
}
