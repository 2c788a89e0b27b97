package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SmartScheduler/internal/app"
	checkConflicts "github.com/m04kA/SMC-SmartScheduler/internal/usecase/check_conflicts"
	getAvailableSlots "github.com/m04kA/SMC-SmartScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

var errConflictsFound = errors.New("time range is already taken")

func newScheduleCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Free slots and conflict checks",
	}

	cmd.AddCommand(newSlotsCommand(opts))
	cmd.AddCommand(newConflictsCommand(opts))
	return cmd
}

func newSlotsCommand(opts *options) *cobra.Command {
	var (
		date, start, end string
		duration         int
	)

	cmd := &cobra.Command{
		Use:     "slots",
		Short:   "Show free slots of the given length on a date",
		Example: "  scheduler-cli schedule slots --date 2025-05-05 --duration 30 --start 10:00 --end 18:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := types.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}
			workStart, err := optionalTime(start)
			if err != nil {
				return err
			}
			workEnd, err := optionalTime(end)
			if err != nil {
				return err
			}
			var slotDuration *int
			if cmd.Flags().Changed("duration") {
				slotDuration = &duration
			}

			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				resp, err := a.GetAvailableSlots.Execute(ctx, &getAvailableSlots.Request{
					UserID:          opts.userID,
					Date:            day,
					DurationMinutes: slotDuration,
					WorkStart:       workStart,
					WorkEnd:         workEnd,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s, %d min slots within %s-%s:\n", resp.Date, resp.DurationMinutes, resp.WorkStart, resp.WorkEnd)
				if len(resp.Slots) == 0 {
					fmt.Fprintln(out, "  no free slots")
					return nil
				}
				for _, s := range resp.Slots {
					fmt.Fprintf(out, "  %s-%s\n", s.StartTime, s.EndTime)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().IntVar(&duration, "duration", 0, "Slot length in minutes (default from settings)")
	cmd.Flags().StringVar(&start, "start", "", "Work window start, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "Work window end, HH:MM")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newConflictsCommand(opts *options) *cobra.Command {
	var (
		date, start, end string
		exclude          int64
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Check whether a time range overlaps existing tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := types.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}
			startTime, err := types.ParseTimeOfDay(start)
			if err != nil {
				return fmt.Errorf("invalid --start %q: %w", start, err)
			}
			endTime, err := types.ParseTimeOfDay(end)
			if err != nil {
				return fmt.Errorf("invalid --end %q: %w", end, err)
			}

			req := &checkConflicts.Request{Date: day, StartTime: startTime, EndTime: endTime}
			if exclude > 0 {
				req.ExcludeTaskID = &exclude
			}

			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				resp, err := a.CheckConflicts.Execute(ctx, req)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !resp.HasConflicts {
					fmt.Fprintf(out, "%s %s-%s is free\n", day, startTime, endTime)
					return nil
				}
				printTasks(out, fmt.Sprintf("%s %s-%s overlaps:", day, startTime, endTime), resp.Conflicts)
				return errConflictsFound
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "Start time, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "End time, HH:MM")
	cmd.Flags().Int64Var(&exclude, "exclude", 0, "Task ID to ignore (when moving it)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
