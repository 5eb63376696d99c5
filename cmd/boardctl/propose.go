package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-board/internal/model"
	"task-board/internal/render"
)

func proposeCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "propose weekly|daily [date]",
		Short:     "List the recurring instances missing from a week",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{string(model.RecurringWeekly), string(model.RecurringDaily)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.Recurring(args[0])
			week, err := weekArg(args[1:])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			proposed, err := s.app.Recurrence.Propose(ctx, week, mode)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s proposals for %s", mode, week.Label())))
			if len(proposed) == 0 {
				fmt.Fprintln(out, fadedStyle.Render("nothing to add"))
				return nil
			}
			for _, t := range proposed {
				fmt.Fprintf(out, "  %s  %s\n", t.StartDate, render.Label(t))
			}

			apply, _ := cmd.Flags().GetBool("apply")
			if !apply {
				fmt.Fprintln(out, fadedStyle.Render("dry run, pass --apply to insert"))
				return nil
			}
			created, err := s.app.Recurrence.Materialize(ctx, proposed)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "inserted %d tasks\n", len(created))
			return nil
		},
	}

	cmd.Flags().Bool("apply", false, "Insert the proposed tasks")

	return cmd
}
