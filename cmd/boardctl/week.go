package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-board/internal/dates"
	"task-board/internal/layout"
	"task-board/internal/render"
)

func weekCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Print the week containing date (default today) as a grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := weekArg(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			tasks, err := s.app.Tasks.ListRange(ctx, week.Start, week.End)
			if err != nil {
				return err
			}
			palette, err := s.app.Statuses.Palette(ctx)
			if err != nil {
				return err
			}

			width, _ := cmd.Flags().GetInt("width")
			plain, _ := cmd.Flags().GetBool("plain")
			opts := render.Options{ColumnWidth: width}
			if !plain {
				opts.Style = taskStyle(palette)
				opts.Header = func(cell string) string { return headerStyle.Render(cell) }
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(week.Label()))
			if len(tasks) == 0 {
				fmt.Fprintln(out, fadedStyle.Render("no tasks"))
				return nil
			}
			fmt.Fprintln(out, render.Grid(layout.Compute(week, tasks, layout.DefaultOptions()), tasks, opts))
			fmt.Fprintln(out)
			fmt.Fprintln(out, render.Agenda(week, tasks))
			return nil
		},
	}

	cmd.Flags().IntP("width", "w", render.DefaultOptions().ColumnWidth, "Column width in cells")
	cmd.Flags().Bool("plain", false, "Disable colors")

	return cmd
}

func weekArg(args []string) (dates.Week, error) {
	if len(args) == 0 {
		return dates.WeekOf(time.Now()), nil
	}
	return dates.WeekOfString(args[0])
}
