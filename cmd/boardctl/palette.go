package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"task-board/internal/service"
)

func statusCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage task statuses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List statuses grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			palette, err := s.app.Statuses.Palette(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range palette.Groups() {
				fmt.Fprintln(out, titleStyle.Render(g.Category))
				for _, st := range g.Statuses {
					fmt.Fprintf(out, "  %s %4d  %-28s %s\n", swatch(st.Hex), st.ID, st.Name, fadedStyle.Render(st.Hex))
				}
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name> <hex> <category>",
		Short: "Add a status; the color class is looked up by hex",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, _ := cmd.Flags().GetString("class")
			st, err := s.app.Statuses.CreateStatus(cmd.Context(), service.StatusInput{
				Name:     args[0],
				Hex:      args[1],
				Category: args[2],
				Color:    class,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created status %d %q (%s)\n", st.ID, st.Name, st.Color)
			return nil
		},
	}
	add.Flags().String("class", "", "Color class used when no color matches the hex")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Statuses.DeleteStatus(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted status %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func colorCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Manage status colors",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := s.app.Statuses.ListColors(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range colors {
				fmt.Fprintf(out, "%s %4d  %-12s %s %s\n", swatch(c.Hex), c.ID, c.Name, c.Hex, fadedStyle.Render(c.TailwindClass))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name> <hex> [class]",
		Short: "Add a color",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			class := ""
			if len(args) == 3 {
				class = args[2]
			}
			c, err := s.app.Statuses.CreateColor(cmd.Context(), args[0], args[1], class)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created color %d %q\n", c.ID, c.Name)
			return nil
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
