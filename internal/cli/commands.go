package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/ui"
)

func newLsCmd(baseURL *string) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List todos from the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := newCollection(*baseURL)
			if err != nil {
				return err
			}
			if err := coll.Load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}

			todos := coll.Todos()
			if status != "" {
				want, ok := model.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q (want %s)", status, statusUsage())
				}
				filtered := todos[:0]
				for _, td := range todos {
					if td.Status == want {
						filtered = append(filtered, td)
					}
				}
				todos = filtered
			}

			if len(todos) == 0 {
				fmt.Println(ui.Muted.Render("no todos"))
				return nil
			}
			for _, td := range todos {
				fmt.Printf("%4d  %-14s %s\n", td.ID, ui.Badge(td.Status), td.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only show todos with this status")
	return cmd
}

func newAddCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new todo (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("add: empty title")
			}

			coll, err := newCollection(*baseURL)
			if err != nil {
				return err
			}
			todo, err := coll.Add(cmd.Context(), title)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(fmt.Sprintf("added #%d %q", todo.ID, todo.Title))
			return nil
		},
	}
}

func newSetCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <status>",
		Short: "Change a todo's status",
		Long:  "Change a todo's status. Valid statuses: " + statusUsage() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("set: not a todo id: %q", args[0])
			}
			status, ok := model.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q (want %s)", args[1], statusUsage())
			}

			coll, err := newCollection(*baseURL)
			if err != nil {
				return err
			}
			// Populate the cache first so the optimistic write and a
			// potential rollback operate on real data.
			if err := coll.Load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}

			updateErr := coll.UpdateStatus(cmd.Context(), id, status)
			// Reconcile with the service regardless of outcome.
			if err := coll.Load(cmd.Context()); err != nil {
				return fmt.Errorf("reload: %w", err)
			}
			if updateErr != nil {
				return fmt.Errorf("set: %w", updateErr)
			}
			ui.OK(fmt.Sprintf("todo #%d → %s", id, status.Label()))
			return nil
		},
	}
}

func statusUsage() string {
	all := model.AllStatuses()
	parts := make([]string, len(all))
	for i, s := range all {
		parts[i] = string(s)
	}
	return strings.Join(parts, "|")
}
