package cli

import (
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/spf13/cobra"
)

func (a *app) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		a.taskListCmd(),
		a.taskAddCmd(),
		a.taskShowCmd(),
		a.taskEditCmd(),
		a.taskArchiveCmd(),
		a.taskRemoveCmd(),
	)
	return cmd
}

func (a *app) taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			tasks, err := a.api.ListTasks(cmd.Context(), status)
			if err != nil {
				return err
			}
			return a.printTasks(tasks)
		},
	}
	cmd.Flags().StringP("status", "s", "", "filter: active or archived")
	return cmd
}

func (a *app) taskAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &entity.CreateTaskRequest{Title: args[0]}
			if cmd.Flags().Changed("note") {
				note, _ := cmd.Flags().GetString("note")
				req.Note = &note
			}
			if cmd.Flags().Changed("pomos") {
				pomos, _ := cmd.Flags().GetInt("pomos")
				req.EstimatedPomos = &pomos
			}

			task, err := a.api.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printTask(task, fmt.Sprintf("✅ New task \"%s\" added - ID: %d", task.Title, task.ID))
		},
	}
	cmd.Flags().String("note", "", "free-form note")
	cmd.Flags().Int("pomos", 0, "estimated pomodoros (1-100)")
	return cmd
}

func (a *app) taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			task, err := a.api.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printTasks([]entity.Task{*task})
		},
	}
}

func (a *app) taskEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a task (unspecified fields keep their values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			// API делает полную замену, поэтому начинаем с текущих значений
			current, err := a.api.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			req := &entity.UpdateTaskRequest{
				Title:          current.Title,
				Note:           current.Note,
				EstimatedPomos: current.EstimatedPomos,
				IsArchived:     current.IsArchived,
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title, _ = flags.GetString("title")
			}
			if flags.Changed("note") {
				note, _ := flags.GetString("note")
				req.Note = nil
				if note != "" {
					req.Note = &note
				}
			}
			if flags.Changed("pomos") {
				pomos, _ := flags.GetInt("pomos")
				req.EstimatedPomos = nil
				if pomos != 0 {
					req.EstimatedPomos = &pomos
				}
			}
			if flags.Changed("archived") {
				req.IsArchived, _ = flags.GetBool("archived")
			}

			task, err := a.api.UpdateTask(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return a.printTask(task, fmt.Sprintf("✏️  Task #%d updated", task.ID))
		},
	}
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("note", "", "new note (empty clears)")
	cmd.Flags().Int("pomos", 0, "estimated pomodoros (0 clears)")
	cmd.Flags().Bool("archived", false, "archive or unarchive")
	return cmd
}

func (a *app) taskArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			current, err := a.api.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			task, err := a.api.UpdateTask(cmd.Context(), id, &entity.UpdateTaskRequest{
				Title:          current.Title,
				Note:           current.Note,
				EstimatedPomos: current.EstimatedPomos,
				IsArchived:     true,
			})
			if err != nil {
				return err
			}
			return a.printTask(task, fmt.Sprintf("📦 Task #%d archived", task.ID))
		},
	}
}

func (a *app) taskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task and its sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			if err := a.api.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "🗑️  Task #%d deleted\n", id)
			return nil
		},
	}
}
