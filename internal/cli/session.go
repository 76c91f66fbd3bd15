package cli

import (
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/spf13/cobra"
)

const (
	defaultFocusMinutes = 25
	defaultBreakMinutes = 5
)

func (a *app) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions", "s"},
		Short:   "Start, complete and list sessions",
	}

	cmd.AddCommand(
		a.sessionStartCmd(),
		a.sessionCompleteCmd(),
		a.sessionShowCmd(),
		a.sessionListCmd(),
	)
	return cmd
}

// startRequest собирает запрос на старт из --kind/--minutes
func (a *app) startRequest(cmd *cobra.Command, taskID int) (*entity.StartSessionRequest, error) {
	rawKind, _ := cmd.Flags().GetString("kind")
	kind, err := entity.ParseSessionKind(rawKind)
	if err != nil {
		return nil, fmt.Errorf("invalid --kind %q (use focus or break)", rawKind)
	}

	minutes := defaultFocusMinutes
	if kind == entity.KindBreak {
		minutes = defaultBreakMinutes
	}
	if cmd.Flags().Changed("minutes") {
		minutes, _ = cmd.Flags().GetInt("minutes")
	}

	startedAt := a.now().UTC()
	return &entity.StartSessionRequest{
		TaskID:         &taskID,
		Kind:           &kind,
		PlannedMinutes: &minutes,
		StartedAt:      &startedAt,
	}, nil
}

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("kind", "k", "focus", "session kind: focus or break")
	cmd.Flags().IntP("minutes", "m", defaultFocusMinutes, "planned minutes (default 25 for focus, 5 for break)")
}

func (a *app) sessionStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start TASK_ID",
		Short: "Start a session for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			req, err := a.startRequest(cmd, taskID)
			if err != nil {
				return err
			}

			session, err := a.api.StartSession(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printSession(session, fmt.Sprintf("⏱️  %s session #%d started for task #%d (%d min)",
				session.Kind, session.ID, session.TaskID, session.PlannedMinutes))
		},
	}
	addStartFlags(cmd)
	return cmd
}

func (a *app) sessionCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "complete ID",
		Aliases: []string{"done", "stop"},
		Short:   "Complete a running session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "session")
			if err != nil {
				return err
			}

			req := &entity.CompleteSessionRequest{}
			if cmd.Flags().Changed("actual") {
				actual, _ := cmd.Flags().GetInt("actual")
				req.ActualMinutes = &actual
			}

			session, err := a.api.CompleteSession(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return a.printSession(session, fmt.Sprintf("⏹️  Session #%d completed: %d min", session.ID, session.CountedMinutes()))
		},
	}
	cmd.Flags().Int("actual", 0, "actual minutes (default: computed from start time)")
	return cmd
}

func (a *app) sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "session")
			if err != nil {
				return err
			}
			session, err := a.api.GetSession(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printSessions([]entity.Session{*session})
		},
	}
}

func (a *app) sessionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sessions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			sessions, err := a.api.ListSessions(cmd.Context(), date)
			if err != nil {
				return err
			}
			return a.printSessions(sessions)
		},
	}
	cmd.Flags().String("date", "", "only sessions started on this UTC day (YYYY-MM-DD)")
	return cmd
}
