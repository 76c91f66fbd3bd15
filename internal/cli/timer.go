package cli

import (
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/tui"
	"github.com/spf13/cobra"
)

// runTimer - точка подмены TUI в тестах
var runTimer = tui.RunTimer

func (a *app) timerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer TASK_ID",
		Short: "Start a session and show an interactive countdown",
		Long: `Start a session and show a countdown for its planned minutes.
When the countdown ends (or you press s) the session is completed.
Press q to leave the session running.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			task, err := a.api.GetTask(cmd.Context(), taskID)
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

			result, err := runTimer(session, task.Title)
			if err != nil {
				return err
			}

			if result == tui.TimerLeftRunning {
				fmt.Fprintf(a.out, "💡 Session #%d is still running for task #%d: %s\n", session.ID, task.ID, task.Title)
				fmt.Fprintf(a.out, "   Use 'pomo session complete %d' to finish it.\n", session.ID)
				return nil
			}

			completed, err := a.api.CompleteSession(cmd.Context(), session.ID, &entity.CompleteSessionRequest{})
			if err != nil {
				return fmt.Errorf("failed to complete session: %w", err)
			}
			fmt.Fprintf(a.out, "⏹️  %s session #%d completed: %d min on \"%s\"\n",
				completed.Kind, completed.ID, completed.CountedMinutes(), task.Title)
			return nil
		},
	}
	addStartFlags(cmd)
	return cmd
}
