package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultAPIURL = "http://localhost:8080"

// app - общее состояние команд
type app struct {
	v      *viper.Viper
	out    io.Writer
	api    *client.Client
	now    func() time.Time
	output string
}

// NewRootCmd собирает дерево команд pomo
func NewRootCmd(out io.Writer) *cobra.Command {
	return newRootCmd(out, time.Now)
}

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	a := &app{
		v:   viper.New(),
		out: out,
		now: now,
	}

	a.v.SetEnvPrefix("POMO")
	a.v.AutomaticEnv()
	a.v.SetDefault("api_url", defaultAPIURL)
	a.v.SetDefault("output", "table")

	root := &cobra.Command{
		Use:   "pomo",
		Short: "Pomodoro tasks and focus sessions from the terminal",
		Long: `pomo talks to the pomodoro service REST API.
Manage tasks, start and complete focus/break sessions, and review daily summaries.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.output = a.v.GetString("output")
			switch a.output {
			case outputTable, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (use table, json or yaml)", a.output)
			}
			a.api = client.New(a.v.GetString("api_url"))
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().String("api-url", defaultAPIURL, "service base URL (env POMO_API_URL)")
	root.PersistentFlags().StringP("output", "o", "table", "output format: table, json, yaml")
	a.v.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))
	a.v.BindPFlag("output", root.PersistentFlags().Lookup("output"))

	root.AddCommand(
		a.taskCmd(),
		a.sessionCmd(),
		a.summaryCmd(),
		a.timerCmd(),
	)

	return root
}

// Execute запускает pomo с os.Args
func Execute() error {
	return NewRootCmd(os.Stdout).Execute()
}

func parseID(raw, what string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID '%s'", what, raw)
	}
	return id, nil
}
