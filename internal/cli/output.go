package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccent)).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorPrimaryText)).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
)

// printStructured пишет v как JSON или YAML; ключи YAML совпадают с JSON API
func (a *app) printStructured(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if a.output == outputJSON {
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func (a *app) renderTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorBorder))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(a.out, t.Render())
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func shortTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func (a *app) printTask(task *entity.Task, message string) error {
	if a.output != outputTable {
		return a.printStructured(task)
	}
	fmt.Fprintln(a.out, message)
	return nil
}

func (a *app) printTasks(tasks []entity.Task) error {
	if a.output != outputTable {
		return a.printStructured(tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No tasks found. Use 'pomo task add \"title\"' to create one."))
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		archived := ""
		if task.IsArchived {
			archived = "yes"
		}
		note := ""
		if task.Note != nil {
			note = *task.Note
			if r := []rune(note); len(r) > 30 {
				note = string(r[:27]) + "..."
			}
		}
		created := task.CreatedAt
		rows = append(rows, []string{
			strconv.Itoa(task.ID),
			task.Title,
			note,
			optInt(task.EstimatedPomos),
			archived,
			shortTime(&created),
		})
	}
	a.renderTable([]string{"ID", "TITLE", "NOTE", "POMOS", "ARCHIVED", "CREATED"}, rows)
	return nil
}

func (a *app) printSession(session *entity.Session, message string) error {
	if a.output != outputTable {
		return a.printStructured(session)
	}
	fmt.Fprintln(a.out, message)
	return nil
}

func (a *app) printSessions(sessions []entity.Session) error {
	if a.output != outputTable {
		return a.printStructured(sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No sessions found."))
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		started := s.StartedAt
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			strconv.Itoa(s.TaskID),
			s.Kind.String(),
			strconv.Itoa(s.PlannedMinutes),
			optInt(s.DurationMinutes()),
			s.Status(),
			shortTime(&started),
			shortTime(s.EndedAt),
		})
	}
	a.renderTable([]string{"ID", "TASK", "KIND", "PLANNED", "MINUTES", "STATUS", "STARTED", "ENDED"}, rows)
	return nil
}

func (a *app) printSummary(summary *entity.Summary) error {
	if a.output != outputTable {
		return a.printStructured(summary)
	}

	var focus, breaks, total, completed int
	rows := make([][]string, 0, len(summary.Days)+1)
	for _, d := range summary.Days {
		focus += d.FocusMinutes
		breaks += d.BreakMinutes
		total += d.TotalSessions
		completed += d.CompletedSessions
		rows = append(rows, []string{
			d.Date.String(),
			strconv.Itoa(d.FocusMinutes),
			strconv.Itoa(d.BreakMinutes),
			strconv.Itoa(d.TotalSessions),
			strconv.Itoa(d.CompletedSessions),
		})
	}
	rows = append(rows, []string{
		"TOTAL",
		strconv.Itoa(focus),
		strconv.Itoa(breaks),
		strconv.Itoa(total),
		strconv.Itoa(completed),
	})

	a.renderTable([]string{"DATE", "FOCUS MIN", "BREAK MIN", "SESSIONS", "COMPLETED"}, rows)
	return nil
}
