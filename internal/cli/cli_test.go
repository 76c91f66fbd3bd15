package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/api"
	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository/gormrepo"
	"github.com/St1cky1/pomodoro-service/internal/tui"
	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var cliNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T, serverNow func() time.Time) string {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := gormrepo.Open(filepath.Join(t.TempDir(), "cli.db"), log)
	if err != nil {
		t.Fatalf("Expected no error opening store, got %v", err)
	}
	t.Cleanup(func() { store.Close() })

	taskRepo := gormrepo.NewTaskRepository(store.DB())
	sessionRepo := gormrepo.NewSessionRepository(store.DB())

	router := api.NewRouter(api.Services{
		Tasks:    usecase.NewTaskService(taskRepo, nil, log),
		Sessions: usecase.NewSessionService(sessionRepo, taskRepo, nil, log, usecase.WithClock(serverNow)),
		Summary:  usecase.NewSummaryService(sessionRepo),
		Audit:    usecase.NewAuditService(gormrepo.NewAuditRepository(store.DB())),
	}, api.Options{Logger: log})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, func() time.Time { return cliNow })
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTaskCommands(t *testing.T) {
	url := newTestAPI(t, time.Now)

	out, err := runCLI(t, url, "task", "add", "Plan sprint", "--pomos", "3", "--note", "backlog")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "ID: 1") {
		t.Errorf("Unexpected add output %q", out)
	}

	out, err = runCLI(t, url, "task", "edit", "1", "--title", "Plan big sprint")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err = runCLI(t, url, "-o", "json", "task", "show", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var tasks []entity.Task
	if err := json.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("Expected JSON output, got %v: %s", err, out)
	}
	// edit сохраняет поля, которые не указаны во флагах
	if tasks[0].Title != "Plan big sprint" || tasks[0].Note == nil || *tasks[0].Note != "backlog" || *tasks[0].EstimatedPomos != 3 {
		t.Errorf("Unexpected task after edit %+v", tasks[0])
	}

	if _, err := runCLI(t, url, "task", "archive", "1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err = runCLI(t, url, "task", "list", "--status", "archived")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Plan big sprint") || !strings.Contains(out, "yes") {
		t.Errorf("Expected archived task in table, got %q", out)
	}

	out, err = runCLI(t, url, "task", "rm", "1")
	if err != nil || !strings.Contains(out, "deleted") {
		t.Fatalf("Expected delete, got %q (%v)", out, err)
	}

	_, err = runCLI(t, url, "task", "show", "1")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected 404 error, got %v", err)
	}
}

func TestTaskAddValidationError(t *testing.T) {
	url := newTestAPI(t, time.Now)

	_, err := runCLI(t, url, "task", "add", "x", "--pomos", "500")
	if err == nil || !strings.Contains(err.Error(), "EstimatedPomos must be between 1 and 100") {
		t.Errorf("Expected validation message, got %v", err)
	}
}

func TestSessionCommands(t *testing.T) {
	url := newTestAPI(t, func() time.Time { return cliNow.Add(7 * time.Minute) })

	if _, err := runCLI(t, url, "task", "add", "Focus"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err := runCLI(t, url, "session", "start", "1", "--kind", "break")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Break session #1") || !strings.Contains(out, "(5 min)") {
		t.Errorf("Unexpected start output %q", out)
	}

	out, err = runCLI(t, url, "session", "complete", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "7 min") {
		t.Errorf("Expected 7 computed minutes, got %q", out)
	}

	_, err = runCLI(t, url, "session", "complete", "1")
	if err == nil || !strings.Contains(err.Error(), "already completed") {
		t.Errorf("Expected conflict, got %v", err)
	}

	out, err = runCLI(t, url, "-o", "yaml", "session", "list", "--date", "2024-05-20")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var sessions []map[string]any
	if err := yaml.Unmarshal([]byte(out), &sessions); err != nil {
		t.Fatalf("Expected YAML output, got %v: %s", err, out)
	}
	if len(sessions) != 1 || sessions[0]["status"] != entity.SessionStatusCompleted || sessions[0]["kind"] != 1 {
		t.Errorf("Unexpected sessions %+v", sessions)
	}

	if _, err := runCLI(t, url, "session", "start", "1", "--kind", "nap"); err == nil {
		t.Errorf("Expected error for unknown kind")
	}
}

func TestSummaryDefaultsToLastWeek(t *testing.T) {
	url := newTestAPI(t, time.Now)

	out, err := runCLI(t, url, "-o", "json", "summary")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var summary struct {
		From string `json:"from"`
		To   string `json:"to"`
		Days []any  `json:"days"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("Expected JSON output, got %v", err)
	}
	if summary.From != "2024-05-14" || summary.To != "2024-05-20" || len(summary.Days) != 7 {
		t.Errorf("Unexpected summary window %s..%s (%d days)", summary.From, summary.To, len(summary.Days))
	}

	_, err = runCLI(t, url, "summary", "--from", "2024-05-20", "--to", "2024-05-01")
	if err == nil || !strings.Contains(err.Error(), "'to' must be greater than or equal to 'from'.") {
		t.Errorf("Expected ordering error, got %v", err)
	}
}

func TestTimerCompletesSession(t *testing.T) {
	url := newTestAPI(t, func() time.Time { return cliNow.Add(25 * time.Minute) })

	original := runTimer
	t.Cleanup(func() { runTimer = original })

	var gotTitle string
	runTimer = func(session *entity.Session, title string) (tui.TimerResult, error) {
		gotTitle = title
		return tui.TimerFinished, nil
	}

	if _, err := runCLI(t, url, "task", "add", "Timer task"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err := runCLI(t, url, "timer", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotTitle != "Timer task" {
		t.Errorf("Expected task title passed to timer, got %q", gotTitle)
	}
	if !strings.Contains(out, "completed: 25 min") {
		t.Errorf("Unexpected timer output %q", out)
	}

	runTimer = func(session *entity.Session, title string) (tui.TimerResult, error) {
		return tui.TimerLeftRunning, nil
	}
	out, err = runCLI(t, url, "timer", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "still running") {
		t.Errorf("Expected running notice, got %q", out)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:1", "-o", "xml", "task", "list")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("Expected output format error, got %v", err)
	}
}
