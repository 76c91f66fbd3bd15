package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/api"
	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository/gormrepo"
	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/sirupsen/logrus"
)

func newTestClient(t *testing.T, now func() time.Time) *Client {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := gormrepo.Open(filepath.Join(t.TempDir(), "client.db"), log)
	if err != nil {
		t.Fatalf("Expected no error opening store, got %v", err)
	}
	t.Cleanup(func() { store.Close() })

	taskRepo := gormrepo.NewTaskRepository(store.DB())
	sessionRepo := gormrepo.NewSessionRepository(store.DB())

	router := api.NewRouter(api.Services{
		Tasks:    usecase.NewTaskService(taskRepo, nil, log),
		Sessions: usecase.NewSessionService(sessionRepo, taskRepo, nil, log, usecase.WithClock(now)),
		Summary:  usecase.NewSummaryService(sessionRepo),
		Audit:    usecase.NewAuditService(gormrepo.NewAuditRepository(store.DB())),
	}, api.Options{Logger: log})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func intPtr(v int) *int { return &v }

func TestClientTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, time.Now)

	task, err := c.CreateTask(ctx, &entity.CreateTaskRequest{Title: "Write tests", EstimatedPomos: intPtr(2)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := c.UpdateTask(ctx, task.ID, &entity.UpdateTaskRequest{Title: "Write more tests", IsArchived: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Title != "Write more tests" || !updated.IsArchived {
		t.Errorf("Unexpected updated task %+v", updated)
	}

	archived, err := c.ListTasks(ctx, "archived")
	if err != nil || len(archived) != 1 {
		t.Fatalf("Expected one archived task, got %v (%v)", archived, err)
	}

	if err := c.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = c.GetTask(ctx, task.ID)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("Expected 404 APIError, got %v", err)
	}
}

func TestClientValidationError(t *testing.T) {
	c := newTestClient(t, time.Now)

	_, err := c.CreateTask(context.Background(), &entity.CreateTaskRequest{Title: ""})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Title is required" {
		t.Errorf("Unexpected error %+v", apiErr)
	}
	if len(apiErr.Fields["Title"]) != 1 {
		t.Errorf("Expected Title field error, got %v", apiErr.Fields)
	}
}

func TestClientSessionFlow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	c := newTestClient(t, func() time.Time { return start.Add(26 * time.Minute) })

	task, err := c.CreateTask(ctx, &entity.CreateTaskRequest{Title: "Flow"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	kind := entity.KindFocus
	session, err := c.StartSession(ctx, &entity.StartSessionRequest{
		TaskID:         &task.ID,
		Kind:           &kind,
		PlannedMinutes: intPtr(25),
		StartedAt:      &start,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = c.StartSession(ctx, &entity.StartSessionRequest{
		TaskID:         &task.ID,
		Kind:           &kind,
		PlannedMinutes: intPtr(25),
		StartedAt:      &start,
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("Expected 409, got %v", err)
	}

	completed, err := c.CompleteSession(ctx, session.ID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if completed.ActualMinutes == nil || *completed.ActualMinutes != 26 {
		t.Errorf("Expected 26 minutes, got %v", completed.ActualMinutes)
	}

	sessions, err := c.ListSessions(ctx, "2024-03-10")
	if err != nil || len(sessions) != 1 {
		t.Fatalf("Expected one session, got %v (%v)", sessions, err)
	}

	summary, err := c.GetSummary(ctx, "2024-03-09", "2024-03-11")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(summary.Days) != 3 || summary.Days[1].FocusMinutes != 26 {
		t.Errorf("Unexpected summary %+v", summary.Days)
	}

	records, err := c.ListAudit(ctx, "session", session.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no audit rows without a worker, got %d", len(records))
	}
}
