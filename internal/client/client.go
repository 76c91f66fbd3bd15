package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
)

// APIError - ответ сервера с кодом >= 400
type APIError struct {
	Status  int
	Message string
	// Fields заполняется для ответа валидации
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (%d %s)", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

type validationBody struct {
	Title  string              `json:"title"`
	Errors map[string][]string `json:"errors"`
}

// Client - HTTP-клиент REST API сервиса
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var v validationBody
	if json.Unmarshal(body, &v) == nil && len(v.Errors) > 0 {
		apiErr.Fields = v.Errors
		fields := make([]string, 0, len(v.Errors))
		for field := range v.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		msgs := make([]string, 0, len(fields))
		for _, field := range fields {
			msgs = append(msgs, v.Errors[field]...)
		}
		apiErr.Message = strings.Join(msgs, "; ")
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

func idPath(prefix string, id int) string {
	return prefix + "/" + strconv.Itoa(id)
}

// ===== Tasks =====

// ListTasks: status == "" - все задачи
func (c *Client) ListTasks(ctx context.Context, status string) ([]entity.Task, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var tasks []entity.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", query, nil, &tasks)
	return tasks, err
}

func (c *Client) CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) GetTask(ctx context.Context, id int) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, http.MethodGet, idPath("/api/tasks", id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, http.MethodPatch, idPath("/api/tasks", id), nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/tasks", id), nil, nil, nil)
}

// ===== Sessions =====

func (c *Client) StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.Session, error) {
	var session entity.Session
	if err := c.do(ctx, http.MethodPost, "/api/sessions", nil, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) CompleteSession(ctx context.Context, id int, req *entity.CompleteSessionRequest) (*entity.Session, error) {
	if req == nil {
		req = &entity.CompleteSessionRequest{}
	}
	var session entity.Session
	if err := c.do(ctx, http.MethodPatch, idPath("/api/sessions", id)+"/complete", nil, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetSession(ctx context.Context, id int) (*entity.Session, error) {
	var session entity.Session
	if err := c.do(ctx, http.MethodGet, idPath("/api/sessions", id), nil, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions: date == "" - все сессии
func (c *Client) ListSessions(ctx context.Context, date string) ([]entity.Session, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var sessions []entity.Session
	err := c.do(ctx, http.MethodGet, "/api/sessions", query, nil, &sessions)
	return sessions, err
}

// ===== Summary / Audit =====

func (c *Client) GetSummary(ctx context.Context, from, to string) (*entity.Summary, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	var summary entity.Summary
	if err := c.do(ctx, http.MethodGet, "/api/summary", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) ListAudit(ctx context.Context, entityType string, id int) ([]entity.AuditRecord, error) {
	var records []entity.AuditRecord
	err := c.do(ctx, http.MethodGet, idPath("/api/audit/"+url.PathEscape(entityType), id), nil, nil, &records)
	return records, err
}
