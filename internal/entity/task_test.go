package entity

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(v string) *string { return &v }

func TestCreateTaskRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTaskRequest
		message string
	}{
		{"minimal", CreateTaskRequest{Title: "A"}, ""},
		{"maximal", CreateTaskRequest{Title: strings.Repeat("a", 100), Note: strPtr(strings.Repeat("n", 1000)), EstimatedPomos: intPtr(100)}, ""},
		{"empty title", CreateTaskRequest{Title: ""}, "Title is required"},
		{"blank title", CreateTaskRequest{Title: "   "}, "Title is required"},
		{"long title", CreateTaskRequest{Title: strings.Repeat("a", 101)}, "Title must be less than 100 characters"},
		{"long note", CreateTaskRequest{Title: "A", Note: strPtr(strings.Repeat("n", 1001))}, "Note must be less than 1000 characters"},
		{"pomos zero", CreateTaskRequest{Title: "A", EstimatedPomos: intPtr(0)}, "EstimatedPomos must be between 1 and 100"},
		{"pomos too many", CreateTaskRequest{Title: "A", EstimatedPomos: intPtr(101)}, "EstimatedPomos must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.message == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %v", err)
			}
			if verrs[0].Message != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, verrs[0].Message)
			}
		})
	}
}

func TestTitleLengthCountsRunes(t *testing.T) {
	req := CreateTaskRequest{Title: strings.Repeat("ж", 100)}
	if err := req.Validate(); err != nil {
		t.Errorf("Expected 100 runes to be valid, got %v", err)
	}
}

func TestUpdateTaskRequestApply(t *testing.T) {
	task := Task{ID: 4, Title: "Old", Note: strPtr("n"), EstimatedPomos: intPtr(2)}
	req := UpdateTaskRequest{Title: "New", IsArchived: true}
	req.Apply(&task)

	if task.ID != 4 || task.Title != "New" || task.Note != nil || task.EstimatedPomos != nil || !task.IsArchived {
		t.Errorf("Unexpected task after apply: %+v", task)
	}
}

func TestParseTaskStatusFilter(t *testing.T) {
	for raw, want := range map[string]TaskStatusFilter{"active": TaskStatusActive, "ARCHIVED": TaskStatusArchived, "Active": TaskStatusActive} {
		got, err := ParseTaskStatusFilter(raw)
		if err != nil || got != want {
			t.Errorf("%q: expected %q, got %q (%v)", raw, want, got, err)
		}
	}
	for _, raw := range []string{"", "invalid", "INVALID"} {
		if _, err := ParseTaskStatusFilter(raw); !errors.Is(err, ErrInvalidTaskStatus) {
			t.Errorf("%q: expected ErrInvalidTaskStatus, got %v", raw, err)
		}
	}
}
