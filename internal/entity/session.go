package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type SessionKind int

const (
	KindFocus SessionKind = 0
	KindBreak SessionKind = 1
)

func (k SessionKind) Valid() bool {
	return k == KindFocus || k == KindBreak
}

func (k SessionKind) String() string {
	switch k {
	case KindFocus:
		return "Focus"
	case KindBreak:
		return "Break"
	default:
		return fmt.Sprintf("SessionKind(%d)", int(k))
	}
}

// ParseSessionKind принимает имя ("focus", "Break") или число ("0", "1")
func ParseSessionKind(raw string) (SessionKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "focus", "0":
		return KindFocus, nil
	case "break", "1":
		return KindBreak, nil
	default:
		return 0, fmt.Errorf("unknown session kind %q", raw)
	}
}

const (
	SessionStatusRunning   = "Running"
	SessionStatusCompleted = "Completed"
)

type Session struct {
	ID             int         `json:"id"`
	TaskID         int         `json:"taskId"`
	Kind           SessionKind `json:"kind"`
	PlannedMinutes int         `json:"plannedMinutes"`
	ActualMinutes  *int        `json:"actualMinutes"`
	StartedAt      time.Time   `json:"startedAt"`
	EndedAt        *time.Time  `json:"endedAt"`
}

// Active - сессия еще не завершена
func (s *Session) Active() bool {
	return s.EndedAt == nil
}

func (s *Session) Status() string {
	if s.EndedAt != nil {
		return SessionStatusCompleted
	}
	return SessionStatusRunning
}

// DurationMinutes: ActualMinutes, иначе разница EndedAt-StartedAt, иначе nil
func (s *Session) DurationMinutes() *int {
	if s.ActualMinutes != nil {
		v := *s.ActualMinutes
		return &v
	}
	if s.EndedAt != nil {
		v := WholeMinutes(s.EndedAt.Sub(s.StartedAt))
		return &v
	}
	return nil
}

// CountedMinutes - вклад сессии в дневную сводку (0 для незавершенной без ActualMinutes)
func (s *Session) CountedMinutes() int {
	if d := s.DurationMinutes(); d != nil {
		return *d
	}
	return 0
}

// Complete завершает сессию: EndedAt = end, ActualMinutes считается только если не задан
func (s *Session) Complete(end time.Time) {
	end = end.UTC()
	s.EndedAt = &end
	if s.ActualMinutes == nil {
		m := WholeMinutes(end.Sub(s.StartedAt))
		s.ActualMinutes = &m
	}
}

// WholeMinutes отбрасывает дробную часть, отрицательные значения дают 0
func WholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	return json.Marshal(struct {
		plain
		Status          string `json:"status"`
		DurationMinutes *int   `json:"durationMinutes"`
	}{
		plain:           plain(s),
		Status:          s.Status(),
		DurationMinutes: s.DurationMinutes(),
	})
}

// StartSessionRequest - тело POST /api/sessions
type StartSessionRequest struct {
	TaskID         *int         `json:"taskId"`
	Kind           *SessionKind `json:"kind"`
	PlannedMinutes *int         `json:"plannedMinutes"`
	StartedAt      *time.Time   `json:"startedAt"`
}

func (r *StartSessionRequest) Validate() error {
	var errs ValidationErrors

	if r.TaskID == nil {
		errs.Add("TaskId", "TaskId is required")
	}

	switch {
	case r.Kind == nil:
		errs.Add("Kind", "Kind is required")
	case !r.Kind.Valid():
		errs.Add("Kind", "Kind must be 0 (Focus) or 1 (Break)")
	}

	switch {
	case r.PlannedMinutes == nil:
		errs.Add("PlannedMinutes", "PlannedMinutes is required")
	case *r.PlannedMinutes < PlannedMinutesMinValue || *r.PlannedMinutes > PlannedMinutesMaxValue:
		errs.Add("PlannedMinutes", "PlannedMinutes must be between 1 and 120")
	}

	if r.StartedAt == nil || r.StartedAt.IsZero() {
		errs.Add("StartedAt", "StartedAt is required")
	}

	return errs.OrNil()
}

// CompleteSessionRequest - тело PATCH /api/sessions/{id}/complete, все поля опциональны
type CompleteSessionRequest struct {
	ActualMinutes *int       `json:"actualMinutes"`
	EndedAt       *time.Time `json:"endedAt"`
}

func (r *CompleteSessionRequest) Validate() error {
	var errs ValidationErrors
	if r.ActualMinutes != nil && (*r.ActualMinutes < ActualMinutesMinValue || *r.ActualMinutes > ActualMinutesMaxValue) {
		errs.Add("ActualMinutes", "ActualMinutes must be between 0 and 180")
	}
	return errs.OrNil()
}

// SessionFilter - полуинтервал [From, To) по StartedAt, nil границы не ограничивают
type SessionFilter struct {
	From *time.Time
	To   *time.Time
}
