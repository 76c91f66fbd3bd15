package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	tea "github.com/charmbracelet/bubbletea"
)

var timerStart = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func newSession(kind entity.SessionKind, minutes int) *entity.Session {
	return &entity.Session{ID: 1, TaskID: 3, Kind: kind, PlannedMinutes: minutes, StartedAt: timerStart}
}

func TestTimerCountsDown(t *testing.T) {
	m := NewTimerModel(newSession(entity.KindFocus, 25), "Write", timerStart.Add(5*time.Minute))

	if got := m.Remaining(); got != 20*time.Minute {
		t.Fatalf("Expected 20m remaining, got %v", got)
	}

	next, cmd := m.Update(tickMsg(timerStart.Add(10 * time.Minute)))
	m = next.(TimerModel)
	if m.Remaining() != 15*time.Minute {
		t.Errorf("Expected 15m remaining, got %v", m.Remaining())
	}
	if cmd == nil {
		t.Errorf("Expected next tick to be scheduled")
	}
	if m.Result() != TimerLeftRunning {
		t.Errorf("Expected timer to keep running, got %v", m.Result())
	}
	if !strings.Contains(m.View(), "15:00") {
		t.Errorf("Expected 15:00 in view, got %s", m.View())
	}
}

func TestTimerFinishes(t *testing.T) {
	m := NewTimerModel(newSession(entity.KindBreak, 5), "Rest", timerStart)

	next, cmd := m.Update(tickMsg(timerStart.Add(5*time.Minute + time.Second)))
	m = next.(TimerModel)
	if m.Result() != TimerFinished {
		t.Errorf("Expected TimerFinished, got %v", m.Result())
	}
	if m.Remaining() != 0 {
		t.Errorf("Expected nothing remaining, got %v", m.Remaining())
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Expected tea.QuitMsg")
	}
}

func TestTimerKeys(t *testing.T) {
	tests := []struct {
		key  string
		want TimerResult
	}{
		{key: "s", want: TimerStopped},
		{key: "q", want: TimerLeftRunning},
		{key: "esc", want: TimerLeftRunning},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewTimerModel(newSession(entity.KindFocus, 25), "Write", timerStart)

			var msg tea.KeyMsg
			if tt.key == "esc" {
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			} else {
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
			}

			next, cmd := m.Update(msg)
			if got := next.(TimerModel).Result(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if cmd == nil {
				t.Errorf("Expected quit command")
			}
		})
	}
}

func TestTimerStartedInFuture(t *testing.T) {
	m := NewTimerModel(newSession(entity.KindFocus, 25), "Write", timerStart.Add(-time.Minute))
	if m.Remaining() != 25*time.Minute {
		t.Errorf("Expected full duration remaining, got %v", m.Remaining())
	}
}
