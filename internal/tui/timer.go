package tui

import (
	"fmt"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TimerResult - чем закончился таймер
type TimerResult int

const (
	// TimerLeftRunning - пользователь вышел, сессия продолжается
	TimerLeftRunning TimerResult = iota
	// TimerFinished - отсчет закончился, сессию нужно завершить
	TimerFinished
	// TimerStopped - пользователь остановил сессию досрочно
	TimerStopped
)

type tickMsg time.Time

// TimerModel - обратный отсчет по PlannedMinutes сессии
type TimerModel struct {
	session *entity.Session
	title   string
	planned time.Duration
	elapsed time.Duration

	progress progress.Model
	width    int
	result   TimerResult
	done     bool
}

func NewTimerModel(session *entity.Session, taskTitle string, now time.Time) TimerModel {
	primary, light := KindColors(session.Kind == entity.KindBreak)
	bar := progress.New(
		progress.WithGradient(primary, light),
		progress.WithoutPercentage(),
	)

	m := TimerModel{
		session:  session,
		title:    taskTitle,
		planned:  time.Duration(session.PlannedMinutes) * time.Minute,
		progress: bar,
		result:   TimerLeftRunning,
	}
	m.elapsed = m.clampElapsed(now.Sub(session.StartedAt))
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m TimerModel) Init() tea.Cmd {
	return tick()
}

func (m TimerModel) clampElapsed(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > m.planned {
		return m.planned
	}
	return d
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = m.clampElapsed(time.Time(msg).Sub(m.session.StartedAt))
		if m.elapsed >= m.planned {
			m.result = TimerFinished
			m.done = true
			return m, tea.Quit
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(msg.Width-8, 60))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.result = TimerStopped
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.result = TimerLeftRunning
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Remaining - сколько осталось до конца отсчета
func (m TimerModel) Remaining() time.Duration {
	return m.planned - m.elapsed
}

func (m TimerModel) Result() TimerResult {
	return m.result
}

func (m TimerModel) percent() float64 {
	if m.planned <= 0 {
		return 1
	}
	return float64(m.elapsed) / float64(m.planned)
}

func (m TimerModel) View() string {
	primary, _ := KindColors(m.session.Kind == entity.KindBreak)

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(primary)).
		Bold(true).
		Render(fmt.Sprintf("🍅 %s · #%d %s", m.session.Kind, m.session.TaskID, m.title))

	remaining := m.Remaining().Round(time.Second)
	clock := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(fmt.Sprintf("%02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60))

	planned := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf("of %d min", m.session.PlannedMinutes))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("s complete now · q/esc leave running")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 3)

	return box.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		clock+"  "+planned,
		m.progress.ViewAs(m.percent()),
		"",
		help,
	)) + "\n"
}

// RunTimer показывает отсчет до завершения или выхода пользователя
func RunTimer(session *entity.Session, taskTitle string) (TimerResult, error) {
	model := NewTimerModel(session, taskTitle, time.Now())

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return TimerLeftRunning, err
	}

	if m, ok := finalModel.(TimerModel); ok {
		return m.Result(), nil
	}
	return TimerLeftRunning, nil
}
