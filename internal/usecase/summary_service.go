package usecase

import (
	"context"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository"
)

type SummaryService struct {
	sessionRepo repository.ISessionRepository
}

func NewSummaryService(sessionRepo repository.ISessionRepository) *SummaryService {
	return &SummaryService{
		sessionRepo: sessionRepo,
	}
}

// GetSummary возвращает сводку по каждому дню [from, to] включительно, дни без сессий - нули
func (s *SummaryService) GetSummary(ctx context.Context, from, to string) (*entity.Summary, error) {
	fromDate, err := entity.ParseDate(from)
	if err != nil {
		return nil, entity.ErrInvalidSummaryDate
	}
	toDate, err := entity.ParseDate(to)
	if err != nil {
		return nil, entity.ErrInvalidSummaryDate
	}
	if toDate.Before(fromDate) {
		return nil, entity.ErrInvalidDateRange
	}

	start, end := fromDate.Start(), toDate.End()
	sessions, err := s.sessionRepo.List(ctx, entity.SessionFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	return BuildSummary(fromDate, toDate, sessions), nil
}

// BuildSummary раскладывает сессии по дням начала (UTC); сессии вне диапазона игнорируются
func BuildSummary(from, to entity.Date, sessions []entity.Session) *entity.Summary {
	days := make([]entity.DailySummary, from.DaysUntil(to)+1)
	for i := range days {
		days[i].Date = from.AddDays(i)
	}

	for i := range sessions {
		day := entity.DateOf(sessions[i].StartedAt)
		if day.Before(from) || to.Before(day) {
			continue
		}
		days[from.DaysUntil(day)].Add(&sessions[i])
	}

	return &entity.Summary{
		From: from,
		To:   to,
		Days: days,
	}
}
