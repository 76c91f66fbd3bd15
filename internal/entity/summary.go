package entity

// DailySummary - агрегаты по одному календарному дню
type DailySummary struct {
	Date              Date `json:"date"`
	FocusMinutes      int  `json:"focusMinutes"`
	BreakMinutes      int  `json:"breakMinutes"`
	TotalSessions     int  `json:"totalSessions"`
	CompletedSessions int  `json:"completedSessions"`
}

type Summary struct {
	From Date           `json:"from"`
	To   Date           `json:"to"`
	Days []DailySummary `json:"days"`
}

// Add учитывает сессию в дневном агрегате
func (d *DailySummary) Add(s *Session) {
	d.TotalSessions++
	if !s.Active() {
		d.CompletedSessions++
	}
	switch s.Kind {
	case KindFocus:
		d.FocusMinutes += s.CountedMinutes()
	case KindBreak:
		d.BreakMinutes += s.CountedMinutes()
	}
}
