package entity

// Ограничения полей, общие для валидации API и схемы БД
const (
	TitleMaxLength = 100
	NoteMaxLength  = 1000

	EstimatedPomosMinValue = 1
	EstimatedPomosMaxValue = 100

	PlannedMinutesMinValue = 1
	PlannedMinutesMaxValue = 120

	ActualMinutesMinValue = 0
	ActualMinutesMaxValue = 180
)
