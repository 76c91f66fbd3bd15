package tui

// Цвета терминального клиента
const (
	ColorBorder = "#3A3F55"

	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorHelpText      = "240"

	ColorFocus      = "#EF4444" // томат
	ColorFocusLight = "#F59E0B"
	ColorBreak      = "#22C55E"
	ColorBreakLight = "#A3E635"
	ColorAccent     = "#7C3AED"
)

// KindColors - основной и светлый цвет для типа сессии
func KindColors(isBreak bool) (string, string) {
	if isBreak {
		return ColorBreak, ColorBreakLight
	}
	return ColorFocus, ColorFocusLight
}
