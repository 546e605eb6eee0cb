package pages

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette lifted from the web frontend's theme.
var (
	colorPrussian = lipgloss.Color("#003249")
	colorGreen    = lipgloss.Color("#007EA7")
	colorOrange   = lipgloss.Color("#FB8500")
	colorRed      = lipgloss.Color("#DC2626")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrussian).
			Padding(1, 3)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrussian)
	labelStyle  = lipgloss.NewStyle().Foreground(colorPrussian)
	amountStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	timerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	noticeStyle = lipgloss.NewStyle().Foreground(colorGreen)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// formatIDR renders a whole-rupiah amount with thousand separators, the way
// the web frontend displayed it.
func formatIDR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return sign + "Rp " + string(out)
}
