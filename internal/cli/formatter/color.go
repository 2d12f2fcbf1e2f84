package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/scoring"
	"github.com/charmbracelet/lipgloss"
)

// Ember palette: cool greys with warm accents for rising scores.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LevelColor returns the style for a burnout level.
func LevelColor(level domain.BurnoutLevel) lipgloss.Style {
	switch level {
	case domain.BurnoutHigh:
		return StyleRed
	case domain.BurnoutModerate:
		return StyleYellow
	case domain.BurnoutLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// ScoreColor colors a raw 0..1 score with the same thresholds used for
// classification.
func ScoreColor(score float64) lipgloss.Style {
	return LevelColor(scoring.ClassifyLevel(score))
}

// LevelIndicator returns a colored label such as "● MODERATE".
func LevelIndicator(level domain.BurnoutLevel) string {
	if level == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return LevelColor(level).Render("● " + strings.ToUpper(string(level)))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
