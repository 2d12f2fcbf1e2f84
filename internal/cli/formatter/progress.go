package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScoreBar renders a bar like [████░░░░] 0.45 colored by burnout
// level, so a full bar reads as red.
func RenderScoreBar(score float64, width int) string {
	score = clamp01(score)
	return fmt.Sprintf("[%s] %s", ScoreColor(score).Render(bar(score, width)), FormatScore(score))
}

// RenderCompactBar renders a bar without brackets or a label.
func RenderCompactBar(pct float64, width int, dim bool) string {
	b := bar(clamp01(pct), width)
	if dim {
		return StyleDim.Render(b)
	}
	return StyleBlue.Render(b)
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
