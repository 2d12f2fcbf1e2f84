package scoring

import (
	"cmp"
	"iter"
	"slices"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
)

// DirectionThreshold is the smallest change in overall score that counts as
// movement.
const DirectionThreshold = 0.05

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Point is one overall score in a trend.
type Point struct {
	At    time.Time `json:"at"`
	Score float64   `json:"score"`
}

// Trend is a sequence of overall scores, oldest first.
type Trend struct {
	points []Point
}

// NewTrend orders scores by calculation time, breaking ties by id.
func NewTrend(scores []*domain.BurnoutScore) Trend {
	sorted := slices.Clone(scores)
	sorted = slices.DeleteFunc(sorted, func(s *domain.BurnoutScore) bool { return s == nil })
	slices.SortStableFunc(sorted, func(a, b *domain.BurnoutScore) int {
		if c := a.CalculatedAt.Compare(b.CalculatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	points := make([]Point, len(sorted))
	for i, s := range sorted {
		points[i] = Point{At: s.CalculatedAt, Score: s.OverallScore}
	}
	return Trend{points: points}
}

// Len is the number of points.
func (t Trend) Len() int { return len(t.points) }

// Points returns a copy of the ordered points.
func (t Trend) Points() []Point { return slices.Clone(t.points) }

// Values returns the ordered overall scores.
func (t Trend) Values() []float64 {
	return slices.Collect(t.All())
}

// All yields the overall scores in order. It can be ranged over repeatedly.
func (t Trend) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, p := range t.points {
			if !yield(p.Score) {
				return
			}
		}
	}
}

// Last returns the trailing n points.
func (t Trend) Last(n int) Trend {
	if n < 0 {
		n = 0
	}
	if n >= len(t.points) {
		return t
	}
	return Trend{points: t.points[len(t.points)-n:]}
}

// Movement summarizes where a trend is heading.
type Movement struct {
	Direction     Direction `json:"direction"`
	Delta         float64   `json:"delta"`
	PercentChange float64   `json:"percent_change"`
}

// Movement compares the latest score with the mean of the earlier ones.
func (t Trend) Movement() Movement {
	if len(t.points) < 2 {
		return Movement{Direction: DirectionStable}
	}

	earlier := t.points[:len(t.points)-1]
	var sum float64
	for _, p := range earlier {
		sum += p.Score
	}
	baseline := sum / float64(len(earlier))
	delta := t.points[len(t.points)-1].Score - baseline

	m := Movement{Direction: DirectionStable, Delta: delta}
	switch {
	case delta > DirectionThreshold:
		m.Direction = DirectionUp
	case delta < -DirectionThreshold:
		m.Direction = DirectionDown
	}
	if baseline != 0 {
		m.PercentChange = delta / baseline * 100
	}
	return m
}
