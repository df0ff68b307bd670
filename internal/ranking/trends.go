package ranking

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trend labels an average growth rate.
type Trend string

const (
	TrendStrongGrowth   Trend = "strong_growth"   // average above 5%
	TrendModerateGrowth Trend = "moderate_growth" // average above 0%
	TrendDecline        Trend = "decline"
)

// Thresholds in percent.
const (
	strongGrowthPct = 5.0
	sharpDropPct    = -50.0
	recoveryPct     = 10.0
	anomalyZ        = 2.0
	recentWindow    = 3
)

// YearGrowth is the change from the previous year, in percent.
type YearGrowth struct {
	Year    int     `json:"year"`
	Percent float64 `json:"percent"`
}

// Anomaly is a year whose total lies more than two standard deviations
// from the series mean.
type Anomaly struct {
	Year   int     `json:"year"`
	Value  int64   `json:"value"`
	ZScore float64 `json:"z_score"`
	High   bool    `json:"high"`
}

// TrendReport summarizes a yearly series.
//
// Growth statistics need at least two years; with a single year only the
// series, best and worst year are meaningful.
type TrendReport struct {
	Series Series `json:"series"`

	Growth        []YearGrowth `json:"growth"`
	AverageGrowth float64      `json:"average_growth"`
	Volatility    float64      `json:"volatility"`
	Direction     Trend        `json:"direction"`
	RecentTrend   Trend        `json:"recent_trend"`
	TotalGrowth   float64      `json:"total_growth"`

	BestYear  int `json:"best_year"`
	WorstYear int `json:"worst_year"`

	Anomalies []Anomaly `json:"anomalies,omitempty"`

	// SharpDrop is set when any year fell by more than half.
	SharpDrop bool `json:"sharp_drop"`

	// Recovery is set when the latest year grew by more than 10%.
	Recovery bool `json:"recovery"`
}

func (TrendReport) result() {}

// Trends loads the yearly series and analyzes it.
func (e *Engine) Trends(ctx context.Context, cargo bool, airport string) (TrendReport, error) {
	series, err := e.History(ctx, cargo, airport)
	if err != nil {
		return TrendReport{}, err
	}
	return Analyze(series), nil
}

// Analyze computes growth, volatility and anomalies for a series.
// Years following a zero total have no defined growth and are skipped.
func Analyze(s Series) TrendReport {
	r := TrendReport{Series: s, Direction: TrendDecline, RecentTrend: TrendDecline}
	if len(s.Points) == 0 {
		return r
	}

	r.Growth = growth(s.Points)
	pcts := percents(r.Growth)
	if len(pcts) > 0 {
		r.AverageGrowth = stat.Mean(pcts, nil)
		r.Direction = classifyTrend(r.AverageGrowth)
	}
	if len(pcts) > 1 {
		r.Volatility = stat.StdDev(pcts, nil)
	}
	for _, p := range pcts {
		if p < sharpDropPct {
			r.SharpDrop = true
		}
	}
	if len(pcts) >= 2 && pcts[len(pcts)-1] > recoveryPct {
		r.Recovery = true
	}

	start := len(s.Points) - recentWindow
	if start < 0 {
		start = 0
	}
	if recent := percents(growth(s.Points[start:])); len(recent) > 0 {
		r.RecentTrend = classifyTrend(stat.Mean(recent, nil))
	}

	first, last := s.Points[0].Value, s.Points[len(s.Points)-1].Value
	if first != 0 {
		r.TotalGrowth = float64(last-first) * 100 / float64(first)
	}

	best, worst := s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		if p.Value > best.Value {
			best = p
		}
		if p.Value < worst.Value {
			worst = p
		}
	}
	r.BestYear, r.WorstYear = best.Year, worst.Year

	r.Anomalies = anomalies(s.Points)
	return r
}

func growth(points []YearValue) []YearGrowth {
	var out []YearGrowth
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Value
		if prev == 0 {
			continue
		}
		out = append(out, YearGrowth{
			Year:    points[i].Year,
			Percent: float64(points[i].Value-prev) * 100 / float64(prev),
		})
	}
	return out
}

func percents(g []YearGrowth) []float64 {
	out := make([]float64, len(g))
	for i, yg := range g {
		out[i] = yg.Percent
	}
	return out
}

func classifyTrend(avg float64) Trend {
	switch {
	case avg > strongGrowthPct:
		return TrendStrongGrowth
	case avg > 0:
		return TrendModerateGrowth
	default:
		return TrendDecline
	}
}

func anomalies(points []YearValue) []Anomaly {
	if len(points) < 2 {
		return nil
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
	}
	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return nil
	}

	var out []Anomaly
	for i, p := range points {
		z := math.Abs(stat.StdScore(values[i], mean, std))
		if z > anomalyZ {
			out = append(out, Anomaly{Year: p.Year, Value: p.Value, ZScore: z, High: values[i] > mean})
		}
	}
	return out
}
