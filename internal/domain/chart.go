package domain

import (
	"math"
	"strings"
)

// Slice is one pie chart wedge as the browser renders it.
type Slice struct {
	Label   string  `json:"label"`
	Pounds  float64 `json:"pounds"`  // rounded to 2 decimals for display
	Percent float64 `json:"percent"` // share of total, rounded to 1 decimal
}

// Chart is the chart-ready projection of a totals result.
type Chart struct {
	Title       string  `json:"title"`
	TotalPounds float64 `json:"total_pounds"`
	Slices      []Slice `json:"slices"`
}

// DisplayLabel derives a display label from a category key: underscores
// become spaces and the result is upper-cased ("baked_goods" -> "BAKED GOODS").
func DisplayLabel(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

// BuildChart projects aggregated totals into the shape the pie chart
// consumes. Zero-valued categories are dropped before display; remaining
// slices keep mapping order. Displayed pounds round to two decimals and the
// percent-of-total to one.
func BuildChart(title string, totals []CategoryTotal) Chart {
	var total float64
	for _, t := range totals {
		total += t.Pounds
	}

	slices := make([]Slice, 0, len(totals))
	for _, t := range totals {
		if t.Pounds == 0 {
			continue
		}
		var percent float64
		if total != 0 {
			percent = round1(t.Pounds / total * 100)
		}
		slices = append(slices, Slice{
			Label:   DisplayLabel(t.Key),
			Pounds:  round2(t.Pounds),
			Percent: percent,
		})
	}

	return Chart{
		Title:       title,
		TotalPounds: round2(total),
		Slices:      slices,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
