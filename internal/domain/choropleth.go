package domain

import (
	"math"

	"github.com/paulmach/orb/geojson"
)

// ColorStop is one bucket of a choropleth ramp: values strictly below
// UpperBound take this stop's color and legend label.
type ColorStop struct {
	UpperBound float64 `json:"upper_bound"`
	Color      string  `json:"color"`
	Label      string  `json:"label"`
}

// ColorRamp is an ordered threshold table evaluated by linear scan. The last
// stop is the catch-all for values at or above every earlier bound.
type ColorRamp []ColorStop

// Pick returns the stop covering v. An empty ramp yields the zero stop.
func (r ColorRamp) Pick(v float64) ColorStop {
	if len(r) == 0 {
		return ColorStop{}
	}
	for _, stop := range r[:len(r)-1] {
		if v < stop.UpperBound {
			return stop
		}
	}
	return r[len(r)-1]
}

// DefaultPoundsRamp shades county polygons by total pounds rescued.
var DefaultPoundsRamp = ColorRamp{
	{UpperBound: 1000, Color: "#fee5d9", Label: "under 1,000 lbs"},
	{UpperBound: 5000, Color: "#fcae91", Label: "1,000 to 5,000 lbs"},
	{UpperBound: 20000, Color: "#fb6a4a", Label: "5,000 to 20,000 lbs"},
	{UpperBound: 50000, Color: "#de2d26", Label: "20,000 to 50,000 lbs"},
	{UpperBound: math.Inf(1), Color: "#a50f15", Label: "50,000 lbs and up"},
}

// StyleLayer writes choropleth styling into each feature of a GeoJSON layer:
// the ramp is applied to the numeric property named by valueProperty and the
// chosen stop's color and label land in the "fill" and "legend" properties.
// Features missing the property shade as zero.
func StyleLayer(fc *geojson.FeatureCollection, valueProperty string, ramp ColorRamp) {
	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		stop := ramp.Pick(propertyNumber(f.Properties, valueProperty))
		f.Properties["fill"] = stop.Color
		f.Properties["legend"] = stop.Label
	}
}

// propertyNumber reads a feature property as a number with the same lenient
// semantics as ToNumber. GeoJSON numbers decode as float64; string values go
// through ToNumber so "NA" and blanks shade as zero.
func propertyNumber(props geojson.Properties, name string) float64 {
	switch v := props[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		return ToNumber(v)
	default:
		return 0
	}
}
