package domain

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRamp() ColorRamp {
	return ColorRamp{
		{UpperBound: 10, Color: "low", Label: "under 10"},
		{UpperBound: 100, Color: "mid", Label: "10 to 100"},
		{UpperBound: math.Inf(1), Color: "high", Label: "100 and up"},
	}
}

func TestColorRampPick(t *testing.T) {
	ramp := testRamp()

	tests := []struct {
		name  string
		value float64
		color string
	}{
		{"below first bound", 0, "low"},
		{"negative", -5, "low"},
		{"at first bound goes to next bucket", 10, "mid"},
		{"inside middle bucket", 99.9, "mid"},
		{"at last bound", 100, "high"},
		{"far above", 1e9, "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.color, ramp.Pick(tt.value).Color)
		})
	}
}

func TestColorRampPick_EmptyRamp(t *testing.T) {
	var ramp ColorRamp
	assert.Equal(t, ColorStop{}, ramp.Pick(42))
}

func TestDefaultPoundsRamp_CoversAllValues(t *testing.T) {
	// The catch-all stop must have an infinite bound so no value falls off
	// the end of the table.
	last := DefaultPoundsRamp[len(DefaultPoundsRamp)-1]
	assert.True(t, math.IsInf(last.UpperBound, 1))

	for i := 1; i < len(DefaultPoundsRamp); i++ {
		assert.Greater(t, DefaultPoundsRamp[i].UpperBound, DefaultPoundsRamp[i-1].UpperBound,
			"bounds must be strictly increasing")
	}
}

func TestStyleLayer(t *testing.T) {
	feature := func(props geojson.Properties) *geojson.Feature {
		f := geojson.NewFeature(orb.Point{-120.5, 38.2})
		f.Properties = props
		return f
	}

	t.Run("injects fill and legend per feature", func(t *testing.T) {
		fc := geojson.NewFeatureCollection()
		fc.Append(feature(geojson.Properties{"name": "Elk", "total_lbs": 5.0}))
		fc.Append(feature(geojson.Properties{"name": "Marin", "total_lbs": 250.0}))

		StyleLayer(fc, "total_lbs", testRamp())

		require.Len(t, fc.Features, 2)
		assert.Equal(t, "low", fc.Features[0].Properties["fill"])
		assert.Equal(t, "under 10", fc.Features[0].Properties["legend"])
		assert.Equal(t, "high", fc.Features[1].Properties["fill"])
		assert.Equal(t, "100 and up", fc.Features[1].Properties["legend"])
	})

	t.Run("string property values coerce leniently", func(t *testing.T) {
		fc := geojson.NewFeatureCollection()
		fc.Append(feature(geojson.Properties{"total_lbs": " 42 "}))
		fc.Append(feature(geojson.Properties{"total_lbs": "NA"}))

		StyleLayer(fc, "total_lbs", testRamp())

		assert.Equal(t, "mid", fc.Features[0].Properties["fill"])
		assert.Equal(t, "low", fc.Features[1].Properties["fill"])
	})

	t.Run("missing property shades as zero", func(t *testing.T) {
		fc := geojson.NewFeatureCollection()
		fc.Append(feature(geojson.Properties{"name": "Elk"}))
		fc.Append(feature(nil))

		StyleLayer(fc, "total_lbs", testRamp())

		assert.Equal(t, "low", fc.Features[0].Properties["fill"])
		assert.Equal(t, "low", fc.Features[1].Properties["fill"])
	})
}
