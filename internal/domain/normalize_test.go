package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},
		{"NA sentinel", "NA", 0},
		{"lowercase na", "na", 0},
		{"mixed case Na", "Na", 0},
		{"integer", "12", 12},
		{"decimal", "12.5", 12.5},
		{"padded decimal", " 12.5 ", 12.5},
		{"negative", "-3.25", -3.25},
		{"garbage", "abc", 0},
		{"trailing garbage", "12lbs", 0},
		{"literal NaN", "NaN", 0},
		{"literal Inf", "+Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToNumber(tt.raw))
		})
	}
}

func TestNormalizeCounty(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"lowercase padded", " elk ", "ELK"},
		{"already normalized", "MAR", "MAR"},
		{"mixed case", "Sj", "SJ"},
		{"empty", "", ""},
		{"whitespace only", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCounty(tt.raw))
		})
	}
}
