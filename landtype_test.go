package main

import (
	"testing"
)

// TestClassifyCell checks the elevation banding.
func TestClassifyCell(t *testing.T) {
	const peak = 100.0
	tests := []struct {
		name string
		h    float64
		want LandType
	}{
		{"sea level is water", 0, LandWater},
		{"just above sea level is shore", 2, LandShore},
		{"low ground is plain", 20, LandPlain},
		{"mid ground is hill", 50, LandHill},
		{"high ground is mountain", 90, LandMountain},
		{"the peak itself is mountain", peak, LandMountain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyCell(tt.h, peak); got != tt.want {
				t.Errorf("classifyCell(%g, %g) = %v, want %v", tt.h, peak, got, tt.want)
			}
		})
	}
}

// TestClassifyLandTypesFlat checks that a surface entirely at sea level
// classifies as water everywhere, shape intact.
func TestClassifyLandTypesFlat(t *testing.T) {
	terrain := flatTerrain(t, 0, 3)

	types := classifyLandTypes(terrain)
	if len(types) != terrain.Rows() {
		t.Fatalf("got %d rows, want %d", len(types), terrain.Rows())
	}
	for i := range types {
		if len(types[i]) != terrain.Cols() {
			t.Fatalf("row %d has %d cols, want %d", i, len(types[i]), terrain.Cols())
		}
		for j, lt := range types[i] {
			if lt != LandWater {
				t.Errorf("[%d][%d] = %v, want water", i, j, lt)
			}
		}
	}
}

func TestLandTypeString(t *testing.T) {
	if LandMountain.String() != "mountain" || LandWater.String() != "water" {
		t.Error("land type names do not match their categories")
	}
	if LandType(99).String() != "unknown" {
		t.Error("out-of-range land type should be unknown")
	}
}
