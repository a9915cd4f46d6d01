package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"terrainsim/core"
)

// LandType is a per-cell categorical classification of the terrain,
// consumed by the renderer's shading and the websocket payload.
type LandType int

const (
	LandWater LandType = iota
	LandShore
	LandPlain
	LandHill
	LandMountain
)

func (lt LandType) String() string {
	switch lt {
	case LandWater:
		return "water"
	case LandShore:
		return "shore"
	case LandPlain:
		return "plain"
	case LandHill:
		return "hill"
	case LandMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// classifyLandTypes bands every cell by its elevation relative to the
// terrain's peak. Cells at the sea-level floor are water.
func classifyLandTypes(terrain *core.Terrain) [][]LandType {
	_, peak := terrain.Elevation.MinMax()

	types := make([][]LandType, terrain.Rows())
	for i := range types {
		types[i] = make([]LandType, terrain.Cols())
		for j := range types[i] {
			types[i][j] = classifyCell(terrain.Elevation[i][j], peak)
		}
	}
	return types
}

func classifyCell(h, peak float64) LandType {
	if h <= core.SeaLevel {
		return LandWater
	}
	if peak <= core.SeaLevel {
		return LandWater
	}
	switch t := h / peak; {
	case t < 0.05:
		return LandShore
	case t < 0.35:
		return LandPlain
	case t < 0.7:
		return LandHill
	default:
		return LandMountain
	}
}

// landColor maps a land type to its render color. Shade darkens the color
// toward the low end of the band for simple elevation shading.
func landColor(lt LandType, shade float64) rl.Color {
	var base rl.Color
	switch lt {
	case LandWater:
		base = rl.NewColor(30, 90, 180, 255)
	case LandShore:
		base = rl.NewColor(210, 190, 130, 255)
	case LandPlain:
		base = rl.NewColor(80, 160, 70, 255)
	case LandHill:
		base = rl.NewColor(130, 110, 70, 255)
	case LandMountain:
		base = rl.NewColor(150, 150, 150, 255)
	default:
		base = rl.White
	}

	if shade < 0.4 {
		shade = 0.4
	}
	if shade > 1 {
		shade = 1
	}
	return rl.NewColor(
		uint8(float64(base.R)*shade),
		uint8(float64(base.G)*shade),
		uint8(float64(base.B)*shade),
		255,
	)
}
