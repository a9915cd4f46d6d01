package main

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"terrainsim/core"
)

// viewScale is the world-unit width the terrain is normalized to for
// rendering, independent of the bounding box units.
const viewScale = 20.0

// runViewer opens a raylib window and draws the synthesized terrain as a
// shaded surface, with the radar site, targets and sight lines overlaid.
func runViewer(terrain *core.Terrain, types [][]LandType, site RadarSite, targets []Target, reports []VisibilityReport) {
	rl.InitWindow(1280, 720, "Terrain Synthesizer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera3D{
		Position:   rl.NewVector3(viewScale*0.9, viewScale*0.7, viewScale*0.9),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	project := newProjector(terrain)
	sampler := terrain.Interpolator()

	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&camera, rl.CameraOrbital)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 28, 255))

		rl.BeginMode3D(camera)
		drawSurface(terrain, types, project)
		drawRadarOverlay(sampler, site, targets, reports, project)
		rl.EndMode3D()

		rl.DrawText(fmt.Sprintf("%dx%d grid", terrain.Rows(), terrain.Cols()), 10, 10, 20, rl.RayWhite)
		for i, report := range reports {
			line := fmt.Sprintf("%s: %.0f%% %s visible", report.TargetID, report.Percent, report.Label)
			rl.DrawText(line, 10, int32(40+20*i), 16, rl.LightGray)
		}
		rl.DrawFPS(1200, 10)
		rl.EndDrawing()
	}
}

// projector maps terrain coordinates into the normalized render space,
// centered on the origin with elevation along the render Y axis.
type projector struct {
	centerX, centerY float64
	scale            float64
	heightScale      float64
}

func newProjector(terrain *core.Terrain) projector {
	box := terrain.Box()
	span := math.Max(box.SpanX(), box.SpanY())

	// Exaggerate relief relative to the horizontal span so low-amplitude
	// terrain is still readable.
	_, peak := terrain.Elevation.MinMax()
	heightScale := 1.0
	if peak > 0 {
		heightScale = (viewScale * 0.25) / peak * (span / viewScale)
	}

	return projector{
		centerX:     (box.MinX + box.MaxX) / 2,
		centerY:     (box.MinY + box.MaxY) / 2,
		scale:       viewScale / span,
		heightScale: heightScale,
	}
}

func (p projector) point(x, y, h float64) rl.Vector3 {
	return rl.NewVector3(
		float32((x-p.centerX)*p.scale),
		float32(h*p.heightScale*p.scale),
		float32((y-p.centerY)*p.scale),
	)
}

func drawSurface(terrain *core.Terrain, types [][]LandType, project projector) {
	_, peak := terrain.Elevation.MinMax()
	shadeFor := func(h float64) float64 {
		if peak <= 0 {
			return 1
		}
		return 0.55 + 0.45*h/peak
	}

	for i := 0; i < terrain.Rows()-1; i++ {
		for j := 0; j < terrain.Cols()-1; j++ {
			a := project.point(terrain.X[i][j], terrain.Y[i][j], terrain.Elevation[i][j])
			b := project.point(terrain.X[i][j+1], terrain.Y[i][j+1], terrain.Elevation[i][j+1])
			c := project.point(terrain.X[i+1][j], terrain.Y[i+1][j], terrain.Elevation[i+1][j])
			d := project.point(terrain.X[i+1][j+1], terrain.Y[i+1][j+1], terrain.Elevation[i+1][j+1])

			color := landColor(types[i][j], shadeFor(terrain.Elevation[i][j]))

			// Both windings so the surface is visible from below too.
			rl.DrawTriangle3D(a, c, b, color)
			rl.DrawTriangle3D(a, b, c, color)
			rl.DrawTriangle3D(b, c, d, color)
			rl.DrawTriangle3D(b, d, c, color)
		}
	}
}

func drawRadarOverlay(sampler *core.BilinearGrid, site RadarSite, targets []Target, reports []VisibilityReport, project projector) {
	siteZ := sampler.At(site.X, site.Y) + site.Height
	sitePos := project.point(site.X, site.Y, siteZ)
	rl.DrawSphere(sitePos, 0.3, rl.Red)
	rl.DrawLine3D(project.point(site.X, site.Y, sampler.At(site.X, site.Y)), sitePos, rl.Red)

	for i, target := range targets {
		targetZ := sampler.At(target.X, target.Y) + target.Height
		targetPos := project.point(target.X, target.Y, targetZ)

		lineColor := rl.Yellow
		if i < len(reports) {
			switch reports[i].Label {
			case "fully":
				lineColor = rl.Green
			case "not":
				lineColor = rl.Maroon
			}
		}
		rl.DrawSphere(targetPos, 0.15, lineColor)
		rl.DrawLine3D(sitePos, targetPos, lineColor)
	}
}
