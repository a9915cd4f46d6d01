package main

import (
	"fmt"
	"math"

	"terrainsim/config"
	"terrainsim/core"
)

// RadarSite is an observer placed on the terrain. Height is the antenna
// height above the local ground elevation.
type RadarSite struct {
	X, Y   float64
	Height float64
}

// Target is an observed point on the terrain, with its own height above
// ground.
type Target struct {
	ID     string
	X, Y   float64
	Height float64
}

// VisibilityReport is the per-target summary produced from an occlusion
// sequence: the percentage of clear observation samples and a categorical
// label ("not" / "partially" / "fully" visible).
type VisibilityReport struct {
	TargetID string  `json:"targetId"`
	Percent  float64 `json:"percent"`
	Label    string  `json:"label"`
}

// sampleOcclusion walks the line of sight from the radar antenna to the
// target and returns one boolean per observation sample, true where the
// terrain rises above the sight line. Geometric occlusion only, no
// propagation effects.
func sampleOcclusion(terrain *core.Terrain, site RadarSite, target Target, samples int) []bool {
	sampler := terrain.Interpolator()

	siteZ := sampler.At(site.X, site.Y) + site.Height
	targetZ := sampler.At(target.X, target.Y) + target.Height

	occluded := make([]bool, samples)
	for s := 0; s < samples; s++ {
		// Sample positions are strictly between the endpoints so the
		// antenna and the target themselves never occlude the ray.
		t := (float64(s) + 1) / (float64(samples) + 1)
		x := site.X + (target.X-site.X)*t
		y := site.Y + (target.Y-site.Y)*t
		rayZ := siteZ + (targetZ-siteZ)*t
		occluded[s] = sampler.At(x, y) > rayZ
	}
	return occluded
}

// visibilityReport reduces a boolean occlusion sequence (one entry per
// observation sample) to a percentage and label. An empty sequence counts
// as not visible.
func visibilityReport(targetID string, occluded []bool) VisibilityReport {
	if len(occluded) == 0 {
		return VisibilityReport{TargetID: targetID, Percent: 0, Label: "not"}
	}

	visible := 0
	for _, blocked := range occluded {
		if !blocked {
			visible++
		}
	}
	percent := 100 * float64(visible) / float64(len(occluded))

	label := "partially"
	if visible == 0 {
		label = "not"
	} else if visible == len(occluded) {
		label = "fully"
	}
	return VisibilityReport{TargetID: targetID, Percent: percent, Label: label}
}

// surveyTargets runs the occlusion sampling for every target and collects
// the reports.
func surveyTargets(terrain *core.Terrain, site RadarSite, targets []Target) []VisibilityReport {
	samples := config.GetSettings().Radar.ObservationSamples

	reports := make([]VisibilityReport, len(targets))
	for i, target := range targets {
		occluded := sampleOcclusion(terrain, site, target, samples)
		reports[i] = visibilityReport(target.ID, occluded)
	}
	return reports
}

// defaultTargets spreads targets on a ring around the radar site, clipped
// to the terrain's bounding box.
func defaultTargets(terrain *core.Terrain, site RadarSite, count int, height float64) []Target {
	box := terrain.Box()
	radius := math.Min(box.SpanX(), box.SpanY()) * 0.4

	targets := make([]Target, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		x := site.X + radius*math.Cos(angle)
		y := site.Y + radius*math.Sin(angle)
		if !box.Contains(x, y) {
			x = math.Min(math.Max(x, box.MinX), box.MaxX)
			y = math.Min(math.Max(y, box.MinY), box.MaxY)
		}
		targets = append(targets, Target{
			ID:     fmt.Sprintf("target-%d", i+1),
			X:      x,
			Y:      y,
			Height: height,
		})
	}
	return targets
}

func printVisibilityTable(site RadarSite, targets []Target, reports []VisibilityReport) {
	fmt.Printf("Radar site at (%.1f, %.1f), antenna height %.1f\n", site.X, site.Y, site.Height)
	fmt.Println("Target      Position            Visible   Classification")
	for i, report := range reports {
		fmt.Printf("%-10s  (%7.1f, %7.1f)  %5.1f%%   %s visible\n",
			report.TargetID, targets[i].X, targets[i].Y, report.Percent, report.Label)
	}
}
