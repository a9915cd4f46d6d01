package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type Settings struct {
	Terrain TerrainSettings `json:"terrain"`
	Server  ServerSettings  `json:"server"`
	Radar   RadarSettings   `json:"radar"`
}

type TerrainSettings struct {
	Roughness        float64 `json:"roughness"`
	InitialHeight    float64 `json:"initialHeight"`
	InitialAmplitude float64 `json:"initialAmplitude"`
	Iterations       int     `json:"iterations"`
}

type ServerSettings struct {
	Port int `json:"port"`
}

type RadarSettings struct {
	ObservationSamples int     `json:"observationSamples"`
	AntennaHeight      float64 `json:"antennaHeight"`
	TargetHeight       float64 `json:"targetHeight"`
	TargetCount        int     `json:"targetCount"`
}

var (
	globalSettings Settings
	loadOnce       sync.Once
)

// GetSettings returns the loaded settings, reading settings.json on first
// use and falling back to defaults when the file is absent.
func GetSettings() Settings {
	loadOnce.Do(func() {
		if err := loadSettings(); err != nil {
			fmt.Printf("Settings error: %v - using defaults\n", err)
		}
	})
	return globalSettings
}

func loadSettings() error {
	// Set defaults
	globalSettings = Settings{
		Terrain: TerrainSettings{
			Roughness:        2.0,
			InitialHeight:    0.0,
			InitialAmplitude: 100.0,
			Iterations:       6,
		},
		Server: ServerSettings{
			Port: 8080,
		},
		Radar: RadarSettings{
			ObservationSamples: 64,
			AntennaHeight:      10.0,
			TargetHeight:       2.0,
			TargetCount:        8,
		},
	}

	// Try to load from file
	file, err := os.Open("settings.json")
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No settings.json found, using defaults")
			return nil
		}
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&globalSettings); err != nil {
		return fmt.Errorf("error parsing settings.json: %v", err)
	}

	fmt.Printf("Loaded settings: %d iterations (~%d grid cells)\n",
		globalSettings.Terrain.Iterations,
		getApproximateCellCount(globalSettings.Terrain.Iterations))

	return nil
}

func getApproximateCellCount(iterations int) int {
	// Grid side formula: 2^iterations + 1
	side := 1
	for i := 0; i < iterations; i++ {
		side *= 2
	}
	side++
	return side * side
}

// ReloadSettings re-reads settings.json at runtime.
func ReloadSettings() error {
	oldIterations := globalSettings.Terrain.Iterations

	if err := loadSettings(); err != nil {
		return err
	}

	if oldIterations != globalSettings.Terrain.Iterations {
		fmt.Printf("Resolution changed from %d to %d iterations - regenerate required\n",
			oldIterations, globalSettings.Terrain.Iterations)
	}

	return nil
}
