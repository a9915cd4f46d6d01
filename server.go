package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"terrainsim/config"
	"terrainsim/core"
)

// TerrainData is the payload streamed to websocket clients: the surface
// vertices with land classification, plus the radar visibility reports.
type TerrainData struct {
	Type       string             `json:"type"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	Vertices   [][3]float64       `json:"vertices"`
	Elevations []float64          `json:"elevations"`
	LandTypes  []int              `json:"landTypes"`
	SeaLevel   float64            `json:"seaLevel"`
	Seed       int64              `json:"seed"`
	Radar      [2]float64         `json:"radar"`
	Reports    []VisibilityReport `json:"reports"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

var (
	globalParams  core.SynthesisParams
	globalSeed    int64
	globalTerrain *core.Terrain
	globalTypes   [][]LandType
	globalSite    RadarSite
	globalTargets []Target
	globalReports []VisibilityReport
	terrainMutex  sync.RWMutex
)

var clients = make(map[*websocket.Conn]*sync.Mutex)
var clientsMutex sync.RWMutex

func startServer(params core.SynthesisParams, seed int64, site RadarSite) error {
	globalParams = params
	globalSeed = seed
	globalSite = site

	if err := regenerateTerrain(seed); err != nil {
		return err
	}

	terrainMutex.RLock()
	min, max := globalTerrain.Elevation.MinMax()
	fmt.Printf("Terrain initialized: %dx%d grid, elevation range [%.2f, %.2f]\n",
		globalTerrain.Rows(), globalTerrain.Cols(), min, max)
	for i, report := range globalReports {
		fmt.Printf("Target %d: %.1f%% %s visible\n", i+1, report.Percent, report.Label)
	}
	terrainMutex.RUnlock()

	http.HandleFunc("/ws", handleWebSocket)

	addr := fmt.Sprintf(":%d", config.GetSettings().Server.Port)
	fmt.Printf("Server starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, nil)
}

// regenerateTerrain synthesizes a fresh terrain from the stored parameters
// and the given seed, then rebuilds the derived land types and visibility
// reports.
func regenerateTerrain(seed int64) error {
	terrain, err := core.Synthesize(globalParams, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	settings := config.GetSettings().Radar

	terrainMutex.Lock()
	globalSeed = seed
	globalTerrain = terrain
	globalTypes = classifyLandTypes(terrain)
	globalTargets = defaultTargets(terrain, globalSite, settings.TargetCount, settings.TargetHeight)
	globalReports = surveyTargets(terrain, globalSite, globalTargets)
	terrainMutex.Unlock()
	return nil
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	session := uuid.New()
	log.Printf("Client %s connected from %s", session, r.RemoteAddr)

	connMutex := &sync.Mutex{}
	clientsMutex.Lock()
	clients[conn] = connMutex
	clientsMutex.Unlock()
	defer func() {
		clientsMutex.Lock()
		delete(clients, conn)
		clientsMutex.Unlock()
		log.Printf("Client %s disconnected", session)
	}()

	// Send initial terrain
	sendTerrainData(conn)

	// Handle incoming messages (regenerate requests, etc.)
	for {
		var msg map[string]interface{}
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Println("WebSocket read error:", err)
			break
		}

		if msg["type"] == "regenerate" {
			seed := globalSeed + 1
			if s, ok := msg["seed"].(float64); ok {
				seed = int64(s)
			}
			fmt.Printf("REGENERATE from %s: seed %d\n", session, seed)
			if err := regenerateTerrain(seed); err != nil {
				log.Println("Regenerate error:", err)
				continue
			}
			broadcastTerrainData()
		}
	}
}

func sendTerrainData(conn *websocket.Conn) {
	clientsMutex.RLock()
	mutex, ok := clients[conn]
	clientsMutex.RUnlock()
	if !ok {
		return
	}

	data := createTerrainData()
	mutex.Lock()
	conn.WriteJSON(data)
	mutex.Unlock()
}

func broadcastTerrainData() {
	data := createTerrainData()
	clientsMutex.RLock()
	clientsToRemove := []*websocket.Conn{}
	for client, mutex := range clients {
		mutex.Lock()
		err := client.WriteJSON(data)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			clientsToRemove = append(clientsToRemove, client)
		}
	}
	clientsMutex.RUnlock()

	// Remove failed clients
	if len(clientsToRemove) > 0 {
		clientsMutex.Lock()
		for _, client := range clientsToRemove {
			delete(clients, client)
		}
		clientsMutex.Unlock()
	}
}

func createTerrainData() TerrainData {
	terrainMutex.RLock()
	defer terrainMutex.RUnlock()

	rows, cols := globalTerrain.Rows(), globalTerrain.Cols()
	vertices := make([][3]float64, 0, rows*cols)
	elevations := make([]float64, 0, rows*cols)
	landTypes := make([]int, 0, rows*cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			vertices = append(vertices, [3]float64{
				globalTerrain.X[i][j],
				globalTerrain.Elevation[i][j],
				globalTerrain.Y[i][j],
			})
			elevations = append(elevations, globalTerrain.Elevation[i][j])
			landTypes = append(landTypes, int(globalTypes[i][j]))
		}
	}

	reports := make([]VisibilityReport, len(globalReports))
	copy(reports, globalReports)

	return TerrainData{
		Type:       "terrain_update",
		Rows:       rows,
		Cols:       cols,
		Vertices:   vertices,
		Elevations: elevations,
		LandTypes:  landTypes,
		SeaLevel:   core.SeaLevel,
		Seed:       globalSeed,
		Radar:      [2]float64{globalSite.X, globalSite.Y},
		Reports:    reports,
	}
}
