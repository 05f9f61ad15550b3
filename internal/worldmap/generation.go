// World generation using layered simplex noise over a square 4-connected
// grid. Also populates the moisture layer that the reference
// implementation's grid module reserves but never writes, biasing terrain
// selection with it.
package worldmap

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width, Height int
	Seed          int64
	WaterLevel    float64 // elevation threshold for water, [0,1]
	StoneLevel    float64 // elevation threshold for stone, [0,1]
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:      64,
		Height:     64,
		Seed:       1,
		WaterLevel: 0.28,
		StoneLevel: 0.74,
	}
}

// Generate creates a complete grid with terrain and moisture populated
// from independent simplex noise layers.
func Generate(cfg GenConfig) *Grid {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	moistNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	g := NewGrid(cfg.Width, cfg.Height)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx, fy := float64(x), float64(y)
			elev := octaveNoise(elevNoise, fx, fy, 4, 0.08, 0.5)
			moist := octaveNoise(moistNoise, fx, fy, 3, 0.06, 0.5)

			g.SetMoisture(x, y, moist)
			g.SetTerrain(x, y, deriveTerrain(elev, moist, cfg))
		}
	}

	return g
}

// deriveTerrain picks a terrain kind from elevation and the moisture
// layer: wetter cells bias toward dirt/water, drier toward grass/stone.
func deriveTerrain(elev, moist float64, cfg GenConfig) TerrainKind {
	waterLevel := cfg.WaterLevel + (moist-0.5)*0.15
	if elev < waterLevel {
		return TerrainWater
	}
	stoneLevel := cfg.StoneLevel + (moist-0.5)*0.10
	if elev > stoneLevel {
		return TerrainStone
	}
	if moist > 0.55 {
		return TerrainDirt
	}
	return TerrainGrass
}

// octaveNoise layers multiple noise frequencies for natural-looking
// terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
