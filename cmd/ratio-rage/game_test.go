package main

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/config"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/terrain"
)

func islandConfig() config.GameConfig {
	return config.GameConfig{
		Width:        parameter.TerrainWidth,
		Depth:        parameter.TerrainDepth,
		Subdivisions: parameter.TerrainSubdivisions,
		MinHeight:    parameter.TerrainMinHeight,
		MaxHeight:    parameter.TerrainMaxHeight,
		TreeChance:   parameter.TerrainTreeChance,
	}
}

func TestLoadTerrainGeneratesIsland(t *testing.T) {
	heights, ground, err := loadTerrain(islandConfig(), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, parameter.TerrainSubdivisions, heights.Subdivisions())
	assert.NotEmpty(t, ground.PositionsMatching(terrain.AnyCell))
}

func TestLoadTerrainMissingFile(t *testing.T) {
	cfg := islandConfig()
	cfg.HeightmapFile = filepath.Join(t.TempDir(), "absent.png")
	_, _, err := loadTerrain(cfg, rand.New(rand.NewPCG(1, 2)))
	assert.ErrorContains(t, err, "heightmap")
}

func TestLevelConfigOverridesCounts(t *testing.T) {
	lc := levelConfig(config.LevelConfig{
		Trees:         3,
		Barrels:       4,
		Equivalent:    2,
		NonEquivalent: 1,
		MaxRetries:    5,
		RelaxFactor:   0.5,
	})
	assert.Equal(t, 3, lc.NumTrees)
	assert.Equal(t, 4, lc.NumBarrels)
	assert.Equal(t, 2, lc.NumEquivalent)
	assert.Equal(t, 1, lc.NumNonEquivalent)
	assert.Equal(t, 5, lc.MaxRetries)
	assert.InDelta(t, 0.5, lc.RelaxFactor, 1e-9)
	assert.NotNil(t, lc.TreeCell)
	assert.Equal(t, parameter.MinRatioHeight, lc.MinRatioHeight)
}
