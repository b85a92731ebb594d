// Package config loads game settings from defaults, an optional TOML file and
// RATIORAGE_ environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ericre997/RatioRage/parameter"
)

const (
	EnvPrefix = "RATIORAGE"
	FileName  = "ratiorage"
	FileType  = "toml"
)

var (
	ErrRead    = errors.New("config read failed")
	ErrInvalid = errors.New("invalid config")
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json or console
}

type GameConfig struct {
	// Seed zero picks a time-based seed
	Seed          uint64        `mapstructure:"seed"`
	FrameInterval time.Duration `mapstructure:"frameInterval"`
	Width         float64       `mapstructure:"width"`
	Depth         float64       `mapstructure:"depth"`
	Subdivisions  int           `mapstructure:"subdivisions"`
	MinHeight     float64       `mapstructure:"minHeight"`
	MaxHeight     float64       `mapstructure:"maxHeight"`
	TreeChance    float64       `mapstructure:"treeChance"`
	// Optional PNG maps; empty generates an island
	HeightmapFile string `mapstructure:"heightmapFile"`
	ColormapFile  string `mapstructure:"colormapFile"`
}

type LevelConfig struct {
	Trees         int     `mapstructure:"trees"`
	Barrels       int     `mapstructure:"barrels"`
	Equivalent    int     `mapstructure:"equivalent"`
	NonEquivalent int     `mapstructure:"nonEquivalent"`
	MaxRetries    int     `mapstructure:"maxRetries"`
	RelaxFactor   float64 `mapstructure:"relaxFactor"`
}

type AudioConfig struct {
	Enabled bool               `mapstructure:"enabled"`
	Volume  float64            `mapstructure:"volume"`
	Effects map[string]float64 `mapstructure:"effects"`
}

type RenderConfig struct {
	// Zoom is terminal columns per world unit
	Zoom     float64 `mapstructure:"zoom"`
	ShowHelp bool    `mapstructure:"showHelp"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the complete game configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Game      GameConfig      `mapstructure:"game"`
	Level     LevelConfig     `mapstructure:"level"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Render    RenderConfig    `mapstructure:"render"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "ratiorage.log"))
	v.SetDefault("log.format", "console")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.frameInterval", parameter.FrameUpdateInterval)
	v.SetDefault("game.width", parameter.TerrainWidth)
	v.SetDefault("game.depth", parameter.TerrainDepth)
	v.SetDefault("game.subdivisions", parameter.TerrainSubdivisions)
	v.SetDefault("game.minHeight", parameter.TerrainMinHeight)
	v.SetDefault("game.maxHeight", parameter.TerrainMaxHeight)
	v.SetDefault("game.treeChance", parameter.TerrainTreeChance)
	v.SetDefault("game.heightmapFile", "")
	v.SetDefault("game.colormapFile", "")

	v.SetDefault("level.trees", parameter.NumTrees)
	v.SetDefault("level.barrels", parameter.NumBarrels)
	v.SetDefault("level.equivalent", parameter.NumEquivalentRatios)
	v.SetDefault("level.nonEquivalent", parameter.NumNonEquivalentRatios)
	v.SetDefault("level.maxRetries", parameter.PlacementMaxRetries)
	v.SetDefault("level.relaxFactor", parameter.PlacementRelaxFactor)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", parameter.AudioDefaultVolume)
	v.SetDefault("audio.effects", map[string]float64{})

	v.SetDefault("render.zoom", parameter.ViewCellsPerUnit)
	v.SetDefault("render.showHelp", true)

	v.SetDefault("telemetry.enabled", false)
}

// Load reads configuration; an empty path searches the working directory and
// the user config directory, and a missing file there is not an error
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType(FileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "ratiorage"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Game.FrameInterval <= 0:
		return fmt.Errorf("%w: game.frameInterval must be positive", ErrInvalid)
	case c.Game.Width <= 0 || c.Game.Depth <= 0:
		return fmt.Errorf("%w: game.width and game.depth must be positive", ErrInvalid)
	case c.Game.Subdivisions < 1:
		return fmt.Errorf("%w: game.subdivisions must be >= 1", ErrInvalid)
	case c.Game.MaxHeight <= c.Game.MinHeight:
		return fmt.Errorf("%w: game.maxHeight must exceed game.minHeight", ErrInvalid)
	case c.Level.Equivalent < 1:
		return fmt.Errorf("%w: level.equivalent must be >= 1", ErrInvalid)
	case c.Level.Trees < 0 || c.Level.Barrels < 0 || c.Level.NonEquivalent < 0:
		return fmt.Errorf("%w: level counts must not be negative", ErrInvalid)
	case c.Level.RelaxFactor <= 0 || c.Level.RelaxFactor > 1:
		return fmt.Errorf("%w: level.relaxFactor must be in (0, 1]", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be in [0, 1]", ErrInvalid)
	case c.Render.Zoom <= 0:
		return fmt.Errorf("%w: render.zoom must be positive", ErrInvalid)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}
