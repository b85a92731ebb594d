// Package level runs one generation pass: ratios, trees, ratio displays, barrels
package level

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/placement"
	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/terrain"
	"github.com/ericre997/RatioRage/vmath"
)

var ErrGenerationFailed = errors.New("level generation failed")

// Config holds population counts and squared planar placement thresholds
type Config struct {
	NumTrees         int
	NumBarrels       int
	NumEquivalent    int
	NumNonEquivalent int

	MinRatioHeight  float64
	MinBarrelHeight float64

	TreeRatioMinD2    float64
	PlayerRatioMinD2  float64
	RatioRatioMinD2   float64
	TreeBarrelMinD2   float64
	RatioBarrelMinD2  float64
	BarrelBarrelMinD2 float64
	PlayerBarrelMinD2 float64

	RelaxFactor float64
	MaxRetries  int

	// TreeCell selects tree sites from the placement map
	TreeCell func(c color.RGBA) bool
}

// DefaultConfig returns the stock island population
func DefaultConfig() Config {
	return Config{
		NumTrees:          parameter.NumTrees,
		NumBarrels:        parameter.NumBarrels,
		NumEquivalent:     parameter.NumEquivalentRatios,
		NumNonEquivalent:  parameter.NumNonEquivalentRatios,
		MinRatioHeight:    parameter.MinRatioHeight,
		MinBarrelHeight:   parameter.MinBarrelHeight,
		TreeRatioMinD2:    parameter.TreeRatioMinD2,
		PlayerRatioMinD2:  parameter.PlayerRatioMinD2,
		RatioRatioMinD2:   parameter.RatioRatioMinD2,
		TreeBarrelMinD2:   parameter.TreeBarrelMinD2,
		RatioBarrelMinD2:  parameter.RatioBarrelMinD2,
		BarrelBarrelMinD2: parameter.BarrelBarrelMinD2,
		PlayerBarrelMinD2: parameter.PlayerBarrelMinD2,
		RelaxFactor:       parameter.PlacementRelaxFactor,
		MaxRetries:        parameter.PlacementMaxRetries,
		TreeCell:          terrain.IsTreeCell,
	}
}

// relaxed scales every distance threshold by f
func (c Config) relaxed(f float64) Config {
	c.TreeRatioMinD2 *= f
	c.PlayerRatioMinD2 *= f
	c.RatioRatioMinD2 *= f
	c.TreeBarrelMinD2 *= f
	c.RatioBarrelMinD2 *= f
	c.BarrelBarrelMinD2 *= f
	c.PlayerBarrelMinD2 *= f
	return c
}

// Level is the outcome of a successful pass
type Level struct {
	Set             ratio.Set
	Trees           []*scene.Mesh
	TreePositions   []vmath.Vec3F
	RatioPositions  []vmath.Vec3F
	BarrelPositions []vmath.Vec3F
	// Retries counts relaxed attempts needed; zero means the stock thresholds held
	Retries int
}

// Builder wires the generator, solver and managers for level generation
type Builder struct {
	cfg     Config
	terrain core.Terrain
	paint   core.PlacementMap
	gen     *ratio.Generator
	rng     *rand.Rand
	graph   *scene.Graph
	ratios  *manager.RatioManager
	barrels *manager.BarrelManager
	log     zerolog.Logger
}

func NewBuilder(
	cfg Config,
	terrain core.Terrain,
	paint core.PlacementMap,
	gen *ratio.Generator,
	rng *rand.Rand,
	graph *scene.Graph,
	ratios *manager.RatioManager,
	barrels *manager.BarrelManager,
	log zerolog.Logger,
) *Builder {
	if cfg.TreeCell == nil {
		cfg.TreeCell = DefaultConfig().TreeCell
	}
	return &Builder{
		cfg:     cfg,
		terrain: terrain,
		paint:   paint,
		gen:     gen,
		rng:     rng,
		graph:   graph,
		ratios:  ratios,
		barrels: barrels,
		log:     log.With().Str("component", "level").Logger(),
	}
}

type layout struct {
	trees, ratios, barrels []vmath.Vec3F
}

// Build generates ratios and places every object around the player's start
// Exhausted placement is retried with relaxed thresholds before failing
func (b *Builder) Build(ctx context.Context, player vmath.Vec3F) (*Level, error) {
	set := b.gen.Level(b.cfg.NumEquivalent, b.cfg.NumNonEquivalent)
	b.log.Info().
		Str("target", set.Target.String()).
		Int("equivalent", len(set.Equivalent)).
		Int("decoys", len(set.NonEquivalent)).
		Msg("Ratios generated")

	cfg := b.cfg
	var (
		lay     layout
		err     error
		retries int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lay, err = b.solve(cfg, len(set.All()), player)
		if err == nil {
			break
		}
		if !errors.Is(err, placement.ErrCandidatesExhausted) || retries >= b.cfg.MaxRetries {
			return nil, fmt.Errorf("%w after %d retries: %w", ErrGenerationFailed, retries, err)
		}
		retries++
		cfg = cfg.relaxed(b.cfg.RelaxFactor)
		b.log.Warn().Err(err).Int("retry", retries).Msg("Placement exhausted, relaxing thresholds")
	}

	lvl := &Level{
		Set:             set,
		TreePositions:   lay.trees,
		RatioPositions:  lay.ratios,
		BarrelPositions: lay.barrels,
		Retries:         retries,
	}
	for i, p := range lay.trees {
		lvl.Trees = append(lvl.Trees, b.graph.Tree(fmt.Sprintf("tree%d", i), p))
	}
	if err := b.ratios.Spawn(set, lay.ratios); err != nil {
		return nil, fmt.Errorf("spawn ratios: %w", err)
	}
	if err := b.barrels.Spawn(lay.barrels); err != nil {
		return nil, fmt.Errorf("spawn barrels: %w", err)
	}

	b.log.Info().
		Int("trees", len(lay.trees)).
		Int("ratios", len(lay.ratios)).
		Int("barrels", len(lay.barrels)).
		Int("retries", retries).
		Msg("Level built")
	return lvl, nil
}

func (b *Builder) solve(cfg Config, numRatios int, player vmath.Vec3F) (layout, error) {
	var lay layout
	playerSet := []vmath.Vec3F{vmath.V3FFlatten(player)}

	// Trees take a shuffled prefix of tree cells; sparse maps simply grow fewer
	trees := placement.NewSolver(b.paint.PositionsMatching(cfg.TreeCell), b.rng)
	trees.Shuffle()
	treePos, err := trees.Place(min(cfg.NumTrees, trees.Len()), 0, b.terrain)
	if err != nil {
		return lay, fmt.Errorf("trees: %w", err)
	}
	lay.trees = treePos
	treeXZ := flatten(treePos)

	all := b.paint.PositionsMatching(terrain.AnyCell)

	rs := placement.NewSolver(all, b.rng)
	rs.Filter(b.terrain, cfg.MinRatioHeight,
		placement.Exclusion{Positions: treeXZ, MinD2: cfg.TreeRatioMinD2},
		placement.Exclusion{Positions: playerSet, MinD2: cfg.PlayerRatioMinD2},
	)
	rs.Shuffle()
	lay.ratios, err = rs.Place(numRatios, cfg.RatioRatioMinD2, b.terrain)
	if err != nil {
		return lay, fmt.Errorf("ratios: %w", err)
	}

	bs := placement.NewSolver(all, b.rng)
	bs.Filter(b.terrain, cfg.MinBarrelHeight,
		placement.Exclusion{Positions: treeXZ, MinD2: cfg.TreeBarrelMinD2},
		placement.Exclusion{Positions: flatten(lay.ratios), MinD2: cfg.RatioBarrelMinD2},
		placement.Exclusion{Positions: playerSet, MinD2: cfg.PlayerBarrelMinD2},
	)
	bs.Shuffle()
	lay.barrels, err = bs.Place(cfg.NumBarrels, cfg.BarrelBarrelMinD2, b.terrain)
	if err != nil {
		return lay, fmt.Errorf("barrels: %w", err)
	}
	return lay, nil
}

func flatten(in []vmath.Vec3F) []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(in))
	for i, p := range in {
		out[i] = vmath.V3FFlatten(p)
	}
	return out
}
