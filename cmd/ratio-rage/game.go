package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/ericre997/RatioRage/animation"
	"github.com/ericre997/RatioRage/audio"
	"github.com/ericre997/RatioRage/config"
	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/engine"
	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/level"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/particle"
	"github.com/ericre997/RatioRage/physics"
	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/render"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/shockwave"
	"github.com/ericre997/RatioRage/status"
	"github.com/ericre997/RatioRage/system"
	"github.com/ericre997/RatioRage/telemetry"
	"github.com/ericre997/RatioRage/terrain"
	"github.com/ericre997/RatioRage/vmath"
)

// game owns one running level and the terminal it draws to
type game struct {
	cfg    *config.Config
	log    zerolog.Logger
	screen tcell.Screen

	loop      *engine.Loop
	clock     *engine.PausableClock
	reg       *status.Registry
	ratios    *manager.RatioManager
	waves     *shockwave.System
	particles *particle.System
	player    *system.PlayerSystem
	term      *render.Terminal
	sound     *audio.Player
	metrics   metric.Registration

	controls *controls
	events   chan tcell.Event
}

// newGame generates terrain and a level and wires every system
func newGame(ctx context.Context, cfg *config.Config, screen tcell.Screen, log zerolog.Logger) (*game, error) {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("seed", seed).Msg("Starting game")

	heights, ground, err := loadTerrain(cfg.Game, rand.New(rand.NewPCG(seed, 1)))
	if err != nil {
		return nil, err
	}

	g := &game{
		cfg:    cfg,
		log:    log,
		screen: screen,
		reg:    status.NewRegistry(),
		events: make(chan tcell.Event, parameter.InputQueueSize),
	}
	g.clock = engine.NewPausableClock(engine.NewTimeProvider())
	g.loop = engine.NewLoop(g.clock, event.NewQueue(), g.reg, log)

	graph := scene.NewGraph()
	world := physics.NewWorld(heights, parameter.Gravity)
	g.particles = particle.NewSystem(rand.New(rand.NewPCG(seed, 2)), 0)

	deps := manager.Deps{
		Graph:   graph,
		Clock:   g.clock,
		Sim:     world,
		Emitter: g.particles,
		Rng:     rand.New(rand.NewPCG(seed, 3)),
		Log:     log,
	}
	barrels := manager.NewBarrelManager(deps)
	g.ratios = manager.NewRatioManager(deps)
	barrels.SetProximity(g.ratios)

	score := system.NewScoreBoard(g.loop, g.reg)
	g.waves = shockwave.NewSystem(g.clock, score, log)
	g.waves.Register(barrels)
	g.waves.Register(g.ratios)

	start := vmath.Vec3F{X: parameter.PlayerStartX, Z: parameter.PlayerStartZ}
	start.Y = heights.HeightAt(start.X, start.Z) + parameter.PlayerSize/2

	gen := ratio.NewGenerator(rand.New(rand.NewPCG(seed, 4)), log)
	builder := level.NewBuilder(levelConfig(cfg.Level), heights, ground, gen,
		rand.New(rand.NewPCG(seed, 5)), graph, g.ratios, barrels, log)
	lvl, err := builder.Build(ctx, start)
	if err != nil {
		return nil, err
	}
	g.waves.SetTarget(lvl.Set.Target)

	acfg := audio.DefaultConfig()
	acfg.Enabled = cfg.Audio.Enabled
	acfg.MasterVolume = cfg.Audio.Volume
	if unknown := acfg.SetEffectVolumes(cfg.Audio.Effects); len(unknown) > 0 {
		log.Warn().Strs("effects", unknown).Msg("Unknown sound effects in config")
	}
	g.sound = audio.NewPlayer(acfg, log)
	if err := g.sound.Initialize(); err != nil {
		log.Warn().Err(err).Msg("Continuing without sound")
	}

	if cfg.Telemetry.Enabled {
		if g.metrics, err = telemetry.Register(g.reg, nil); err != nil {
			log.Warn().Err(err).Msg("Telemetry registration failed")
		}
	}

	mesh := graph.NewMesh("player", scene.KindPlayer, '@', scene.ColorPlayer)
	mesh.SetPosition(start)
	clips := animation.NewClipPlayer(animation.DefaultDurations())
	anim := animation.NewController(clips)
	g.player = system.NewPlayerSystem(mesh, heights, barrels, anim, g.loop, log)

	g.loop.AddSystem(g.player)
	g.loop.AddSystem(system.NewAnimationSystem(clips, anim))
	g.loop.AddSystem(system.NewPhysicsSystem(world))
	g.loop.AddSystem(system.NewBarrelSystem(barrels, g.waves, g.loop, log))
	g.loop.AddSystem(system.NewRatioSystem(g.ratios))
	g.loop.AddSystem(system.NewShockwaveSystem(g.waves, g.loop))
	g.loop.AddSystem(system.NewParticleSystem(g.particles))
	g.loop.AddSystem(system.NewLevelSystem(g.ratios, g.clock, score, g.loop, g.reg, log))
	g.loop.AddSystem(system.NewAudioSystem(g.sound))
	g.loop.AddSystem(system.NewStatusSystem(system.StatusSources{
		Waves:     g.waves,
		Barrels:   barrels,
		Ratios:    g.ratios,
		World:     world,
		Particles: g.particles,
		Graph:     graph,
		Anim:      anim,
	}, g.reg))
	g.loop.AddHandler(score)

	announceLevel(g.loop, lvl.Set)

	g.term = render.NewTerminal(screen, ground, heights, graph, g.reg, render.Options{
		CellsPerUnit: cfg.Render.Zoom,
		ShowHelp:     cfg.Render.ShowHelp,
	})
	g.controls = &controls{push: g.loop, mute: g.sound.ToggleMute}
	return g, nil
}

// announceLevel starts scoring and completion tracking for set
func announceLevel(p pusher, set ratio.Set) {
	p.Push(event.EventLevelStart, &event.LevelStartPayload{
		Target:    set.Target,
		Remaining: len(set.Equivalent),
	})
}

// loadTerrain decodes configured PNG maps or generates an island
func loadTerrain(cfg config.GameConfig, rng *rand.Rand) (*terrain.Heightmap, *terrain.ColorMap, error) {
	tc := terrain.Config{
		Width:        cfg.Width,
		Depth:        cfg.Depth,
		Subdivisions: cfg.Subdivisions,
		MinHeight:    cfg.MinHeight,
		MaxHeight:    cfg.MaxHeight,
	}

	var (
		heights *terrain.Heightmap
		err     error
	)
	if cfg.HeightmapFile != "" {
		heights, err = decodeFile(cfg.HeightmapFile, func(f *os.File) (*terrain.Heightmap, error) {
			return terrain.Decode(tc, f)
		})
	} else {
		heights, err = terrain.NewIsland(tc, rng)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("heightmap: %w", err)
	}

	if cfg.ColormapFile == "" {
		return heights, terrain.PaintFromHeight(heights, rng, cfg.TreeChance), nil
	}
	ground, err := decodeFile(cfg.ColormapFile, func(f *os.File) (*terrain.ColorMap, error) {
		return terrain.DecodeColorMap(cfg.Subdivisions, cfg.Subdivisions, cfg.Width, cfg.Depth, f)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("colormap: %w", err)
	}
	return heights, ground, nil
}

func decodeFile[T any](path string, decode func(f *os.File) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return decode(f)
}

func levelConfig(cfg config.LevelConfig) level.Config {
	lc := level.DefaultConfig()
	lc.NumTrees = cfg.Trees
	lc.NumBarrels = cfg.Barrels
	lc.NumEquivalent = cfg.Equivalent
	lc.NumNonEquivalent = cfg.NonEquivalent
	lc.MaxRetries = cfg.MaxRetries
	lc.RelaxFactor = cfg.RelaxFactor
	return lc
}

// run polls input on its own goroutine and drives the loop until ctx ends or the player quits
func (g *game) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case g.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	err := g.loop.Run(ctx, g.cfg.Game.FrameInterval, func() {
		if g.input() {
			cancel()
			return
		}
		g.draw()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// input drains pending terminal events; true means quit
func (g *game) input() bool {
	view := g.term.View(g.player.Position())
	for {
		select {
		case ev := <-g.events:
			if _, ok := ev.(*tcell.EventResize); ok {
				g.screen.Sync()
				view = g.term.View(g.player.Position())
				continue
			}
			if g.controls.handle(ev, view) {
				return true
			}
		default:
			return false
		}
	}
}

func (g *game) draw() {
	var labels []render.Label
	for _, d := range g.ratios.Displays() {
		if d.IsExploded() {
			continue
		}
		labels = append(labels, render.Label{Position: d.Position(), Text: d.Ratio().String()})
	}
	g.term.Draw(render.Frame{
		Focus:     g.player.Position(),
		Now:       g.clock.Now(),
		Elapsed:   g.clock.Elapsed(),
		Waves:     g.waves.Waves(),
		Particles: g.particles.Live(),
		Labels:    labels,
	})
}

func (g *game) close() {
	if g.metrics != nil {
		if err := g.metrics.Unregister(); err != nil {
			g.log.Warn().Err(err).Msg("Telemetry unregister failed")
		}
	}
	g.sound.Close()
	g.log.Info().
		Int64("frames", g.loop.Frame()).
		Uint64("sounds", g.sound.Played()).
		Msg("Game closed")
}
