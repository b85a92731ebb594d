// Package manager owns the level's barrels and ratio displays
// Managers are the only mutators of their collections; the shockwave sweep
// reaches them through shockwave.Target
package manager

import (
	"errors"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/destructible"
	"github.com/ericre997/RatioRage/scene"
)

var (
	ErrUnknownObject  = errors.New("unknown object id")
	ErrNotIdle        = errors.New("barrel is not on the ground")
	ErrNotCarried     = errors.New("barrel is not carried")
	ErrAlreadyHolding = errors.New("a barrel is already carried")
	ErrTooFewSlots    = errors.New("not enough positions for spawn")
	ErrNilHolder      = errors.New("holder node is nil")
)

// Simulation is the rigid-body service plus the contact query thrown barrels need
type Simulation interface {
	destructible.Simulation
	Grounded(node core.Node) bool
}

// Deps are the collaborators shared by both managers
type Deps struct {
	Graph   *scene.Graph
	Clock   core.Clock
	Sim     Simulation
	Emitter destructible.Emitter // Optional
	Rng     *rand.Rand
	Log     zerolog.Logger
}
