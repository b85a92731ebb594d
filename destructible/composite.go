package destructible

import (
	"errors"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/vmath"
)

// Composite groups parts under one root with a single lifecycle
// A barrel is one part; a ratio display is its digits plus the bar
type Composite struct {
	root    core.Node
	parts   []*Object
	emitter Emitter

	exploded bool
	disposed bool
}

// NewComposite wraps parts already built against root; emitter may be nil
func NewComposite(root core.Node, emitter Emitter, parts ...*Object) *Composite {
	return &Composite{
		root:    root,
		parts:   parts,
		emitter: emitter,
	}
}

// Explode explodes every part and fires one burst at the root
func (c *Composite) Explode(sim Simulation) error {
	if c.disposed {
		return ErrAlreadyDisposed
	}
	if c.exploded {
		return ErrAlreadyExploded
	}

	pos := c.Position()
	var errs []error
	for _, p := range c.parts {
		if err := p.Explode(sim); err != nil {
			errs = append(errs, err)
		}
	}
	c.exploded = true

	if c.emitter != nil {
		c.emitter.Burst(pos)
	}
	return errors.Join(errs...)
}

// ShouldDispose is true once every part's debris has expired
func (c *Composite) ShouldDispose() bool {
	if !c.exploded || c.disposed {
		return false
	}
	for _, p := range c.parts {
		if !p.ShouldDispose() && !p.IsDisposed() {
			return false
		}
	}
	return true
}

// Dispose releases every part and then the root
func (c *Composite) Dispose() error {
	if c.disposed {
		return ErrAlreadyDisposed
	}
	var errs []error
	for _, p := range c.parts {
		if p.IsDisposed() {
			continue
		}
		if err := p.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.root != nil {
		c.root.Dispose()
	}
	c.disposed = true
	return errors.Join(errs...)
}

func (c *Composite) IsExploded() bool { return c.exploded }
func (c *Composite) IsDisposed() bool { return c.disposed }
func (c *Composite) Root() core.Node  { return c.root }
func (c *Composite) Parts() []*Object { return c.parts }

// Position is the root's world position
func (c *Composite) Position() vmath.Vec3F {
	if c.root == nil {
		if len(c.parts) == 0 {
			return vmath.Vec3F{}
		}
		return c.parts[0].Position()
	}
	return c.root.World().Position
}
