package physics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/vmath"
)

type flatTerrain float64

func (f flatTerrain) HeightAt(_, _ float64) float64     { return float64(f) }
func (f flatTerrain) NormalAt(_, _ float64) vmath.Vec3F { return vmath.V3FUp }

func TestAttachValidation(t *testing.T) {
	w := NewWorld(nil, parameter.Gravity)
	g := scene.NewGraph()
	m := g.NewMesh("m", scene.KindFragment, '*', scene.ColorFragment)

	assert.ErrorIs(t, w.AttachImpulseBody(nil, 1, 0, 0), ErrNilNode)
	assert.ErrorIs(t, w.AttachImpulseBody(m, 0, 0, 0), ErrInvalidMass)
	require.NoError(t, w.AttachImpulseBody(m, 10, 0.5, 0.5))
	assert.ErrorIs(t, w.AttachImpulseBody(m, 10, 0.5, 0.5), ErrBodyExists)
	assert.Equal(t, 1, w.Len())

	w.RemoveBody(m)
	assert.Equal(t, 0, w.Len())
	_, ok := w.Body(m)
	assert.False(t, ok)
}

func TestFallsAndSettlesOnGround(t *testing.T) {
	w := NewWorld(flatTerrain(2), parameter.Gravity)
	g := scene.NewGraph()
	m := g.NewMesh("m", scene.KindFragment, '*', scene.ColorFragment)
	m.SetPosition(vmath.Vec3F{Y: 10})
	require.NoError(t, w.AttachImpulseBody(m, 10, 0.5, 0.5))
	w.SetLinearVelocity(m, vmath.Vec3F{X: 3, Y: 5})
	w.SetAngularVelocity(m, vmath.Vec3F{Y: 2})

	for i := 0; i < 600; i++ {
		w.Step(16 * time.Millisecond)
	}

	b, ok := w.Body(m)
	require.True(t, ok)
	assert.True(t, b.Sleeping)
	assert.Greater(t, b.Contacts, 0)
	assert.InDelta(t, 2+parameter.BodyRadius, m.Local().Position.Y, 1e-9)
	assert.Greater(t, m.Local().Position.X, 0.0)
}

func TestBounceKeepsFractionOfSpeed(t *testing.T) {
	w := NewWorld(flatTerrain(0), 0)
	g := scene.NewGraph()
	m := g.NewMesh("m", scene.KindFragment, '*', scene.ColorFragment)
	m.SetPosition(vmath.Vec3F{Y: parameter.BodyRadius + 0.01})
	require.NoError(t, w.AttachImpulseBody(m, 1, 0, 0.5))
	w.SetLinearVelocity(m, vmath.Vec3F{Y: -10})

	w.Step(10 * time.Millisecond)
	b, _ := w.Body(m)
	assert.True(t, b.Grounded)
	assert.True(t, w.Grounded(m))
	assert.Greater(t, b.Velocity.Y, 4.0)
	assert.Less(t, b.Velocity.Y, 5.0)
}

func TestLaunchVelocityHitsTarget(t *testing.T) {
	cases := []struct {
		name     string
		from, to vmath.Vec3F
	}{
		{"level", vmath.Vec3F{}, vmath.Vec3F{X: 10}},
		{"downhill", vmath.Vec3F{Y: 5}, vmath.Vec3F{X: -6, Z: 8}},
		{"uphill", vmath.Vec3F{}, vmath.Vec3F{Z: 10, Y: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := LaunchVelocity(tc.from, tc.to, parameter.Gravity)
			require.NoError(t, err)
			assert.InDelta(t, math.Hypot(v.X, v.Z), v.Y, 1e-9, "45 degree launch")

			d := math.Hypot(tc.to.X-tc.from.X, tc.to.Z-tc.from.Z)
			tFlight := d / math.Hypot(v.X, v.Z)
			y := tc.from.Y + v.Y*tFlight - parameter.Gravity*tFlight*tFlight/2
			x := tc.from.X + v.X*tFlight
			z := tc.from.Z + v.Z*tFlight
			assert.InDelta(t, tc.to.Y, y, 1e-9)
			assert.InDelta(t, tc.to.X, x, 1e-9)
			assert.InDelta(t, tc.to.Z, z, 1e-9)
		})
	}
}

func TestLaunchVelocityRejectsUnreachable(t *testing.T) {
	_, err := LaunchVelocity(vmath.Vec3F{}, vmath.Vec3F{X: 3, Y: 3}, parameter.Gravity)
	assert.ErrorIs(t, err, ErrTargetUnreachable)

	_, err = LaunchVelocity(vmath.Vec3F{}, vmath.Vec3F{X: 1, Y: 7}, parameter.Gravity)
	assert.ErrorIs(t, err, ErrTargetUnreachable)

	_, err = LaunchVelocity(vmath.Vec3F{X: 2}, vmath.Vec3F{X: 2, Y: -1}, parameter.Gravity)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestMoveToward(t *testing.T) {
	pos, arrived := MoveToward(vmath.Vec3F{Y: 3}, vmath.Vec3F{X: 10, Y: 99}, 20, 100*time.Millisecond)
	assert.False(t, arrived)
	assert.InDelta(t, 2, pos.X, 1e-9)
	assert.Equal(t, 3.0, pos.Y, "elevation left to caller")

	pos, arrived = MoveToward(vmath.Vec3F{X: 9.5}, vmath.Vec3F{X: 10}, 20, 100*time.Millisecond)
	assert.True(t, arrived)
	assert.Equal(t, 10.0, pos.X)
}

func TestLaunchAtAngleHitsTarget(t *testing.T) {
	from := vmath.Vec3F{Y: 1}
	to := vmath.Vec3F{X: 6, Z: -3, Y: 2}
	for _, angle := range []float64{math.Pi / 6, parameter.ThrowAngle, math.Pi / 3} {
		v, err := launchAt(from, to, parameter.Gravity, angle)
		require.NoError(t, err)

		horizontal := math.Hypot(v.X, v.Z)
		assert.InDelta(t, math.Tan(angle), v.Y/horizontal, 1e-9)

		tFlight := math.Hypot(to.X-from.X, to.Z-from.Z) / horizontal
		y := from.Y + v.Y*tFlight - parameter.Gravity*tFlight*tFlight/2
		assert.InDelta(t, to.Y, y, 1e-9, "angle %.3f", angle)
	}

	// 30 degrees cannot clear a target 45 degrees up
	_, err := launchAt(vmath.Vec3F{}, vmath.Vec3F{X: 2, Y: 2}, parameter.Gravity, math.Pi/6)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}
