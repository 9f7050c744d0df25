package space

import "go.uber.org/zap"

// GravitySimulator settles unsupported objects, one fixed time step at a time.
// It owns the vertical position of every object except the selected one, which
// is why it never runs in ModeStacking where stacks are moved rigidly.
type GravitySimulator struct {
	world *World
}

func NewGravitySimulator(world *World) *GravitySimulator {
	return &GravitySimulator{world: world}
}

// Step advances every object except selected by dt.
//
// An airborne object is integrated with semi-implicit Euler. An object at or
// below its ground has its velocity zeroed and is snapped exactly onto the
// ground, with no smoothing. The ground is taken before integrating, so an
// object that would cross it within one step lands on it instead.
// Unlike plain per-step integration, landing happens in the crossing step
// rather than on the next one.
// Objects are processed by handle and each sees the positions already
// updated during this step.
func (g *GravitySimulator) Step(selected int, dt float64) {
	// Footprints do not change while falling: the index stays valid for the whole step
	resolver := g.world.Resolver()
	acceleration := -g.world.Config.Gravity

	for _, object := range g.world.Objects {
		if object.Handle == selected {
			continue
		}

		ground := resolver.GroundHeight(object)
		if object.IsAirborne(ground) {
			object.Integrate(dt, acceleration)
			if object.IsAirborne(ground) {
				continue
			}
		}

		wasFalling := object.Velocity != 0
		object.Rest(ground)

		if wasFalling {
			g.world.logger.Debug("object landed",
				zap.Int("handle", object.Handle),
				zap.Float64("ground", ground),
			)
			g.world.Events.emit(ObjectLandedEvent{Object: object, Ground: ground})
		}
	}
}
