package game

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/components"
	"github.com/pthm-cable/orbits/config"
	"github.com/pthm-cable/orbits/physics"
	"github.com/pthm-cable/orbits/systems"
)

// spawnInitialBodies creates the configured starting bodies.
func (g *Game) spawnInitialBodies() {
	for i, b := range g.cfg.Bodies {
		g.spawnBody(
			r2.Vec{X: b.Pos[0] * config.AU, Y: b.Pos[1] * config.AU},
			r2.Vec{X: b.Vel[0], Y: b.Vel[1]},
			b.Mass, b.Radius,
			g.cfg.Derived.BodyColors[i],
		)
	}
}

// spawnBody creates a body entity and returns it with its stable id.
func (g *Game) spawnBody(pos, vel r2.Vec, mass, radius float64, col color.RGBA) (ecs.Entity, uint32) {
	id := g.nextID
	g.nextID++

	entity := g.bodyMapper.NewEntity(
		&components.Position{Vec: pos},
		&components.Velocity{Vec: vel},
		&components.Body{Mass: mass, Radius: radius},
		&components.Appearance{Color: col},
		&components.Trail{Points: []r2.Vec{pos}},
	)
	g.ids[entity] = id
	return entity, id
}

// PlaceBody validates spec and adds the body. With auto_orbit enabled and a
// zero speed, the body is given a circular orbit around the heaviest body.
func (g *Game) PlaceBody(spec PlacementSpec) (uint32, error) {
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("placing body: %w", err)
	}

	vel := spec.Velocity()
	if g.cfg.AutoOrbit && spec.Speed == 0 {
		if central, ok := g.heaviest(); ok {
			vel = physics.CircularOrbitVelocity(central, physics.Body{Mass: spec.Mass, Pos: spec.Pos}, g.cfg.Physics.G)
		}
	}

	_, id := g.spawnBody(spec.Pos, vel, spec.Mass, spec.Radius, spec.RGBA())
	g.emit(newPlacedEvent(g, id, spec.Mass))
	return id, nil
}

// PlaceDefaultAt places a body with the configured default mass and radius,
// a random colour and zero velocity at screen position (sx, sy).
func (g *Game) PlaceDefaultAt(sx, sy float64) (uint32, error) {
	return g.PlaceBody(g.DefaultPlacement(sx, sy))
}

// DefaultPlacement returns the spec PlaceDefaultAt would use.
func (g *Game) DefaultPlacement(sx, sy float64) PlacementSpec {
	r, gr, b := g.RandomColor()
	return PlacementSpec{
		Pos:    g.camera.ScreenToWorld(sx, sy),
		Mass:   g.cfg.Placement.Mass,
		Radius: g.cfg.Placement.Radius,
		Color:  [3]int{int(r), int(gr), int(b)},
	}
}

// RandomColor draws a bright colour from the game's RNG.
func (g *Game) RandomColor() (r, gr, b uint8) {
	c := colorful.Hcl(g.rng.Float64()*360, 0.5+0.3*g.rng.Float64(), 0.6+0.25*g.rng.Float64())
	return c.Clamped().RGB255()
}

// Reset removes every body, restores the camera and clears the step
// counter and the collision freeze. Initial bodies are not respawned.
func (g *Game) Reset() {
	removed := len(g.ids)

	// Collect first, then remove: the world is locked while a query runs.
	entities := make([]ecs.Entity, 0, removed)
	query := g.bodyFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.bodyMapper.Remove(e)
		delete(g.ids, e)
	}

	g.emit(newResetEvent(g, removed))

	g.camera.Reset()
	g.halted = false
	g.haltedBy = systems.Collision{}
	g.step = 0
	g.rate.Reset()
}

// heaviest returns the most massive body.
func (g *Game) heaviest() (physics.Body, bool) {
	var best physics.Body
	found := false
	query := g.bodyFilter.Query()
	for query.Next() {
		pos, vel, body, _, _ := query.Get()
		if !found || body.Mass > best.Mass {
			best = physics.Body{Mass: body.Mass, Radius: body.Radius, Pos: pos.Vec, Vel: vel.Vec}
			found = true
		}
	}
	return best, found
}
