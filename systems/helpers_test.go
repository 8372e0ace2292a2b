package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plexus/components"
)

// testField is a minimal world of particles for system tests.
type testField struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Anchor, components.Body]
	posMap *ecs.Map[components.Position]
	count  int
}

func newTestField() *testField {
	world := ecs.NewWorld()
	return &testField{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Anchor, components.Body](world),
		posMap: ecs.NewMap[components.Position](world),
	}
}

func (f *testField) spawn(x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	anchor := components.Anchor{X: x, Y: y}
	body := components.Body{Index: f.count, Radius: 2, Density: 10}
	f.count++
	return f.mapper.NewEntity(&pos, &anchor, &body)
}
