package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	space "github.com/minkowski-home/design-your-space"
	"github.com/minkowski-home/design-your-space/actor"
	"github.com/minkowski-home/design-your-space/scene"
	"go.uber.org/zap"
)

// loggingCamera stands in for the orbit control of a real viewer
type loggingCamera struct {
	logger *zap.Logger
}

func (c loggingCamera) SetEnabled(enabled bool) {
	c.logger.Info("camera control", zap.Bool("enabled", enabled))
}

// randomScene scatters count cubes on the floor of the room, the way the
// furniture spawner of the viewer does: sizes between 0.5 and 1.3, fully inside the room.
func randomScene(rng *rand.Rand, config space.Config, count int) *scene.File {
	f := &scene.File{Config: config}
	roomSize := config.RoomHalfExtent * 2

	for i := 0; i < count; i++ {
		size := rng.Float64()*0.8 + 0.5
		halfRoom := (roomSize - size) / 2
		f.Objects = append(f.Objects, scene.Box{
			Name: fmt.Sprintf("box-%d", i),
			Position: [3]float64{
				rng.Float64()*(roomSize-size) - halfRoom,
				size / 2,
				rng.Float64()*(roomSize-size) - halfRoom,
			},
			Size: [3]float64{size, size, size},
		})
	}
	return f
}

// downRay is a picking ray cast straight down onto (x, z)
func downRay(x, z float64) actor.Ray {
	return actor.Ray{
		Origin:    mgl64.Vec3{x, 20, z},
		Direction: mgl64.Vec3{0, -1, 0},
	}
}

func main() {
	scenePath := flag.String("scene", "", "YAML scene file; a random room is generated when empty")
	count := flag.Int("random", 5, "number of random boxes when no scene file is given")
	seed := flag.Int64("seed", 1, "random seed")
	mode := flag.String("mode", "", "placement mode override: stacking or gravity")
	out := flag.String("out", "", "write the final layout to this file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	var layout *scene.File
	if *scenePath != "" {
		layout, err = scene.LoadFile(*scenePath)
		if err != nil {
			logger.Fatal("load scene", zap.String("path", *scenePath), zap.Error(err))
		}
	} else {
		layout = randomScene(rand.New(rand.NewSource(*seed)), space.DefaultConfig(), *count)
	}

	if *mode != "" {
		layout.Config.Mode, err = space.ParseMode(*mode)
		if err != nil {
			logger.Fatal("parse mode", zap.Error(err))
		}
	}

	world, err := layout.Build(space.WithLogger(logger))
	if err != nil {
		logger.Fatal("build world", zap.Error(err))
	}
	if len(world.Objects) < 2 {
		logger.Fatal("the demo needs at least two objects", zap.Int("objects", len(world.Objects)))
	}

	world.Events.Subscribe(space.STACK_REBUILT, func(event space.Event) {
		e := event.(space.StackRebuiltEvent)
		for _, edge := range e.Edges {
			logger.Info("stacked", zap.Int("child", edge.Child), zap.Int("parent", edge.Parent))
		}
	})
	world.Events.Subscribe(space.OBJECT_LANDED, func(event space.Event) {
		e := event.(space.ObjectLandedEvent)
		logger.Info("landed", zap.Int("handle", e.Object.Handle), zap.Float64("ground", e.Ground))
	})

	session := space.NewDragSession(world, loggingCamera{logger: logger})

	// Drag the first box onto the second one, a few pointer events at a time
	source := world.Objects[0].Transform.Position
	target := world.Objects[1].Transform.Position

	if !session.Pick(downRay(source.X(), source.Z())) {
		logger.Fatal("nothing under the pointer")
	}

	const moves = 10
	for i := 1; i <= moves; i++ {
		t := float64(i) / moves
		point := source.Mul(1 - t).Add(target.Mul(t))
		delta := session.Move(mgl64.Vec3{point.X(), 0, point.Z()})
		logger.Debug("move", zap.Int("event", i), zap.Float64s("delta", delta[:]))
	}
	session.Release()

	// Let anything left in the air settle
	const dt = 1.0 / 60.0
	for i := 0; i < 600; i++ {
		session.Step(dt)
	}

	for _, object := range world.Objects {
		p := object.Transform.Position
		fmt.Printf("%-8s %s  position (%.3f, %.3f, %.3f)\n", object.Name, object.ID, p.X(), p.Y(), p.Z())
	}

	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			logger.Fatal("create output", zap.Error(err))
		}
		defer file.Close()
		if err := scene.FromWorld(world).Save(file); err != nil {
			logger.Fatal("save scene", zap.Error(err))
		}
	}
}
