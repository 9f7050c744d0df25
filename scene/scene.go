// Package scene reads and writes room layouts as YAML: the engine tunables
// plus the list of boxes, so a layout can be saved after a session and
// restored later.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	space "github.com/minkowski-home/design-your-space"
	"gopkg.in/yaml.v3"
)

// Box describes one placed object
type Box struct {
	Name     string     `yaml:"name,omitempty"`
	ID       string     `yaml:"id,omitempty"`
	Position [3]float64 `yaml:"position"`
	Size     [3]float64 `yaml:"size"`
}

// File is the content of a scene file. Missing config keys keep their defaults.
type File struct {
	Config  space.Config `yaml:"config"`
	Objects []Box        `yaml:"objects"`
}

// Load decodes a scene from r. An empty document is an empty default room.
func Load(r io.Reader) (*File, error) {
	f := &File{Config: space.DefaultConfig()}

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	if err := f.Config.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func LoadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// Build creates a world holding every box of the scene, with its stack
// relation already computed. opts are applied after the scene configuration.
func (f *File) Build(opts ...space.Option) (*space.World, error) {
	if err := f.Config.Validate(); err != nil {
		return nil, err
	}

	world := space.NewWorld(append([]space.Option{space.WithConfig(f.Config)}, opts...)...)

	for i, box := range f.Objects {
		position := mgl64.Vec3(box.Position)
		size := mgl64.Vec3(box.Size)
		if err := space.ValidateBox(position, size); err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, box.Name, err)
		}

		object := world.AddObject(position, size)
		object.Name = box.Name
		if box.ID != "" {
			if err := object.ID.UnmarshalText([]byte(box.ID)); err != nil {
				return nil, fmt.Errorf("object %d (%s): %w: id: %w", i, box.Name, space.ErrInvalidObject, err)
			}
		}
	}

	world.RebuildStacks()
	world.Flush()

	return world, nil
}

// FromWorld captures the current layout of world
func FromWorld(world *space.World) *File {
	f := &File{
		Config:  world.Config,
		Objects: make([]Box, 0, len(world.Objects)),
	}
	for _, object := range world.Objects {
		f.Objects = append(f.Objects, Box{
			Name:     object.Name,
			ID:       object.ID.String(),
			Position: [3]float64(object.Transform.Position),
			Size:     [3]float64(object.Size),
		})
	}
	return f
}

// Save encodes the scene as YAML
func (f *File) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}
