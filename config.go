package ptmaterial

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// MaterialDef is one entry of a materials YAML file:
//
//	materials:
//	  - name: lamp
//	    albedo: [1.0, 0.9, 0.8]
//	    light: true
//	  - name: gold
//	    albedo: [1.0, 0.78, 0.34]
//	    metallic: 1
//	    smoothness: 0.85
//	    clamp: true
type MaterialDef struct {
	Name       string    `yaml:"name"`
	Albedo     []float32 `yaml:"albedo"`
	Metallic   float32   `yaml:"metallic"`
	Smoothness float32   `yaml:"smoothness"`
	Light      bool      `yaml:"light"`
	Clamp      bool      `yaml:"clamp"`
}

type MaterialFile struct {
	Materials []MaterialDef `yaml:"materials"`
}

var ErrBadAlbedo = errors.New("albedo must have exactly 3 components")

func (d MaterialDef) Material() (core.PTMaterial, error) {
	if len(d.Albedo) != 3 {
		return core.PTMaterial{}, fmt.Errorf("material %q: %w, got %d", d.Name, ErrBadAlbedo, len(d.Albedo))
	}
	m := core.NewMaterial(mgl32.Vec3{d.Albedo[0], d.Albedo[1], d.Albedo[2]}, d.Metallic, d.Smoothness, d.Light)
	if d.Clamp {
		m = Clamp(m)
	}
	return m, nil
}

// LoadLibraryYAML reads a materials file. Unknown keys are rejected.
func LoadLibraryYAML(r io.Reader) (*Library, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file MaterialFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode materials: %w", err)
	}

	lib := NewLibrary()
	for _, def := range file.Materials {
		m, err := def.Material()
		if err != nil {
			return nil, err
		}
		if _, err := lib.Add(def.Name, m); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func LoadLibraryFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lib, err := LoadLibraryYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}
