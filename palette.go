package ptmaterial

import (
	"fmt"

	"github.com/gekko3d/ptmaterial/rt/core"
	"github.com/gekko3d/ptmaterial/vox"

	"github.com/go-gl/mathgl/mgl32"
)

// FromVoxPalette converts a MagicaVoxel palette into 256 records indexed by
// color index. Index 0 is air and stays the zero record.
//
// Colors are divided by 255 with no gamma conversion. Smoothness is
// 1 - _rough, and an entry is a light when its _type is _emit or _emit > 0.
func FromVoxPalette(pal *vox.Palette) []core.PTMaterial {
	mats := make([]core.PTMaterial, len(pal.Colors))
	for i := 1; i < len(pal.Colors); i++ {
		c := pal.Colors[i]
		m := core.PTMaterial{
			Albedo: mgl32.Vec3{
				float32(c[0]) / 255,
				float32(c[1]) / 255,
				float32(c[2]) / 255,
			},
		}

		if vm, ok := pal.Materials[i]; ok {
			if metal, ok := vm.Float("_metal"); ok && vm.Type() == vox.TypeMetal {
				m.Metallic = metal
			}
			if rough, ok := vm.Float("_rough"); ok {
				m.Smoothness = 1 - rough
			}
			emit, _ := vm.Float("_emit")
			if vm.Type() == vox.TypeEmit || emit > 0 {
				m.IsLight = 1
			}
		}
		mats[i] = Clamp(m)
	}
	return mats
}

// LibraryFromVoxPalette puts all 256 entries in a new library, named
// "vox<index>", so record indices match palette indices.
func LibraryFromVoxPalette(pal *vox.Palette) (*Library, error) {
	lib := NewLibrary()
	for i, m := range FromVoxPalette(pal) {
		if _, err := lib.Add(fmt.Sprintf("vox%d", i), m); err != nil {
			return nil, err
		}
	}
	return lib, nil
}
