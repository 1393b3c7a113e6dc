package core

import (
	"structs"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// PTMaterial matches WGSL PTMaterial in material.wgsl
//
//	struct PTMaterial {
//	   albedo_r : f32; albedo_g : f32; albedo_b : f32; (12)
//	   metallic : f32;   (4) at 12
//	   smoothness : f32; (4) at 16
//	   is_light : i32;   (4) at 20
//	}; -> 24 bytes, stride 24
//
// Albedo is not a vec3<f32> on the device side: WGSL aligns vec3 to 16
// bytes, which would move the stride to 32.
type PTMaterial struct {
	_ structs.HostLayout

	Albedo     mgl32.Vec3 // linear RGB
	Metallic   float32
	Smoothness float32
	IsLight    int32 // nonzero marks an emissive light
}

const (
	MaterialSize  = 24
	MaterialAlign = 4

	OffsetAlbedo     = 0
	OffsetMetallic   = 12
	OffsetSmoothness = 16
	OffsetIsLight    = 20
)

var layoutCheck PTMaterial

// Build fails here if the compiler lays PTMaterial out differently: a positive
// difference indexes out of range, a negative one overflows uintptr.
var (
	_ = [1]struct{}{}[unsafe.Sizeof(layoutCheck)-MaterialSize]
	_ = [1]struct{}{}[unsafe.Alignof(layoutCheck)-MaterialAlign]
	_ = [1]struct{}{}[unsafe.Offsetof(layoutCheck.Albedo)-OffsetAlbedo]
	_ = [1]struct{}{}[unsafe.Offsetof(layoutCheck.Metallic)-OffsetMetallic]
	_ = [1]struct{}{}[unsafe.Offsetof(layoutCheck.Smoothness)-OffsetSmoothness]
	_ = [1]struct{}{}[unsafe.Offsetof(layoutCheck.IsLight)-OffsetIsLight]
)

// NewMaterial builds a material. A true isLight is stored as 1.
func NewMaterial(albedo mgl32.Vec3, metallic, smoothness float32, isLight bool) PTMaterial {
	m := PTMaterial{
		Albedo:     albedo,
		Metallic:   metallic,
		Smoothness: smoothness,
	}
	if isLight {
		m.IsLight = 1
	}
	return m
}

// NewLight returns an emissive, fully rough, non-metallic material.
func NewLight(albedo mgl32.Vec3) PTMaterial {
	return NewMaterial(albedo, 0, 0, true)
}

// LightSource reports whether the material is emissive. Any nonzero IsLight
// counts, not only 1.
func (m PTMaterial) LightSource() bool {
	return m.IsLight != 0
}

// Equal compares field by field. NaN components never compare equal; compare
// ToBytes output when bit identity matters.
func (m PTMaterial) Equal(o PTMaterial) bool {
	return m == o
}
