package shaders

import (
	"encoding/binary"
	"testing"

	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowerWGSL(t *testing.T, source string) *ir.Module {
	t.Helper()
	ast, err := naga.Parse(source)
	require.NoError(t, err)
	module, err := naga.LowerWithSource(ast, source)
	require.NoError(t, err)
	return module
}

func findStruct(t *testing.T, module *ir.Module, name string) ir.StructType {
	t.Helper()
	for _, typ := range module.Types {
		if typ.Name != name {
			continue
		}
		st, ok := typ.Inner.(ir.StructType)
		require.True(t, ok, "%s is not a struct", name)
		return st
	}
	t.Fatalf("struct %s not found", name)
	return ir.StructType{}
}

func TestMaterialStructMatchesHostLayout(t *testing.T) {
	st := findStruct(t, lowerWGSL(t, MaterialWGSL), "PTMaterial")

	assert.Equal(t, uint32(core.MaterialSize), st.Span)

	offsets := make(map[string]uint32, len(st.Members))
	for _, m := range st.Members {
		offsets[m.Name] = m.Offset
	}
	assert.Equal(t, map[string]uint32{
		"albedo_r":   core.OffsetAlbedo,
		"albedo_g":   core.OffsetAlbedo + 4,
		"albedo_b":   core.OffsetAlbedo + 8,
		"metallic":   core.OffsetMetallic,
		"smoothness": core.OffsetSmoothness,
		"is_light":   core.OffsetIsLight,
	}, offsets)
}

func TestVec3AlbedoWouldBreakStride(t *testing.T) {
	const vec3Material = `
struct Vec3Material {
    albedo: vec3<f32>,
    metallic: f32,
    smoothness: f32,
    is_light: i32,
}
`
	st := findStruct(t, lowerWGSL(t, vec3Material), "Vec3Material")
	assert.NotEqual(t, uint32(core.MaterialSize), st.Span)
}

func TestMaterialFlagsCompiles(t *testing.T) {
	spirv, err := naga.CompileWithOptions(MaterialFlagsWGSL, naga.DefaultOptions())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(spirv), 4)
	assert.Equal(t, uint32(0x07230203), binary.LittleEndian.Uint32(spirv[:4]))

	module := lowerWGSL(t, MaterialFlagsWGSL)
	require.Len(t, module.EntryPoints, 1)
	assert.Equal(t, [3]uint32{FlagsWorkgroupSize, 1, 1}, module.EntryPoints[0].Workgroup)
}
