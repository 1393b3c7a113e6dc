package ptmaterial

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_AddAndLookup(t *testing.T) {
	lib := NewLibrary()
	assert.False(t, lib.Dirty())

	floor, err := lib.Add("floor", core.NewMaterial(mgl32.Vec3{0.5, 0.5, 0.5}, 0, 0.4, false))
	require.NoError(t, err)
	lamp, err := lib.Add("lamp", core.NewLight(mgl32.Vec3{1, 1, 1}))
	require.NoError(t, err)
	assert.NotEqual(t, floor, lamp)
	assert.True(t, lib.Dirty())

	idx, ok := lib.Index(lamp)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "lamp", lib.Name(lamp))

	h, ok := lib.Lookup("floor")
	require.True(t, ok)
	assert.Equal(t, floor, h)

	_, ok = lib.Lookup("missing")
	assert.False(t, ok)

	_, err = lib.Add("floor", core.PTMaterial{})
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = lib.Add("", core.PTMaterial{})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestLibrary_SetTracksDirty(t *testing.T) {
	lib := NewLibrary()
	h, err := lib.Add("a", core.PTMaterial{})
	require.NoError(t, err)
	lib.ClearDirty()

	require.NoError(t, lib.Set(h, core.PTMaterial{}))
	assert.False(t, lib.Dirty(), "unchanged value should not mark dirty")

	require.NoError(t, lib.Set(h, core.PTMaterial{IsLight: 1}))
	assert.True(t, lib.Dirty())
	m, ok := lib.Get(h)
	require.True(t, ok)
	assert.True(t, m.LightSource())

	assert.ErrorIs(t, lib.Set(Handle{}, core.PTMaterial{}), ErrUnknownHandle)
	_, ok = lib.Get(Handle{})
	assert.False(t, ok)
}

func TestLibrary_Pack(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.Add("zero", core.PTMaterial{})
	require.NoError(t, err)
	_, err = lib.Add("lamp", core.NewMaterial(mgl32.Vec3{1.0, 0.5, 0.25}, 0.8, 0.2, true))
	require.NoError(t, err)

	packed := lib.Pack()
	require.Len(t, packed, 2*core.MaterialSize)
	assert.Equal(t, make([]byte, core.MaterialSize), packed[:core.MaterialSize])

	decoded, err := core.DecodeMaterials(packed)
	require.NoError(t, err)
	assert.Equal(t, lib.Materials(), decoded)
}

func TestLibrary_ConcurrentAdd(t *testing.T) {
	lib := NewLibrary()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := core.NewMaterial(mgl32.Vec3{float32(i), 0, 0}, 0, 0, i%2 == 0)
			_, err := lib.Add(fmt.Sprintf("m%d", i), m)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 32, lib.Len())
	for i, name := range lib.Names() {
		h, ok := lib.Lookup(name)
		require.True(t, ok)
		idx, _ := lib.Index(h)
		assert.Equal(t, i, idx)
	}
}

func TestClamp(t *testing.T) {
	m := Clamp(core.PTMaterial{
		Albedo:     mgl32.Vec3{-0.5, 0.5, 3},
		Metallic:   2,
		Smoothness: -1,
		IsLight:    -7,
	})
	assert.Equal(t, mgl32.Vec3{0, 0.5, 1}, m.Albedo)
	assert.Equal(t, float32(1), m.Metallic)
	assert.Equal(t, float32(0), m.Smoothness)
	assert.Equal(t, int32(-7), m.IsLight, "flag is left alone")
}
