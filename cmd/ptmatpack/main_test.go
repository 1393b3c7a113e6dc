package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const materialsYAML = `
materials:
  - name: floor
    albedo: [0.8, 0.8, 0.8]
    smoothness: 0.3
  - name: lamp
    albedo: [1.0, 0.5, 0.25]
    metallic: 0.8
    smoothness: 0.2
    light: true
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "materials.yaml")
	out := filepath.Join(dir, "materials.bin")
	swatch := filepath.Join(dir, "materials.png")
	require.NoError(t, os.WriteFile(in, []byte(materialsYAML), 0o644))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-in", in, "-out", out, "-swatch", swatch, "-cell", "8", "-dump", "-debug"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	packed, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, packed, 2*core.MaterialSize)
	mats, err := core.DecodeMaterials(packed)
	require.NoError(t, err)
	assert.True(t, mats[1].LightSource())
	assert.False(t, mats[0].LightSource())

	f, err := os.Open(swatch)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	assert.Contains(t, stdout.String(), "loaded 2 materials")
	assert.Contains(t, stdout.String(), "lamp")
	assert.Contains(t, stdout.String(), "light=true (1)")
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(nil, &stdout, &stderr))
	assert.Error(t, run([]string{"-in", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr))
	assert.Error(t, run([]string{"-bogus"}, &stdout, &stderr))
}

func TestRunSkipsSwatchForEmptyLibrary(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.yaml")
	swatch := filepath.Join(dir, "empty.png")
	require.NoError(t, os.WriteFile(in, []byte("materials: []\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-in", in, "-swatch", swatch}, &stdout, &stderr))

	assert.Contains(t, stderr.String(), "WARN: no materials")
	_, err := os.Stat(swatch)
	assert.True(t, os.IsNotExist(err))
}
