package ptmaterial

import (
	"image"
	"image/color"

	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

const (
	SwatchColumns = 16
	swatchBase    = 4 // base pixels per material cell edge
)

// LightBorder outlines materials flagged as lights.
var LightBorder = color.RGBA{R: 255, G: 220, B: 0, A: 255}

func albedoColor(a mgl32.Vec3) color.RGBA {
	c := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: c(a[0]), G: c(a[1]), B: c(a[2]), A: 255}
}

// RenderSwatch draws one cell x cell square per material, SwatchColumns per
// row, filled with the albedo. Lights get a LightBorder ring. cell is rounded
// down to a multiple of 4 (minimum 4).
// No materials gives a 0x0 image, which image/png refuses to encode.
func RenderSwatch(materials []core.PTMaterial, cell int) *image.RGBA {
	if cell < swatchBase {
		cell = swatchBase
	}
	cell -= cell % swatchBase

	cols := min(len(materials), SwatchColumns)
	rows := (len(materials) + SwatchColumns - 1) / SwatchColumns
	if cols == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	base := image.NewRGBA(image.Rect(0, 0, cols*swatchBase, rows*swatchBase))
	for i, m := range materials {
		x0 := (i % SwatchColumns) * swatchBase
		y0 := (i / SwatchColumns) * swatchBase
		fill := albedoColor(m.Albedo)
		for y := 0; y < swatchBase; y++ {
			for x := 0; x < swatchBase; x++ {
				edge := x == 0 || y == 0 || x == swatchBase-1 || y == swatchBase-1
				if edge && m.LightSource() {
					base.SetRGBA(x0+x, y0+y, LightBorder)
				} else {
					base.SetRGBA(x0+x, y0+y, fill)
				}
			}
		}
	}

	scale := cell / swatchBase
	out := image.NewRGBA(image.Rect(0, 0, base.Bounds().Dx()*scale, base.Bounds().Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return out
}
