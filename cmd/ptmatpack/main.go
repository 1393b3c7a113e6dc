// Command ptmatpack converts a material definitions file (YAML) or a
// MagicaVoxel palette (.vox) into a packed PTMaterial buffer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gekko3d/ptmaterial"
	"github.com/gekko3d/ptmaterial/rt/core"
	"github.com/gekko3d/ptmaterial/vox"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ptmatpack:", err)
		os.Exit(1)
	}
}

func loadLibrary(path string) (*ptmaterial.Library, error) {
	if strings.EqualFold(filepath.Ext(path), ".vox") {
		pal, err := vox.ReadPaletteFile(path)
		if err != nil {
			return nil, err
		}
		return ptmaterial.LibraryFromVoxPalette(pal)
	}
	return ptmaterial.LoadLibraryFile(path)
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ptmatpack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "Material definitions (.yaml) or MagicaVoxel palette (.vox)")
	out := fs.String("out", "", "Write the packed buffer (24 bytes per material) here")
	swatch := fs.String("swatch", "", "Write a PNG preview of the materials here")
	cell := fs.Int("cell", 16, "Swatch cell size in pixels")
	dump := fs.Bool("dump", false, "Print decoded records")
	debug := fs.Bool("debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	logger := ptmaterial.NewWriterLogger(stdout, stderr, "ptmatpack", *debug)
	if err := core.VerifyLayout(); err != nil {
		return err
	}

	lib, err := loadLibrary(*in)
	if err != nil {
		return err
	}
	packed := lib.Pack()
	logger.Infof("loaded %d materials from %s (%d bytes packed)", lib.Len(), *in, len(packed))

	if *out != "" {
		if err := os.WriteFile(*out, packed, 0o644); err != nil {
			return err
		}
		logger.Debugf("wrote %s", *out)
	}

	if *swatch != "" && lib.Len() == 0 {
		logger.Warnf("no materials in %s, skipping swatch %s", *in, *swatch)
	} else if *swatch != "" {
		if err := writeSwatch(*swatch, lib.Materials(), *cell); err != nil {
			return err
		}
		logger.Debugf("wrote %s", *swatch)
	}

	if *dump {
		decoded, err := core.DecodeMaterials(packed)
		if err != nil {
			return err
		}
		names := lib.Names()
		for i, m := range decoded {
			fmt.Fprintf(stdout, "%3d %-16s albedo=(%.4g, %.4g, %.4g) metallic=%.4g smoothness=%.4g light=%t (%d)\n",
				i, names[i], m.Albedo[0], m.Albedo[1], m.Albedo[2], m.Metallic, m.Smoothness, m.LightSource(), m.IsLight)
		}
	}
	return nil
}

func writeSwatch(path string, materials []core.PTMaterial, cell int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, ptmaterial.RenderSwatch(materials, cell)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
