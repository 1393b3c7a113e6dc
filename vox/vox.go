// Package vox reads the palette and material chunks of MagicaVoxel .vox
// files. Geometry chunks are skipped.
package vox

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	MagicNumber = "VOX "

	// MATL _type values
	TypeDiffuse = "_diffuse"
	TypeMetal   = "_metal"
	TypeEmit    = "_emit"
	TypeGlass   = "_glass"
)

// Largest chunk bodies read into memory; other chunks are skipped.
const (
	maxRGBASize = 256 * 4
	maxMATLSize = 64 << 10
)

var (
	ErrNotVox    = errors.New("not a valid VOX file")
	ErrMalformed = errors.New("malformed VOX chunk")
)

type Colors [256][4]byte // RGBA colors

// Material is a MATL chunk. Property values are kept as the raw strings the
// file stores them as.
type Material struct {
	ID       int
	Property map[string]string
}

// Float parses a numeric property.
func (m Material) Float(key string) (float32, bool) {
	s, ok := m.Property[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func (m Material) Type() string {
	return m.Property["_type"]
}

type Palette struct {
	Version   int
	Colors    Colors
	Materials map[int]Material
}

func ReadPaletteFile(filename string) (*Palette, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadPalette(bufio.NewReader(file))
}

func ReadPalette(r io.Reader) (*Palette, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotVox, err)
	}
	if string(magic[:]) != MagicNumber {
		return nil, ErrNotVox
	}

	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}

	pal := &Palette{
		Version:   int(version),
		Colors:    defaultColors(),
		Materials: make(map[int]Material),
	}

	// MAIN has no content of its own, so children are read as a flat list.
	for {
		var header [12]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: chunk header: %v", ErrMalformed, err)
		}
		chunkID := string(header[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(header[4:8]))

		switch chunkID {
		case "RGBA", "MATL":
			limit := int64(maxMATLSize)
			if chunkID == "RGBA" {
				limit = maxRGBASize
			}
			if chunkSize > limit {
				return nil, fmt.Errorf("%w: %s chunk of %d bytes exceeds %d", ErrMalformed, chunkID, chunkSize, limit)
			}
			chunkData := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, chunkData); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, chunkID, err)
			}
			if chunkID == "RGBA" {
				readColors(&pal.Colors, chunkData)
				continue
			}
			mat, err := parseMaterial(chunkData)
			if err != nil {
				return nil, err
			}
			pal.Materials[mat.ID] = mat
		default:
			if _, err := io.CopyN(io.Discard, r, chunkSize); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, chunkID, err)
			}
		}
	}

	return pal, nil
}

// readColors stores RGBA entry i at palette index i+1; index 0 is empty.
func readColors(colors *Colors, data []byte) {
	for i := 0; i < 255; i++ {
		offset := i * 4
		if offset+3 >= len(data) {
			break
		}
		copy(colors[i+1][:], data[offset:offset+4])
	}
}

func parseMaterial(data []byte) (Material, error) {
	mat := Material{Property: make(map[string]string)}

	readU32 := func() (int, error) {
		if len(data) < 4 {
			return 0, fmt.Errorf("%w: MATL truncated", ErrMalformed)
		}
		v := int(binary.LittleEndian.Uint32(data[:4]))
		data = data[4:]
		return v, nil
	}
	readString := func() (string, error) {
		n, err := readU32()
		if err != nil {
			return "", err
		}
		if n < 0 || n > len(data) {
			return "", fmt.Errorf("%w: MATL string length %d", ErrMalformed, n)
		}
		s := string(data[:n])
		data = data[n:]
		return s, nil
	}

	id, err := readU32()
	if err != nil {
		return mat, err
	}
	mat.ID = id

	count, err := readU32()
	if err != nil {
		return mat, err
	}
	for i := 0; i < count; i++ {
		key, err := readString()
		if err != nil {
			return mat, err
		}
		value, err := readString()
		if err != nil {
			return mat, err
		}
		mat.Property[key] = value
	}

	return mat, nil
}

func defaultColors() Colors {
	var colors Colors
	for i := range colors {
		colors[i] = [4]uint8{255, 255, 255, 255} // white as fallback
	}
	return colors
}
