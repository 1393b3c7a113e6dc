package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrShortBuffer = errors.New("buffer shorter than one material")
	ErrBadStride   = errors.New("buffer length is not a multiple of the material stride")
)

// ToBytes packs the material little-endian, 24 bytes.
func (m PTMaterial) ToBytes() []byte {
	buf := make([]byte, MaterialSize)
	m.PutBytes(buf)
	return buf
}

// PutBytes writes the material into dst[0:24]. It panics if dst is shorter.
func (m PTMaterial) PutBytes(dst []byte) {
	_ = dst[MaterialSize-1]

	// Albedo (3 x f32)
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(m.Albedo.X()))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(m.Albedo.Y()))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(m.Albedo.Z()))

	binary.LittleEndian.PutUint32(dst[OffsetMetallic:OffsetMetallic+4], math.Float32bits(m.Metallic))
	binary.LittleEndian.PutUint32(dst[OffsetSmoothness:OffsetSmoothness+4], math.Float32bits(m.Smoothness))
	binary.LittleEndian.PutUint32(dst[OffsetIsLight:OffsetIsLight+4], uint32(m.IsLight))
}

// MaterialFromBytes decodes the first 24 bytes of b.
func MaterialFromBytes(b []byte) (PTMaterial, error) {
	if len(b) < MaterialSize {
		return PTMaterial{}, fmt.Errorf("decode material: %w (%d bytes)", ErrShortBuffer, len(b))
	}
	var m PTMaterial
	m.Albedo[0] = math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	m.Albedo[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	m.Albedo[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))
	m.Metallic = math.Float32frombits(binary.LittleEndian.Uint32(b[OffsetMetallic : OffsetMetallic+4]))
	m.Smoothness = math.Float32frombits(binary.LittleEndian.Uint32(b[OffsetSmoothness : OffsetSmoothness+4]))
	m.IsLight = int32(binary.LittleEndian.Uint32(b[OffsetIsLight : OffsetIsLight+4]))
	return m, nil
}

// EncodeMaterials packs materials back to back with a 24 byte stride.
func EncodeMaterials(materials []PTMaterial) []byte {
	buf := make([]byte, len(materials)*MaterialSize)
	for i := range materials {
		materials[i].PutBytes(buf[i*MaterialSize:])
	}
	return buf
}

// DecodeMaterials is the inverse of EncodeMaterials.
func DecodeMaterials(b []byte) ([]PTMaterial, error) {
	if len(b)%MaterialSize != 0 {
		return nil, fmt.Errorf("decode materials: %w (%d bytes)", ErrBadStride, len(b))
	}
	out := make([]PTMaterial, len(b)/MaterialSize)
	for i := range out {
		m, err := MaterialFromBytes(b[i*MaterialSize:])
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}
