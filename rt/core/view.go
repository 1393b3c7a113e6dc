package core

import (
	"encoding/binary"
	"unsafe"
)

var hostLittleEndian = func() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[0] == 1
}()

// MaterialsAsBytes returns the raw bytes of materials for a buffer upload
// without copying. The slice aliases materials, so writes to either side are
// visible through the other.
//
// Big-endian hosts get a little-endian copy from EncodeMaterials instead.
//
// This is the only place host memory is reinterpreted. Bytes coming back
// from a device or a file go through DecodeMaterials.
func MaterialsAsBytes(materials []PTMaterial) []byte {
	if len(materials) == 0 {
		return nil
	}
	if !hostLittleEndian {
		return EncodeMaterials(materials)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&materials[0])), len(materials)*MaterialSize)
}
