package gpu

import (
	"fmt"

	"github.com/gekko3d/ptmaterial"
	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// WebGPU rejects zero sized buffers; an empty table still binds this many bytes.
	MinBufferSize = 64

	DefaultMaterialHeadroom = 64 * core.MaterialSize
)

// bufferDevice is the part of a device MaterialBuffer needs.
type bufferDevice interface {
	CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error)
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error
	ReleaseBuffer(buf *wgpu.Buffer)
}

type wgpuDevice struct {
	device *wgpu.Device
}

func (d wgpuDevice) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	return d.device.CreateBuffer(desc)
}

func (d wgpuDevice) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error {
	return d.device.GetQueue().WriteBuffer(buf, offset, data)
}

func (d wgpuDevice) ReleaseBuffer(buf *wgpu.Buffer) {
	buf.Release()
}

// MaterialBuffer keeps a storage buffer of PTMaterial records on the device.
// Not safe for concurrent use; drive it from the render loop.
type MaterialBuffer struct {
	Buf *wgpu.Buffer

	// Count is the number of records written by the last successful Upload.
	Count int
	// Headroom is extra space reserved when the buffer grows.
	Headroom int

	dev    bufferDevice
	size   uint64
	logger ptmaterial.Logger
}

func NewMaterialBuffer(device *wgpu.Device, logger ptmaterial.Logger) (*MaterialBuffer, error) {
	return newMaterialBuffer(wgpuDevice{device: device}, logger)
}

func newMaterialBuffer(dev bufferDevice, logger ptmaterial.Logger) (*MaterialBuffer, error) {
	if err := core.VerifyLayout(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = ptmaterial.NewNopLogger()
	}
	return &MaterialBuffer{
		Headroom: DefaultMaterialHeadroom,
		dev:      dev,
		logger:   logger,
	}, nil
}

// bufferSize returns the allocation needed for dataLen bytes plus headroom,
// rounded up to 4 and never below MinBufferSize.
func bufferSize(dataLen, headroom int) uint64 {
	needed := uint64(dataLen + headroom)
	if needed%4 != 0 {
		needed += 4 - (needed % 4)
	}
	if needed < MinBufferSize {
		needed = MinBufferSize
	}
	return needed
}

// Upload writes materials at offset 0, growing the buffer when it is too
// small. It reports whether the buffer was recreated, in which case bind
// groups referencing the old buffer must be rebuilt. After an error Count is
// 0 and the buffer contents are undefined.
func (b *MaterialBuffer) Upload(materials []core.PTMaterial) (bool, error) {
	data := core.MaterialsAsBytes(materials)

	recreated := false
	if b.Buf == nil || b.size < bufferSize(len(data), 0) {
		size := bufferSize(len(data), b.Headroom)
		b.release()
		buf, err := b.dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "MaterialBuf",
			Size:  size,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
		})
		if err != nil {
			return false, fmt.Errorf("create material buffer (%d bytes): %w", size, err)
		}
		b.Buf = buf
		b.size = size
		recreated = true
		b.logger.Debugf("material buffer resized to %d bytes (%d records)", size, len(materials))
	}

	if len(data) > 0 {
		if err := b.dev.WriteBuffer(b.Buf, 0, data); err != nil {
			b.Count = 0
			return recreated, fmt.Errorf("write material buffer: %w", err)
		}
	}
	b.Count = len(materials)
	return recreated, nil
}

// BindGroupEntry binds the used part of the buffer, or MinBufferSize bytes
// when the table is empty. With no buffer allocated the entry has size 0.
func (b *MaterialBuffer) BindGroupEntry(binding uint32) wgpu.BindGroupEntry {
	if b.Buf == nil {
		return wgpu.BindGroupEntry{Binding: binding}
	}
	size := uint64(b.Count * core.MaterialSize)
	if size == 0 {
		size = MinBufferSize
	}
	return wgpu.BindGroupEntry{Binding: binding, Buffer: b.Buf, Size: size}
}

func (b *MaterialBuffer) release() {
	if b.Buf != nil {
		b.dev.ReleaseBuffer(b.Buf)
		b.Buf = nil
	}
	b.size = 0
	b.Count = 0
}

func (b *MaterialBuffer) Release() {
	b.release()
}
