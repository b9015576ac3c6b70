package platform

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/nerissimo/game/internal/component"
)

// Digest fingerprints a pixel buffer so presenters can skip unchanged frames.
func Digest(buf *component.PixelBuffer) uint64 {
	if buf == nil {
		return 0
	}
	d := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[:4], uint32(buf.Rows))
	binary.LittleEndian.PutUint32(dims[4:], uint32(buf.Cols))
	_, _ = d.Write(dims[:])
	_, _ = d.Write(buf.Pix)
	return d.Sum64()
}
