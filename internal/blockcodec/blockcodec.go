// Package blockcodec adapts the per-block LZ4 compressor/decompressor that
// the frame core treats as an external collaborator (§1, §4.3). The default
// implementation wraps github.com/pierrec/lz4/v4, the same block codec the
// teacher's non-cgo build (internal/pkg/compress) uses.
package blockcodec

import "github.com/pierrec/lz4/v4"

// Codec compresses and decompresses single blocks. Compress returns the
// number of bytes written to dst, or an error if dst was too small or the
// compressor otherwise failed; callers treat a non-nil error as equivalent
// to an incompressible block and fall back to storing raw data. Decompress
// returns the number of decompressed bytes written to dst.
type Codec interface {
	Compress(src, dst []byte) (int, error)
	Decompress(src, dst []byte) (int, error)
	CompressBound(srcSize int) int
}

// Level selects an LZ4 compression effort; 0 is the fast default, 1..9 map
// onto the HC (high compression) levels.
type Level int

const (
	Fast Level = 0
	HC1  Level = 1
	HC9  Level = 9
)

// Default returns the pierrec/lz4/v4-backed Codec for the given level.
func Default(level Level) Codec {
	if level <= Fast {
		return fastCodec{}
	}
	l := int(level)
	if l > 9 {
		l = 9
	}
	return hcCodec{level: lz4Level(l)}
}

type fastCodec struct{}

func (fastCodec) Compress(src, dst []byte) (int, error) {
	return lz4.CompressBlock(src, dst, nil)
}

func (fastCodec) Decompress(src, dst []byte) (int, error) {
	return lz4.UncompressBlock(src, dst)
}

func (fastCodec) CompressBound(srcSize int) int {
	return lz4.CompressBlockBound(srcSize)
}

type hcCodec struct {
	level lz4.CompressionLevel
}

func (c hcCodec) Compress(src, dst []byte) (int, error) {
	return lz4.CompressBlockHC(src, dst, c.level, nil, nil)
}

func (hcCodec) Decompress(src, dst []byte) (int, error) {
	return lz4.UncompressBlock(src, dst)
}

func (hcCodec) CompressBound(srcSize int) int {
	return lz4.CompressBlockBound(srcSize)
}

func lz4Level(l int) lz4.CompressionLevel {
	switch l {
	case 0:
		return lz4.Fast
	case 1:
		return lz4.Level1
	case 2:
		return lz4.Level2
	case 3:
		return lz4.Level3
	case 4:
		return lz4.Level4
	case 5:
		return lz4.Level5
	case 6:
		return lz4.Level6
	case 7:
		return lz4.Level7
	case 8:
		return lz4.Level8
	default:
		return lz4.Level9
	}
}
