// Package lz4mt implements a multi-threaded encoder/decoder for the LZ4
// frame format: the frame state machine and parallel block pipeline that
// sit between an LZ4 block codec and a caller's byte stream.
//
// Compress and Decompress drive that pipeline over a Context built with
// NewContext. Block-level compression is delegated to a BlockCodec (the
// default wraps github.com/pierrec/lz4/v4) and block dispatch to a
// WorkerPool (the default is a small bounded goroutine pool), both of
// which callers may replace.
package lz4mt

import (
	"github.com/lz4mt/lz4mt/internal/blockcodec"
	"github.com/lz4mt/lz4mt/internal/descriptor"
	"github.com/lz4mt/lz4mt/internal/result"
)

const (
	// MagicNumber is the little-endian marker opening every LZ4 frame.
	MagicNumber uint32 = 0x184D2204

	// SkippableMagicMin and SkippableMagicMax bound the range of magic
	// numbers reserved for skippable frames.
	SkippableMagicMin uint32 = 0x184D2A50
	SkippableMagicMax uint32 = 0x184D2A5F
)

// Result is the enumerated outcome of a Compress or Decompress call.
type Result = result.Code

const (
	OK                           = result.OK
	Error                        = result.Error
	InvalidMagicNumber           = result.InvalidMagicNumber
	InvalidHeader                = result.InvalidHeader
	PresetDictionaryNotSupported = result.PresetDictionaryNotSupported
	BlockDependenceNotSupported  = result.BlockDependenceNotSupported
	InvalidVersion               = result.InvalidVersion
	InvalidHeaderChecksum        = result.InvalidHeaderChecksum
	InvalidBlockMaximumSize      = result.InvalidBlockMaximumSize
	CannotWriteHeader            = result.CannotWriteHeader
	CannotWriteEOS               = result.CannotWriteEOS
	CannotWriteStreamChecksum    = result.CannotWriteStreamChecksum
	CannotReadBlockSize          = result.CannotReadBlockSize
	CannotReadBlockData          = result.CannotReadBlockData
	CannotReadBlockChecksum      = result.CannotReadBlockChecksum
	CannotReadStreamChecksum     = result.CannotReadStreamChecksum
	StreamChecksumMismatch       = result.StreamChecksumMismatch
	BlockChecksumMismatch        = result.BlockChecksumMismatch
	DecompressFail               = result.DecompressFail
)

// BlockIdx selects the uncompressed capacity of a block.
type BlockIdx = descriptor.BlockIdx

const (
	BlockIdx64KB  = descriptor.BlockIdx64KB
	BlockIdx256KB = descriptor.BlockIdx256KB
	BlockIdx1MB   = descriptor.BlockIdx1MB
	BlockIdx4MB   = descriptor.BlockIdx4MB
)

// Flg, Bd and StreamDescriptor are the parsed/validated frame header value
// types; see internal/descriptor for layout and validation rules.
type (
	Flg              = descriptor.Flg
	Bd               = descriptor.Bd
	StreamDescriptor = descriptor.StreamDescriptor
)

// Level selects LZ4 block compression effort; see internal/blockcodec.
type Level = blockcodec.Level

const (
	Fast Level = blockcodec.Fast
	HC1  Level = blockcodec.HC1
	HC9  Level = blockcodec.HC9
)

// BlockCodec pairs the compress/decompress callbacks treated as external
// collaborators in this core; see internal/blockcodec for the default.
type BlockCodec = blockcodec.Codec

// WorkerPool dispatches block tasks; Submit must eventually run task exactly
// once. The default implementation (internal/workerpool) is a bounded,
// reusable goroutine pool; callers may substitute any other pool shaped this
// way, such as github.com/gammazero/workerpool.
type WorkerPool interface {
	Submit(task func())
}
