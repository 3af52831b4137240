package lz4mt

import (
	"io"
	"runtime"
)

// Mode selects whether block processing runs sequentially in the caller's
// goroutine or is fanned out across a WorkerPool.
type Mode uint8

const (
	// Parallel dispatches each block to the WorkerPool.
	Parallel Mode = iota
	// Sequential runs every block inline, in producer order.
	Sequential
)

// ProgressFunc is invoked at each block boundary with the byte offsets
// (counted from the first byte the Context read or wrote, across all frames)
// of the source and destination streams. It is
// called from whichever goroutine advances past its order gate, but always
// in block order.
type ProgressFunc func(srcOffset, dstOffset int64)

// SkippableFunc handles a skippable frame encountered while decompressing.
// nibble is the low 4 bits of the frame's magic number; the callback must
// consume exactly length bytes from rd. A negative return is an error.
type SkippableFunc func(rd io.Reader, nibble uint8, length uint32) (int, error)

// Option configures a Context returned by NewContext.
type Option func(*config)

type config struct {
	mode           Mode
	numWorkers     int
	level          Level
	blockChecksum  bool
	streamChecksum bool
	blockSizeIdx   BlockIdx
	contentSize    *uint64
	readOffset     int64
	pool           WorkerPool
	codec          BlockCodec
	progress       ProgressFunc
	skipFn         SkippableFunc
}

func defaultConfig() config {
	return config{
		mode:         Parallel,
		numWorkers:   1,
		level:        Fast,
		blockSizeIdx: BlockIdx4MB,
		progress:     func(int64, int64) {},
	}
}

// WithParallelism sets how many blocks may be in flight concurrently.
//
//	n <= 0   process sequentially in the caller's goroutine
//	n >  0   dispatch to a WorkerPool bounded at n workers (NumCPU if n
//	         exceeds it)
func WithParallelism(n int) Option {
	return func(c *config) {
		if n <= 0 {
			c.mode = Sequential
			c.numWorkers = 1
			return
		}
		c.mode = Parallel
		if numCPU := runtime.NumCPU(); n > numCPU {
			n = numCPU
		}
		c.numWorkers = n
	}
}

// WithLevel sets the compression effort used by the default BlockCodec.
// Ignored on decode, and ignored entirely when WithBlockCodec supplies a
// custom codec.
func WithLevel(lvl Level) Option {
	return func(c *config) { c.level = lvl }
}

// WithBlockChecksum enables per-block xxHash32 checksums on encode. Defaults
// to disabled. Ignored on decode, where block checksums are verified whenever
// the frame descriptor declares them.
func WithBlockChecksum(enable bool) Option {
	return func(c *config) { c.blockChecksum = enable }
}

// WithStreamChecksum enables the trailing whole-stream xxHash32 checksum on
// encode. Defaults to disabled. Ignored on decode, where the stream checksum
// is verified whenever the frame descriptor declares it.
func WithStreamChecksum(enable bool) Option {
	return func(c *config) { c.streamChecksum = enable }
}

// WithBlockSize sets the write-side block maximum size. Ignored on decode,
// where the block size is read from the frame descriptor. Invalid indexes
// fall back to BlockIdx4MB.
func WithBlockSize(idx BlockIdx) Option {
	return func(c *config) {
		if !idx.Valid() {
			idx = BlockIdx4MB
		}
		c.blockSizeIdx = idx
	}
}

// WithContentSize embeds the total uncompressed length in the frame header
// on encode. Ignored on decode.
func WithContentSize(sz uint64) Option {
	return func(c *config) { c.contentSize = &sz }
}

// WithReadOffset fast-forwards the input stream to the given absolute byte
// offset immediately after the first frame's header is parsed, via Seek when
// the reader supports it and by discarding bytes otherwise. It applies only
// to the first of any consecutive frames decoded by one call. Ignored on
// encode.
func WithReadOffset(offset int64) Option {
	return func(c *config) { c.readOffset = offset }
}

// WithWorkerPool supplies a custom dispatcher for parallel block processing,
// overriding the default bounded goroutine pool.
func WithWorkerPool(pool WorkerPool) Option {
	return func(c *config) { c.pool = pool }
}

// WithBlockCodec overrides the default pierrec/lz4/v4-backed block codec.
func WithBlockCodec(codec BlockCodec) Option {
	return func(c *config) { c.codec = codec }
}

// WithProgress registers a callback invoked at each block boundary.
func WithProgress(cb ProgressFunc) Option {
	return func(c *config) { c.progress = cb }
}

// WithSkippableCallback registers the handler invoked when a skippable frame
// is encountered during decode. Without one, skippable frame payloads are
// read and discarded.
func WithSkippableCallback(cb SkippableFunc) Option {
	return func(c *config) { c.skipFn = cb }
}
