package lz4mt

import (
	"context"
	"io"
	"sync"

	"github.com/lz4mt/lz4mt/internal/descriptor"
	"github.com/lz4mt/lz4mt/internal/mempool"
	"github.com/lz4mt/lz4mt/internal/result"
	"github.com/lz4mt/lz4mt/internal/xxh32"
)

// NewStreamDescriptor builds the StreamDescriptor Compress should use for
// ctx, from the block-size/checksum/content-size options ctx was built
// with. Most callers pass this straight to Compress; it is exposed
// separately so callers needing an unusual descriptor can start from it and
// override fields before encoding.
func (ctx *Context) NewStreamDescriptor() StreamDescriptor {
	return buildStreamDescriptor(ctx.cfg)
}

// Compress runs the frame encoder (§4.4) over ctx: it validates sd, emits
// the frame header, fans block compression out across ctx's worker pool (or
// runs inline in sequential mode) while preserving output order, then writes
// the EOS marker and optional trailing stream checksum.
func Compress(ctx *Context, sd StreamDescriptor) (Result, error) {
	if code := sd.Validate(); code != result.OK {
		ctx.latch.Set(code)
		return ctx.latch.Code(), ctx.latch.Err()
	}

	if err := writeHeader(ctx, sd); err != nil {
		ctx.setError(result.CannotWriteHeader)
		return ctx.latch.Code(), ctx.latch.Err()
	}

	var (
		blockMax  = sd.Bd.BlockMaximumSize.Size()
		hasBlkChk = sd.Flg.BlockChecksum
		digester  *xxh32.Digester
		pool      = mempool.New(ctx.poolSize(), blockMax)
		wg        sync.WaitGroup
		prevGate  chan struct{}
	)

	if sd.Flg.StreamChecksum {
		digester = xxh32.NewDigester()
	}

	for {
		if ctx.quit.Load() {
			break
		}

		buf, err := pool.Get(context.Background())
		if err != nil {
			ctx.setError(result.Error)
			break
		}

		n, rerr := ctx.readFull(buf)
		if n == 0 {
			pool.Put(buf)
			if rerr != nil && rerr != io.EOF {
				ctx.setError(result.Error)
			}
			break
		}

		src := buf[:n]
		gate := make(chan struct{})
		myPrev := prevGate

		ctx.run(&wg, func() {
			encodeBlock(ctx, src, myPrev, gate, pool, digester, hasBlkChk)
		})

		prevGate = gate

		if rerr == io.EOF || (rerr != nil && rerr != io.ErrUnexpectedEOF) {
			break
		}
	}

	wg.Wait()

	if ctx.latch.IsError() {
		return ctx.latch.Code(), ctx.latch.Err()
	}

	if err := writeU32(ctx, 0); err != nil {
		ctx.setError(result.CannotWriteEOS)
		return ctx.latch.Code(), ctx.latch.Err()
	}

	if digester != nil {
		if err := writeU32(ctx, digester.Digest()); err != nil {
			ctx.setError(result.CannotWriteStreamChecksum)
		}
	}

	return ctx.latch.Code(), ctx.latch.Err()
}

// encodeBlock is the per-block worker body of §4.4 step 4. It always closes
// gate exactly once, even on an early return, so the next block's wait on
// its predecessor never deadlocks.
func encodeBlock(ctx *Context, src []byte, prevGate, gate chan struct{}, pool *mempool.Pool, digester *xxh32.Digester, hasBlkChk bool) {
	defer close(gate)
	defer pool.Put(src)

	if ctx.quit.Load() {
		return
	}

	dst := make([]byte, len(src))
	n, cerr := ctx.codec().Compress(src, dst)

	incompressible := cerr != nil || n <= 0
	cData := dst[:n]
	if incompressible {
		cData = src
	}

	var blkHash uint32
	var hashDone chan struct{}
	if hasBlkChk {
		hashDone = make(chan struct{})
		go func() {
			blkHash = xxh32.Checksum(cData)
			close(hashDone)
		}()
	}

	if prevGate != nil {
		<-prevGate
	}

	if ctx.quit.Load() {
		return
	}

	if digester != nil {
		digester.Update(src)
	}

	blockSz := descriptor.NewDataBlockSize(len(cData), incompressible)

	if err := writeU32(ctx, uint32(blockSz)); err != nil {
		ctx.setError(result.Error)
		return
	}
	if err := ctx.writeFull(cData); err != nil {
		ctx.setError(result.Error)
		return
	}

	ctx.reportProgress()

	if hasBlkChk {
		<-hashDone
		if err := writeU32(ctx, blkHash); err != nil {
			ctx.setError(result.Error)
		}
	}
}

func writeU32(ctx *Context, v uint32) error {
	var b [4]byte
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	return ctx.writeFull(b[:])
}
