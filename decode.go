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

// Decompress runs the frame decoder (§4.5) over ctx, consuming consecutive
// frames until EOF. If outSD is non-nil, it receives the descriptor of the
// last frame decoded.
func Decompress(ctx *Context, outSD *StreamDescriptor) (Result, error) {
	for {
		magicBuf := make([]byte, 4)
		n, err := ctx.readFull(magicBuf)
		if n == 0 && err == io.EOF {
			// Clean EOF between frames: nothing read, nothing to report.
			return ctx.latch.Code(), ctx.latch.Err()
		}
		if err != nil || n != 4 {
			ctx.latch.Set(result.InvalidHeader)
			return ctx.latch.Code(), ctx.latch.Err()
		}

		magic := descriptor.LoadU32(magicBuf)

		if magic >= SkippableMagicMin && magic <= SkippableMagicMax {
			lenBuf := make([]byte, 4)
			if n, err := ctx.readFull(lenBuf); err != nil || n != 4 {
				ctx.latch.Set(result.InvalidHeader)
				return ctx.latch.Code(), ctx.latch.Err()
			}
			length := descriptor.LoadU32(lenBuf)
			nibble := uint8(magic & 0xF)
			if m, serr := ctx.skippable(nibble, length); serr != nil || m < 0 {
				ctx.latch.Set(result.InvalidHeader)
				return ctx.latch.Code(), ctx.latch.Err()
			}
			continue
		}

		if magic != MagicNumber {
			_ = ctx.seekBack(4)
			ctx.latch.Set(result.InvalidMagicNumber)
			return ctx.latch.Code(), ctx.latch.Err()
		}

		sd, code := readDescriptor(ctx)
		if code != result.OK {
			ctx.latch.Set(code)
			return ctx.latch.Code(), ctx.latch.Err()
		}
		if outSD != nil {
			*outSD = sd
		}

		if ctx.cfg.readOffset > ctx.srcOffset {
			if err := ctx.skipForward(ctx.cfg.readOffset - ctx.srcOffset); err != nil {
				ctx.latch.Set(result.InvalidHeader)
				return ctx.latch.Code(), ctx.latch.Err()
			}
		}
		ctx.cfg.readOffset = 0 // applies only to the first frame

		if err := decodeFrameBody(ctx, sd); err != nil {
			return ctx.latch.Code(), ctx.latch.Err()
		}

		if ctx.latch.IsError() {
			return ctx.latch.Code(), ctx.latch.Err()
		}
	}
}

// decodeFrameBody runs the block loop and trailing checksum of §4.5 steps
// 5-8 for one already-validated frame descriptor.
func decodeFrameBody(ctx *Context, sd StreamDescriptor) error {
	var (
		blockMax  = sd.Bd.BlockMaximumSize.Size()
		hasBlkChk = sd.Flg.BlockChecksum
		digester  *xxh32.Digester
		srcPool   = mempool.New(ctx.poolSize(), blockMax)
		dstPool   = mempool.New(ctx.poolSize(), blockMax)
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

		szBuf := make([]byte, 4)
		n, err := ctx.readFull(szBuf)
		if err != nil || n != 4 {
			ctx.setError(result.CannotReadBlockSize)
			break
		}

		blockSz := descriptor.DataBlockSize(descriptor.LoadU32(szBuf))
		if blockSz.EOS() {
			break
		}

		incompressible := blockSz.Incompressible()
		srcSize := blockSz.Size()

		if srcSize > blockMax {
			ctx.setError(result.CannotReadBlockSize)
			break
		}

		srcBuf, err := srcPool.Get(context.Background())
		if err != nil {
			ctx.setError(result.Error)
			break
		}
		srcBuf = srcBuf[:srcSize]

		if n, err := ctx.readFull(srcBuf); err != nil || n != srcSize {
			srcPool.Put(srcBuf)
			ctx.setError(result.CannotReadBlockData)
			break
		}

		var blockChecksum uint32
		if hasBlkChk {
			chkBuf := make([]byte, 4)
			if n, err := ctx.readFull(chkBuf); err != nil || n != 4 {
				srcPool.Put(srcBuf)
				ctx.setError(result.CannotReadBlockChecksum)
				break
			}
			blockChecksum = descriptor.LoadU32(chkBuf)
		}

		gate := make(chan struct{})
		myPrev := prevGate

		ctx.run(&wg, func() {
			decodeBlock(ctx, srcBuf, incompressible, hasBlkChk, blockChecksum, myPrev, gate, srcPool, dstPool, digester)
		})

		prevGate = gate
	}

	wg.Wait()

	if ctx.latch.IsError() {
		return ctx.latch.Err()
	}

	if sd.Flg.StreamChecksum {
		trailer := make([]byte, 4)
		n, err := ctx.readFull(trailer)
		if err != nil || n != 4 {
			ctx.setError(result.CannotReadStreamChecksum)
			return ctx.latch.Err()
		}
		if descriptor.LoadU32(trailer) != digester.Digest() {
			ctx.setError(result.StreamChecksumMismatch)
			return ctx.latch.Err()
		}
	}

	return nil
}

// decodeBlock is the per-block worker body of §4.5 step 6.
func decodeBlock(ctx *Context, srcBuf []byte, incompressible, hasBlkChk bool, blockChecksum uint32, prevGate, gate chan struct{}, srcPool, dstPool *mempool.Pool, digester *xxh32.Digester) {
	defer close(gate)
	defer srcPool.Put(srcBuf)

	if ctx.quit.Load() {
		return
	}

	var hashDone chan struct{}
	var computedHash uint32
	if hasBlkChk {
		hashDone = make(chan struct{})
		go func() {
			computedHash = xxh32.Checksum(srcBuf)
			close(hashDone)
		}()
	}

	var (
		outBuf []byte
		dstBuf []byte
	)

	if incompressible {
		outBuf = srcBuf
	} else {
		var err error
		dstBuf, err = dstPool.Get(context.Background())
		if err != nil {
			ctx.setError(result.Error)
			if prevGate != nil {
				<-prevGate
			}
			return
		}
		n, derr := ctx.codec().Decompress(srcBuf, dstBuf)
		if derr != nil || n < 0 {
			ctx.setError(result.DecompressFail)
			dstPool.Put(dstBuf)
			if prevGate != nil {
				<-prevGate
			}
			return
		}
		outBuf = dstBuf[:n]
	}

	if prevGate != nil {
		<-prevGate
	}

	if ctx.quit.Load() {
		if !incompressible {
			dstPool.Put(dstBuf)
		}
		return
	}

	if digester != nil {
		digester.Update(outBuf)
	}

	writeErr := ctx.writeFull(outBuf)

	if !incompressible {
		dstPool.Put(dstBuf)
	}

	if writeErr != nil {
		ctx.setError(result.Error)
		return
	}

	ctx.reportProgress()

	if hasBlkChk {
		<-hashDone
		if computedHash != blockChecksum {
			ctx.setError(result.BlockChecksumMismatch)
		}
	}
}
