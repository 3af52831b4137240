package lz4mt

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/lz4mt/lz4mt/internal/blockcodec"
	"github.com/lz4mt/lz4mt/internal/result"
	"github.com/lz4mt/lz4mt/internal/workerpool"
)

// errCannotSeek is returned internally by seekBack when the underlying
// reader is not an io.Seeker; callers treat it as "leave the bytes unread",
// which is already best-effort on a non-seekable stream.
var errCannotSeek = errors.New("lz4mt: reader does not support seeking back")

// Context bundles the I/O and block-codec callbacks, execution mode and
// shared fault latch for one Compress or Decompress call. Build one with
// NewContext over an io.Reader/io.Writer pair; Context itself never retries
// or buffers beyond what the frame protocol requires.
type Context struct {
	rd     io.Reader
	wr     io.Writer
	seeker io.Seeker

	cfg  config
	pool WorkerPool

	latch result.Latch
	quit  atomic.Bool

	srcOffset int64
	dstOffset int64
}

// NewContext builds a Context that reads frames from rd and writes frames
// to wr. If rd implements io.Seeker, it is used to push back the 4 magic
// bytes on an INVALID_MAGIC_NUMBER result and to fast-forward WithReadOffset
// seeks; otherwise forward seeks fall back to discarding bytes and backward
// seeks are best-effort no-ops.
func NewContext(rd io.Reader, wr io.Writer, opts ...Option) *Context {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	ctx := &Context{rd: rd, wr: wr, cfg: cfg}

	if sk, ok := rd.(io.Seeker); ok {
		ctx.seeker = sk
	}

	return ctx
}

// codec returns the BlockCodec in effect: the caller-supplied override, else
// the default pierrec/lz4/v4-backed codec at the configured level.
func (c *Context) codec() BlockCodec {
	if c.cfg.codec != nil {
		return c.cfg.codec
	}
	return blockcodec.Default(c.cfg.level)
}

// workerPool returns the dispatcher in effect for parallel mode, lazily
// constructing the default bounded pool on first use.
func (c *Context) workerPool() WorkerPool {
	if c.cfg.mode != Parallel {
		return nil
	}
	if c.cfg.pool != nil {
		return c.cfg.pool
	}
	if c.pool == nil {
		c.pool = workerpool.New(workerpool.WithMaxWorkers(c.cfg.numWorkers))
	}
	return c.pool
}

// poolSize is the MemPool capacity for this call: 1 in sequential mode,
// else workers + 1 so the producer may prefetch one block ahead (§3).
func (c *Context) poolSize() int {
	if c.cfg.mode == Sequential {
		return 1
	}
	return c.cfg.numWorkers + 1
}

// run executes task inline in sequential mode, or submits it to the worker
// pool and tracks its completion on wg in parallel mode.
func (c *Context) run(wg *sync.WaitGroup, task func()) {
	if c.cfg.mode == Sequential {
		task()
		return
	}
	wg.Add(1)
	c.workerPool().Submit(func() {
		defer wg.Done()
		task()
	})
}

// readFull reads exactly len(dst) bytes, or as many as are available before
// EOF. A clean EOF with zero bytes read returns (0, io.EOF); a partial fill
// returns (n, io.ErrUnexpectedEOF).
func (c *Context) readFull(dst []byte) (int, error) {
	n, err := io.ReadFull(c.rd, dst)
	c.srcOffset += int64(n)
	return n, err
}

// writeFull writes all of src, translating a short write into an error.
func (c *Context) writeFull(src []byte) error {
	n, err := c.wr.Write(src)
	c.dstOffset += int64(n)
	if err != nil {
		return err
	}
	if n != len(src) {
		return io.ErrShortWrite
	}
	return nil
}

// seekBack attempts to rewind the input stream by n bytes, used to leave an
// unrecognized magic number for the caller to reinterpret.
func (c *Context) seekBack(n int64) error {
	if c.seeker == nil {
		return errCannotSeek
	}
	_, err := c.seeker.Seek(-n, io.SeekCurrent)
	if err == nil {
		c.srcOffset -= n
	}
	return err
}

// skipForward discards n bytes from the input, via Seek when available,
// else by reading and discarding (the only option on a plain io.Reader).
func (c *Context) skipForward(n int64) error {
	if n <= 0 {
		return nil
	}
	if c.seeker != nil {
		_, err := c.seeker.Seek(n, io.SeekCurrent)
		if err == nil {
			c.srcOffset += n
		}
		return err
	}
	m, err := io.CopyN(io.Discard, c.rd, n)
	c.srcOffset += m
	return err
}

// skippable invokes the configured SkippableFunc, or the default of reading
// and discarding length bytes when none was provided.
func (c *Context) skippable(nibble uint8, length uint32) (int, error) {
	if c.cfg.skipFn != nil {
		return c.cfg.skipFn(c.rd, nibble, length)
	}
	n, err := io.CopyN(io.Discard, c.rd, int64(length))
	c.srcOffset += n
	return int(n), err
}

func (c *Context) reportProgress() {
	c.cfg.progress(c.srcOffset, c.dstOffset)
}

// setError promotes the latch per the §7 rule and trips quit so in-flight
// and future workers stop writing.
func (c *Context) setError(code result.Code) {
	c.latch.Set(code)
	c.quit.Store(true)
}
