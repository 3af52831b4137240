package ops

import (
	"runtime"

	gzpool "github.com/gammazero/workerpool"
	"github.com/lz4mt/lz4mt"
)

// newWorkerPool builds the WorkerPool backing parallel block dispatch. The
// default is lz4mt's own bounded pool (left nil so NewContext lazily builds
// one); -pool=gammazero swaps in github.com/gammazero/workerpool instead,
// whose Submit(func()) signature already satisfies lz4mt.WorkerPool without
// an adapter.
func newWorkerPool(cpus int) (lz4mt.WorkerPool, func()) {
	if CLI.Pool != "gammazero" {
		return nil, func() {}
	}

	n := cpus
	if n <= 0 {
		n = runtime.NumCPU()
	}
	wp := gzpool.New(n)
	return wp, wp.StopWait
}
