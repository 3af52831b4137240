package ops

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lz4mt/lz4mt"
	"github.com/lz4mt/lz4mt/pkg/sparse"
)

func RunDecompress() error {
	rdwr, err := newTarget(false, CLI.Decompress.File, CLI.Decompress.Output, CLI.Decompress.Force)
	if err != nil {
		return err
	}
	defer rdwr.Close()

	opts := []lz4mt.Option{lz4mt.WithParallelism(CLI.Cpus)}
	if pool, closePool := newWorkerPool(CLI.Cpus); pool != nil {
		defer closePool()
		opts = append(opts, lz4mt.WithWorkerPool(pool))
	}

	return runDecompress(rdwr, opts...)
}

func runDecompress(rdwr *targetT, opts ...lz4mt.Option) error {
	var (
		wr io.WriteCloser = rdwr.Writer()
		pw progress.Writer
		tr *progress.Tracker
	)

	if wr != os.Stdout && CLI.Decompress.Sparse {
		wr = sparse.NewWriter(wr)
	}

	if wr != os.Stdout && !CLI.Decompress.Quiet {
		msg := "Decompressing"
		pw = newProgressWriter(1)
		pw.SetMessageLength(len(msg))

		tr = &progress.Tracker{Message: msg, Units: progress.UnitsBytes}
		if rdwr.srcSz > 0 {
			tr.Total = rdwr.srcSz
		}
		pw.AppendTracker(tr)

		opts = append(opts, lz4mt.WithProgress(func(srcOff, _ int64) {
			tr.SetValue(srcOff)
		}))

		go pw.Render()
	}

	var (
		start = time.Now()
		rcnt  = &rdCnt{Reader: rdwr.Reader()}
		wcnt  = &wrCnt{Writer: wr}
		ctx   = lz4mt.NewContext(rcnt, wcnt, opts...)
	)

	_, err := lz4mt.Decompress(ctx, nil)
	if err != nil {
		return err
	}
	if wr != os.Stdout {
		if err := wr.Close(); err != nil {
			return err
		}
	}

	if pw != nil {
		tdiff := time.Since(start)
		tr.MarkAsDone()
		for pw.IsRenderInProgress() {
			time.Sleep(time.Millisecond * 100)
		}

		var ratio float64
		if rcnt.cnt > 0 {
			ratio = float64(wcnt.cnt) / float64(rcnt.cnt) * 100.0
		}

		t := table.NewWriter()
		t.SetTitle("Decompress results")
		t.SetStyle(table.StyleColoredBright)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Value"})
		t.AppendRows([]table.Row{
			{"Input", rdwr.inputName()},
			{"Output", rdwr.outputName()},
			{"InSize", rcnt.cnt},
			{"OutSize", wcnt.cnt},
			{"Duration", tdiff.Round(time.Microsecond)},
			{"Ratio", fmt.Sprintf("%.2f%%", ratio)},
		})
		t.Render()
	}
	return nil
}

type rdCnt struct {
	cnt uint64
	io.Reader
}

func (r *rdCnt) Read(data []byte) (int, error) {
	n, err := r.Reader.Read(data)
	if n >= 0 {
		r.cnt += uint64(n)
	}
	return n, err
}
