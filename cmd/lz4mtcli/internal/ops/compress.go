package ops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lz4mt/lz4mt"
)

func RunCompress() error {
	rdwr, err := newTarget(true, CLI.Compress.File, CLI.Compress.Output, CLI.Compress.Force)
	if err != nil {
		return err
	}
	defer rdwr.Close()

	bs, err := parseBlockSize(CLI.Compress.BS)
	if err != nil {
		return fmt.Errorf("invalid block size: %s", CLI.Compress.BS)
	}

	if CLI.Compress.Level < 0 || CLI.Compress.Level > 9 {
		return errors.New("compression level out of range")
	}

	opts := []lz4mt.Option{
		lz4mt.WithParallelism(CLI.Cpus),
		lz4mt.WithLevel(lz4mt.Level(CLI.Compress.Level)),
		lz4mt.WithBlockChecksum(CLI.Compress.BX),
		lz4mt.WithStreamChecksum(CLI.Compress.SX),
		lz4mt.WithBlockSize(bs),
	}

	if CLI.Compress.CS {
		if CLI.Compress.File == "" {
			return errors.New("cannot get file size on stdin")
		}
		if rdwr.srcSz < 0 {
			return fmt.Errorf("cannot stat %q", CLI.Compress.File)
		}
		opts = append(opts, lz4mt.WithContentSize(uint64(rdwr.srcSz)))
	}

	if pool, closePool := newWorkerPool(CLI.Cpus); pool != nil {
		defer closePool()
		opts = append(opts, lz4mt.WithWorkerPool(pool))
	}

	return runCompress(rdwr, opts...)
}

func runCompress(rdwr *targetT, opts ...lz4mt.Option) error {
	var (
		pw progress.Writer
		tr *progress.Tracker
	)

	wr := rdwr.Writer()

	if wr != os.Stdout && !CLI.Compress.Quiet {
		msg := "Compressing"
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

	_, err := lz4mt.Compress(ctx, ctx.NewStreamDescriptor())
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

		t := table.NewWriter()
		t.SetTitle("Compress results")
		t.SetStyle(table.StyleColoredBright)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Value"})

		var ratio float64
		if rcnt.cnt > 0 {
			ratio = float64(wcnt.cnt) / float64(rcnt.cnt) * 100.0
		}
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

type wrCnt struct {
	cnt uint64
	io.Writer
}

func (w *wrCnt) Write(data []byte) (int, error) {
	n, err := w.Writer.Write(data)
	if n >= 0 {
		w.cnt += uint64(n)
	}
	return n, err
}

func parseBlockSize(bs string) (lz4mt.BlockIdx, error) {
	switch bs {
	case "4MB", "4MiB", "4M":
		return lz4mt.BlockIdx4MB, nil
	case "1MB", "1MiB", "1M":
		return lz4mt.BlockIdx1MB, nil
	case "256KB", "256KiB", "256K":
		return lz4mt.BlockIdx256KB, nil
	case "64KB", "64KiB", "64K":
		return lz4mt.BlockIdx64KB, nil
	default:
		return 0, errors.New("fail parse block size")
	}
}
