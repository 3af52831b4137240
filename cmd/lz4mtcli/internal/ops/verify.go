package ops

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lz4mt/lz4mt"
)

const strUnset = "<UNSET>"

func RunVerify() error {
	rdwr, err := newTarget(false, CLI.Verify.File, "-", false)
	if err != nil {
		return err
	}
	defer rdwr.Close()

	opts := []lz4mt.Option{lz4mt.WithParallelism(CLI.Cpus)}
	if pool, closePool := newWorkerPool(CLI.Cpus); pool != nil {
		defer closePool()
		opts = append(opts, lz4mt.WithWorkerPool(pool))
	}

	return runVerify(rdwr, opts...)
}

func runVerify(rdwr *targetT, opts ...lz4mt.Option) error {
	var rcnt = &rdCnt{Reader: rdwr.Reader()}

	msg := "Verifying"
	pw := newProgressWriter(1)
	pw.SetMessageLength(len(msg))

	tr := &progress.Tracker{Message: msg, Units: progress.UnitsBytes}
	if rdwr.srcSz > 0 {
		tr.Total = rdwr.srcSz
	}
	pw.AppendTracker(tr)
	go pw.Render()

	opts = append(opts,
		lz4mt.WithProgress(func(srcOff, _ int64) { tr.SetValue(srcOff) }),
		lz4mt.WithSkippableCallback(func(rd io.Reader, nibble uint8, length uint32) (int, error) {
			fmt.Fprintf(os.Stdout, "skip frame detected offset:%d nibble:%d length:%d\n", rcnt.cnt, nibble, length)
			n, err := io.CopyN(io.Discard, rd, int64(length))
			return int(n), err
		}),
	)

	var (
		start = time.Now()
		sd    lz4mt.StreamDescriptor
		ctx   = lz4mt.NewContext(rcnt, io.Discard, opts...)
	)

	code, err := lz4mt.Decompress(ctx, &sd)
	tdiff := time.Since(start)

	tr.MarkAsDone()
	for pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond * 100)
	}

	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleColoredBright)
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Verify results")
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"File name", rdwr.inputName()},
		{"InSize", rcnt.cnt},
		{"Duration", tdiff.Round(time.Microsecond)},
		{"Result", code.String()},
	})

	t.AppendSeparator()
	t.AppendRows(descriptorRows(sd))

	if rcnt.cnt == 0 {
		fmt.Println("No data to verify")
		return nil
	}

	t.Render()
	return nil
}

func descriptorRows(sd lz4mt.StreamDescriptor) []table.Row {
	contentSz := strUnset
	if sd.Flg.StreamSize {
		contentSz = fmt.Sprintf("%d", sd.StreamSize)
	}

	return []table.Row{
		{"Frame version", sd.Flg.VersionNumber},
		{"Content size", contentSz},
		{"Stream checksum", sd.Flg.StreamChecksum},
		{"Block checksum", sd.Flg.BlockChecksum},
		{"Block independence", sd.Flg.BlockIndependence},
		{"Block maximum size", sd.Bd.BlockMaximumSize.Size()},
	}
}
