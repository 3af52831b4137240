package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/lz4mt/lz4mt/cmd/lz4mtcli/internal/ops"
)

func main() {
	var (
		errS string
		kctx = kong.Parse(&ops.CLI)
	)

	if ops.CLI.Cpus < 0 {
		ops.CLI.Cpus = runtime.NumCPU()
	}

	switch kctx.Command() {
	case "compress", "compress <file>":
		if err := ops.RunCompress(); err != nil {
			errS = fmt.Sprintf("fail compress: %v", err)
		}
	case "decompress", "decompress <file>":
		if err := ops.RunDecompress(); err != nil {
			errS = fmt.Sprintf("fail decompress: %v", err)
		}
	case "verify", "verify <file>":
		if err := ops.RunVerify(); err != nil {
			errS = fmt.Sprintf("fail verify: %v", err)
		}
	default:
		errS = fmt.Sprintf("unknown command %q", kctx.Command())
	}

	if errS != "" {
		fmt.Fprintf(os.Stderr, "lz4mtcli: %s\n", errS)
		os.Exit(1)
	}
}
