package ops

var CLI struct {
	Compress struct {
		File   string `optional:"" arg:"" type:"existingfile"`
		Output string `help:"Output filename; use '-' for stdout" short:"o"`
		Level  int    `help:"Compression level (0-9) [0 Fastest]" default:"0" short:"l"`
		Force  bool   `help:"Force overwrite of existing file" short:"f"`
		Quiet  bool   `help:"Do not write progress to stdout" short:"q"`
		BS     string `help:"Block size [4MB, 1MB, 256KB, 64KB]" default:"4MB"`
		BX     bool   `help:"Enable block checksum"`
		SX     bool   `help:"Enable stream checksum"`
		CS     bool   `help:"Embed content size; fails on stdin"`
	} `cmd:"" aliases:"c,comp" help:"Compress data into an LZ4 frame"`
	Decompress struct {
		File   string `optional:"" arg:"" type:"existingfile"`
		Output string `help:"Output filename; use '-' for stdout" short:"o"`
		Force  bool   `help:"Force overwrite of existing file" short:"f"`
		Quiet  bool   `help:"Do not write progress to stdout" short:"q"`
		Sparse bool   `help:"Skip writing runs of zero bytes to a seekable output" short:"s"`
	} `cmd:"" aliases:"d,decomp" help:"Decompress an LZ4 frame"`
	Verify struct {
		File string `optional:"" arg:"" type:"existingfile"`
	} `cmd:"" aliases:"v,ver" help:"Decompress and verify an LZ4 frame without keeping the output"`

	Cpus int    `help:"Concurrency [0 sequential] [-1 auto]" default:"-1" short:"c"`
	Pool string `help:"Worker pool implementation [default, gammazero]" default:"default" enum:"default,gammazero"`
}
