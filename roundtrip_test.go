package lz4mt

import (
	"bytes"
	"io"
	"testing"

	"github.com/lz4mt/lz4mt/internal/result"
)

func compressBytes(t *testing.T, src []byte, opts ...Option) []byte {
	t.Helper()
	var dst bytes.Buffer
	ctx := NewContext(bytes.NewReader(src), &dst, opts...)
	if code, err := Compress(ctx, ctx.NewStreamDescriptor()); err != nil || code != result.OK {
		t.Fatalf("compress: code=%v err=%v", code, err)
	}
	return dst.Bytes()
}

func decompressBytes(t *testing.T, src []byte, opts ...Option) ([]byte, Result, error) {
	t.Helper()
	var dst bytes.Buffer
	ctx := NewContext(bytes.NewReader(src), &dst, opts...)
	code, err := Decompress(ctx, nil)
	return dst.Bytes(), code, err
}

func TestRoundTripEmpty(t *testing.T) {
	for _, mode := range []int{0, 2} {
		compressed := compressBytes(t, nil, WithParallelism(mode), WithStreamChecksum(true))
		got, code, err := decompressBytes(t, compressed, WithParallelism(mode))
		if err != nil || code != result.OK {
			t.Fatalf("mode=%d decompress: code=%v err=%v", mode, code, err)
		}
		if len(got) != 0 {
			t.Fatalf("mode=%d expected empty output, got %q", mode, got)
		}
	}
}

func TestRoundTripSmallBlock(t *testing.T) {
	src := []byte("Hello, World!")
	for _, mode := range []int{0, 2} {
		compressed := compressBytes(t, src, WithParallelism(mode), WithBlockSize(BlockIdx4MB))
		got, code, err := decompressBytes(t, compressed, WithParallelism(mode))
		if err != nil || code != result.OK {
			t.Fatalf("mode=%d decompress: code=%v err=%v", mode, code, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("mode=%d round trip mismatch: got %q want %q", mode, got, src)
		}
	}
}

func TestRoundTripMultiBlockParallel(t *testing.T) {
	src := bytes.Repeat([]byte{0xAA}, 10*1024*1024)

	seq := compressBytes(t, src, WithParallelism(0), WithBlockSize(BlockIdx64KB))
	par := compressBytes(t, src, WithParallelism(4), WithBlockSize(BlockIdx64KB))

	if !bytes.Equal(seq, par) {
		t.Fatalf("sequential and parallel encodings differ (lengths %d vs %d)", len(seq), len(par))
	}

	got, code, err := decompressBytes(t, par, WithParallelism(4))
	if err != nil || code != result.OK {
		t.Fatalf("decompress: code=%v err=%v", code, err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch over %d bytes", len(src))
	}
}

func TestBlockChecksumMismatch(t *testing.T) {
	compressed := compressBytes(t, []byte("payload data for checksum test"), WithBlockChecksum(true))

	// Flip a bit in the block checksum field. The frame ends with
	// size+payload+checksum and then the 4-byte EOS marker, so the checksum
	// is the 4 bytes just before EOS; index len-5 is its last byte.
	mutated := append([]byte(nil), compressed...)
	mutated[len(mutated)-5] ^= 0x01

	_, code, _ := decompressBytes(t, mutated)
	if code != result.BlockChecksumMismatch {
		t.Fatalf("expected BlockChecksumMismatch, got %v", code)
	}
}

func TestStreamChecksumMismatch(t *testing.T) {
	src := bytes.Repeat([]byte("abcdefgh"), 4096) // repetitive, so it is stored as a compressed block
	compressed := compressBytes(t, src, WithStreamChecksum(true))

	mutated := append([]byte(nil), compressed...)
	// Flip the first byte of the compressed block payload (just past the
	// 7-byte header and 4-byte block size prefix).
	mutated[11] ^= 0xFF

	_, code, _ := decompressBytes(t, mutated)
	if code != result.DecompressFail && code != result.StreamChecksumMismatch {
		t.Fatalf("expected DecompressFail or StreamChecksumMismatch, got %v", code)
	}
}

func TestSkippableInterleave(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x50, 0x2a, 0x4d, 0x18}) // skippable magic, nibble 0
	buf.Write([]byte{0x07, 0x00, 0x00, 0x00}) // length 7
	buf.Write([]byte("abcdefg"))

	frame := compressBytes(t, []byte("after skip"))
	buf.Write(frame)

	var called bool
	var dst bytes.Buffer
	ctx := NewContext(bytes.NewReader(buf.Bytes()), &dst, WithSkippableCallback(
		func(rd io.Reader, nibble uint8, length uint32) (int, error) {
			called = true
			b := make([]byte, length)
			n, err := rd.Read(b)
			return n, err
		},
	))

	code, err := Decompress(ctx, nil)
	if err != nil || code != result.OK {
		t.Fatalf("decompress: code=%v err=%v", code, err)
	}
	if !called {
		t.Fatal("expected skippable callback to run")
	}
	if dst.String() != "after skip" {
		t.Fatalf("got %q", dst.String())
	}
}

func TestValidationCompleteness(t *testing.T) {
	base := StreamDescriptor{
		Flg: Flg{VersionNumber: 1, BlockIndependence: true},
		Bd:  Bd{BlockMaximumSize: BlockIdx64KB},
	}

	cases := []struct {
		name string
		mut  func(sd StreamDescriptor) StreamDescriptor
		want Result
	}{
		{"bad version", func(sd StreamDescriptor) StreamDescriptor { sd.Flg.VersionNumber = 2; return sd }, result.InvalidVersion},
		{"preset dictionary", func(sd StreamDescriptor) StreamDescriptor { sd.Flg.PresetDictionary = true; return sd }, result.PresetDictionaryNotSupported},
		{"reserved1 set", func(sd StreamDescriptor) StreamDescriptor { sd.Flg.Reserved1 = true; return sd }, result.InvalidHeader},
		{"block dependent", func(sd StreamDescriptor) StreamDescriptor { sd.Flg.BlockIndependence = false; return sd }, result.BlockDependenceNotSupported},
		{"bad block size", func(sd StreamDescriptor) StreamDescriptor { sd.Bd.BlockMaximumSize = 3; return sd }, result.InvalidBlockMaximumSize},
		{"reserved3 set", func(sd StreamDescriptor) StreamDescriptor { sd.Bd.Reserved3 = 1; return sd }, result.InvalidHeader},
		{"reserved2 set", func(sd StreamDescriptor) StreamDescriptor { sd.Bd.Reserved2 = true; return sd }, result.InvalidHeader},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sd := tc.mut(base)
			if got := sd.Validate(); got != tc.want {
				t.Fatalf("Validate() = %v, want %v", got, tc.want)
			}
		})
	}
}
