package lz4mt

import (
	"bytes"
	"fmt"
)

func ExampleDecompress() {
	// A hand-verified LZ4 frame (no block/stream checksum) carrying the
	// single compressed block for "hello".
	lz4Data := []byte{
		0x04, 0x22, 0x4d, 0x18, 0x60, 0x70, 0x73,
		0x06, 0x00, 0x00, 0x00, 0x50, 0x68, 0x65, 0x6c, 0x6c, 0x6f,
		0x00, 0x00, 0x00, 0x00,
	}

	var dst bytes.Buffer
	ctx := NewContext(bytes.NewReader(lz4Data), &dst, WithParallelism(0))

	if _, err := Decompress(ctx, nil); err != nil {
		panic(err)
	}

	fmt.Println(dst.String())
	// Output:
	// hello
}

func ExampleCompress() {
	src := []byte("hello, hello, hello")

	var compressed bytes.Buffer
	encCtx := NewContext(bytes.NewReader(src), &compressed, WithParallelism(0))
	if _, err := Compress(encCtx, encCtx.NewStreamDescriptor()); err != nil {
		panic(err)
	}

	var decompressed bytes.Buffer
	decCtx := NewContext(bytes.NewReader(compressed.Bytes()), &decompressed, WithParallelism(0))
	if _, err := Decompress(decCtx, nil); err != nil {
		panic(err)
	}

	fmt.Println(decompressed.String())
	// Output:
	// hello, hello, hello
}
