package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lz4mt/lz4mt"
)

// Demonstrate writing a compressed lz4 frame.
func compress(out io.Writer) error {
	ctx := lz4mt.NewContext(bytes.NewReader([]byte("How now brown cow")), out, lz4mt.WithLevel(lz4mt.HC1))

	_, err := lz4mt.Compress(ctx, ctx.NewStreamDescriptor())
	return err
}

// Demonstrate decompressing an lz4 frame.
func decompress(src io.Reader, dst io.Writer) error {
	ctx := lz4mt.NewContext(src, dst)

	_, err := lz4mt.Decompress(ctx, nil)
	return err
}

func main() {
	var (
		compressedData bytes.Buffer
		decompressData bytes.Buffer
	)

	if err := compress(&compressedData); err != nil {
		panic(err)
	}

	if err := decompress(&compressedData, &decompressData); err != nil {
		panic(err)
	}

	fmt.Println(decompressData.String())
}
