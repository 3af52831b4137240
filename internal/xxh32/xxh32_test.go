package xxh32

import "testing"

func TestChecksumEmpty(t *testing.T) {
	// xxHash32("", seed=0) per the reference implementation's test vectors.
	if got := Checksum(nil); got != 0x02cc5d05 {
		t.Fatalf("Checksum(nil) = %#x, want 0x02cc5d05", got)
	}
}

func TestChecksumMatchesOneShotAndIncremental(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog")

	want := Checksum(data)

	d := NewDigester()
	d.Update(data)
	if got := d.Digest(); got != want {
		t.Fatalf("incremental digest = %#x, want %#x", got, want)
	}
}

func TestDigesterChunking(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}

	want := Checksum(data)

	for _, chunkSz := range []int{1, 3, 7, 16, 17, 64, 255} {
		d := NewDigester()
		for off := 0; off < len(data); off += chunkSz {
			end := off + chunkSz
			if end > len(data) {
				end = len(data)
			}
			d.Update(data[off:end])
		}
		if got := d.Digest(); got != want {
			t.Errorf("chunkSz=%d: digest = %#x, want %#x", chunkSz, got, want)
		}
	}
}

func TestHeaderCheckBits(t *testing.T) {
	if got := HeaderCheckBits(0x12345678); got != 0x56 {
		t.Fatalf("HeaderCheckBits(0x12345678) = %#x, want 0x56", got)
	}
}
