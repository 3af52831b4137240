// Package descriptor implements the LZ4 frame stream descriptor value type,
// its on-wire flag-byte layout, and the byte-codec helpers used to marshal
// it. Layout and validation rules are grounded on the LZ4 Frame Format
// together with the teacher's internal/pkg/descriptor package.
package descriptor

import "encoding/binary"

// BlockIdx selects the uncompressed capacity of a block, §3/GLOSSARY.
type BlockIdx uint8

const (
	BlockIdx64KB  BlockIdx = 4
	BlockIdx256KB BlockIdx = 5
	BlockIdx1MB   BlockIdx = 6
	BlockIdx4MB   BlockIdx = 7

	BlockIdx64KBSz  = 64 << 10
	BlockIdx256KBSz = 256 << 10
	BlockIdx1MBSz   = 1 << 20
	BlockIdx4MBSz   = 4 << 20
)

// Valid reports whether idx is one of the four defined block sizes (4..7).
func (idx BlockIdx) Valid() bool { return idx >= BlockIdx64KB && idx <= BlockIdx4MB }

// Size returns the uncompressed block capacity in bytes: 1 << (8 + 2*idx).
func (idx BlockIdx) Size() int {
	if !idx.Valid() {
		return 0
	}
	return 1 << (8 + 2*uint(idx))
}

// Flg is the first descriptor byte: version, block independence, block
// checksum, stream size, stream checksum, reserved1, preset dictionary.
type Flg struct {
	VersionNumber     uint8 // 2 bits, must equal 1
	BlockIndependence bool  // must be true in this core
	BlockChecksum     bool
	StreamSize        bool
	StreamChecksum    bool
	Reserved1         bool // must be false
	PresetDictionary  bool // must be false (unsupported)
}

// Bd is the second descriptor byte: block maximum size id plus reserved bits.
type Bd struct {
	BlockMaximumSize BlockIdx // 3 bits, valid range 4..7
	Reserved2        bool     // bit 7, must be false
	Reserved3        uint8    // low 4 bits, must be zero
}

// StreamDescriptor is the parsed/validated frame header payload (§3).
type StreamDescriptor struct {
	Flg        Flg
	Bd         Bd
	StreamSize uint64 // present iff Flg.StreamSize
	DictID     uint32 // present iff Flg.PresetDictionary (this core rejects)
}

// ToByte packs Flg into its on-wire byte, bit 0 = LSB (§4.1).
func (f Flg) ToByte() byte {
	var b byte
	b |= boolBit(f.PresetDictionary, 0)
	b |= boolBit(f.Reserved1, 1)
	b |= boolBit(f.StreamChecksum, 2)
	b |= boolBit(f.StreamSize, 3)
	b |= boolBit(f.BlockChecksum, 4)
	b |= boolBit(f.BlockIndependence, 5)
	b |= (f.VersionNumber & 0x3) << 6
	return b
}

// FlgFromByte unpacks a Flg from its on-wire byte.
func FlgFromByte(b byte) Flg {
	return Flg{
		PresetDictionary:  bitSet(b, 0),
		Reserved1:         bitSet(b, 1),
		StreamChecksum:    bitSet(b, 2),
		StreamSize:        bitSet(b, 3),
		BlockChecksum:     bitSet(b, 4),
		BlockIndependence: bitSet(b, 5),
		VersionNumber:     (b >> 6) & 0x3,
	}
}

// ToByte packs Bd into its on-wire byte (§4.1).
func (d Bd) ToByte() byte {
	var b byte
	b |= d.Reserved3 & 0xF
	b |= (byte(d.BlockMaximumSize) & 0x7) << 4
	b |= boolBit(d.Reserved2, 7)
	return b
}

// BdFromByte unpacks a Bd from its on-wire byte.
func BdFromByte(b byte) Bd {
	return Bd{
		Reserved3:        b & 0xF,
		BlockMaximumSize: BlockIdx((b >> 4) & 0x7),
		Reserved2:        bitSet(b, 7),
	}
}

func boolBit(v bool, pos uint) byte {
	if v {
		return 1 << pos
	}
	return 0
}

func bitSet(b byte, pos uint) bool {
	return (b>>pos)&1 != 0
}

// --- byte codec helpers (§4.1) ---

func StoreU32(p []byte, v uint32) { binary.LittleEndian.PutUint32(p, v) }
func StoreU64(p []byte, v uint64) { binary.LittleEndian.PutUint64(p, v) }
func LoadU32(p []byte) uint32     { return binary.LittleEndian.Uint32(p) }
func LoadU64(p []byte) uint64     { return binary.LittleEndian.Uint64(p) }
