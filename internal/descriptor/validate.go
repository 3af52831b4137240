package descriptor

import "github.com/lz4mt/lz4mt/internal/result"

// Validate applies the invariants of §3: a descriptor with reserved bits
// nonzero, version != 1, block size outside 4..7, BlockIndependence false, or
// PresetDictionary true is rejected with a specific result code. Order
// matches the original collaborator (version, then preset dictionary, then
// reserved1, then block independence, then block size, then reserved bits).
func (sd StreamDescriptor) Validate() result.Code {
	switch {
	case sd.Flg.VersionNumber != 1:
		return result.InvalidVersion
	case sd.Flg.PresetDictionary:
		return result.PresetDictionaryNotSupported
	case sd.Flg.Reserved1:
		return result.InvalidHeader
	case !sd.Flg.BlockIndependence:
		return result.BlockDependenceNotSupported
	case !sd.Bd.BlockMaximumSize.Valid():
		return result.InvalidBlockMaximumSize
	case sd.Bd.Reserved3 != 0:
		return result.InvalidHeader
	case sd.Bd.Reserved2:
		return result.InvalidHeader
	default:
		return result.OK
	}
}

// DataBlockSize is the 32-bit block-size prefix preceding each block payload:
// the high bit is the incompressible flag, the low 31 bits are the byte
// length (§6, GLOSSARY "Incompressible flag").
type DataBlockSize uint32

const (
	incompressibleMask = 0x80000000
	sizeMask           = 0x7FFFFFFF
)

func (s DataBlockSize) Size() int            { return int(s & sizeMask) }
func (s DataBlockSize) EOS() bool            { return s == 0 }
func (s DataBlockSize) Incompressible() bool { return s&incompressibleMask != 0 }

func NewDataBlockSize(size int, incompressible bool) DataBlockSize {
	v := DataBlockSize(uint32(size) & sizeMask)
	if incompressible {
		v |= incompressibleMask
	}
	return v
}
