package lz4mt

import (
	"github.com/lz4mt/lz4mt/internal/descriptor"
	"github.com/lz4mt/lz4mt/internal/result"
	"github.com/lz4mt/lz4mt/internal/xxh32"
)

const (
	minHeaderSz = 7  // magic(4) + flg(1) + bd(1) + checksum(1)
	maxHeaderSz = 19 // + streamSize(8) + dictId(4)
)

// buildStreamDescriptor assembles the descriptor for one Compress call from
// the options in effect; the StreamSize flag follows whether the caller
// supplied a content size. PresetDictionary is never set.
func buildStreamDescriptor(cfg config) StreamDescriptor {
	sd := StreamDescriptor{
		Flg: Flg{
			VersionNumber:     1,
			BlockIndependence: true,
			BlockChecksum:     cfg.blockChecksum,
			StreamSize:        cfg.contentSize != nil,
			StreamChecksum:    cfg.streamChecksum,
		},
		Bd: Bd{
			BlockMaximumSize: cfg.blockSizeIdx,
		},
	}
	if cfg.contentSize != nil {
		sd.StreamSize = *cfg.contentSize
	}
	return sd
}

// writeHeader emits the magic number, descriptor bytes, optional stream
// size, and the header checksum byte (§4.1, §4.4 step 2).
func writeHeader(ctx *Context, sd StreamDescriptor) error {
	buf := make([]byte, minHeaderSz, maxHeaderSz)
	descriptor.StoreU32(buf[0:4], MagicNumber)
	buf[4] = sd.Flg.ToByte()
	buf[5] = sd.Bd.ToByte()

	if sd.Flg.StreamSize {
		buf = buf[:len(buf)+8]
		descriptor.StoreU64(buf[6:14], sd.StreamSize)
	}

	xxh := xxh32.Checksum(buf[4 : len(buf)-1])
	buf[len(buf)-1] = xxh32.HeaderCheckBits(xxh)

	return ctx.writeFull(buf)
}

// readDescriptor parses the flag/bd bytes, validates them, then reads any
// variable-length extra fields and verifies the header checksum (§4.5 step
// 4). The four magic bytes already consumed by the caller are not included.
func readDescriptor(ctx *Context) (StreamDescriptor, result.Code) {
	var sd StreamDescriptor

	flgBd := make([]byte, 2)
	if n, err := ctx.readFull(flgBd); err != nil || n != 2 {
		return sd, result.InvalidHeader
	}

	sd.Flg = descriptor.FlgFromByte(flgBd[0])
	sd.Bd = descriptor.BdFromByte(flgBd[1])

	if code := sd.Validate(); code != result.OK {
		return sd, code
	}

	extra := append([]byte{}, flgBd...)

	if sd.Flg.StreamSize {
		b := make([]byte, 8)
		if n, err := ctx.readFull(b); err != nil || n != 8 {
			return sd, result.InvalidHeader
		}
		sd.StreamSize = descriptor.LoadU64(b)
		extra = append(extra, b...)
	}

	if sd.Flg.PresetDictionary {
		b := make([]byte, 4)
		if n, err := ctx.readFull(b); err != nil || n != 4 {
			return sd, result.InvalidHeader
		}
		sd.DictID = descriptor.LoadU32(b)
		extra = append(extra, b...)
	}

	chkByte := make([]byte, 1)
	if n, err := ctx.readFull(chkByte); err != nil || n != 1 {
		return sd, result.InvalidHeader
	}

	xxh := xxh32.Checksum(extra)
	if xxh32.HeaderCheckBits(xxh) != chkByte[0] {
		return sd, result.InvalidHeaderChecksum
	}

	return sd, result.OK
}
