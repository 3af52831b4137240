// Package result implements the enumerated result taxonomy of the LZ4 frame
// core and the single-writer-wins promotion rule used to latch the first
// specific failure seen across a parallel block pipeline.
package result

import "sync"

// Code is the enumerated outcome of a Compress or Decompress call.
type Code uint8

const (
	OK Code = iota
	Error
	InvalidMagicNumber
	InvalidHeader
	PresetDictionaryNotSupported
	BlockDependenceNotSupported
	InvalidVersion
	InvalidHeaderChecksum
	InvalidBlockMaximumSize
	CannotWriteHeader
	CannotWriteEOS
	CannotWriteStreamChecksum
	CannotReadBlockSize
	CannotReadBlockData
	CannotReadBlockChecksum
	CannotReadStreamChecksum
	StreamChecksumMismatch
	BlockChecksumMismatch
	DecompressFail
)

var codeStrings = [...]string{
	OK:                           "OK",
	Error:                        "ERROR",
	InvalidMagicNumber:           "INVALID_MAGIC_NUMBER",
	InvalidHeader:                "INVALID_HEADER",
	PresetDictionaryNotSupported: "PRESET_DICTIONARY_NOT_SUPPORTED",
	BlockDependenceNotSupported:  "BLOCK_DEPENDENCE_NOT_SUPPORTED",
	InvalidVersion:               "INVALID_VERSION",
	InvalidHeaderChecksum:        "INVALID_HEADER_CHECKSUM",
	InvalidBlockMaximumSize:      "INVALID_BLOCK_MAXIMUM_SIZE",
	CannotWriteHeader:            "CANNOT_WRITE_HEADER",
	CannotWriteEOS:               "CANNOT_WRITE_EOS",
	CannotWriteStreamChecksum:    "CANNOT_WRITE_STREAM_CHECKSUM",
	CannotReadBlockSize:          "CANNOT_READ_BLOCK_SIZE",
	CannotReadBlockData:          "CANNOT_READ_BLOCK_DATA",
	CannotReadBlockChecksum:      "CANNOT_READ_BLOCK_CHECKSUM",
	CannotReadStreamChecksum:     "CANNOT_READ_STREAM_CHECKSUM",
	StreamChecksumMismatch:       "STREAM_CHECKSUM_MISMATCH",
	BlockChecksumMismatch:        "BLOCK_CHECKSUM_MISMATCH",
	DecompressFail:               "DECOMPRESS_FAIL",
}

// String renders the diagnostic text for a Code; required by §7 ("a textual
// mapping of each code exists for diagnostics").
func (c Code) String() string {
	if int(c) < len(codeStrings) {
		if s := codeStrings[c]; s != "" {
			return s
		}
	}
	return "???"
}

// Error lets a Code satisfy the error interface directly, so callers that
// prefer Go's usual error idiom can do so; OK.Error() is never produced by a
// Latch (Err returns a nil error in that case).
func (c Code) Error() string { return c.String() }

// Latch is the shared per-operation fault latch from §7: workers and the
// producer may only *promote* from OK or generic Error to a more specific
// code. Once a specific code is set it is sticky; first specific code wins.
type Latch struct {
	mu   sync.Mutex
	code Code
}

// Set attempts to promote the latch to code, applying the sticky/first-wins
// promotion rule. Returns the code now held by the latch (which may not be
// the one just passed in, if something more specific already won).
func (l *Latch) Set(code Code) Code {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.code == OK || l.code == Error {
		l.code = code
	}
	return l.code
}

// Code returns the current latched code.
func (l *Latch) Code() Code {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.code
}

// Err returns nil if the latch is OK, else the latched Code as an error.
func (l *Latch) Err() error {
	if c := l.Code(); c != OK {
		return c
	}
	return nil
}

// IsError reports whether the latch holds any non-OK code.
func (l *Latch) IsError() bool {
	return l.Code() != OK
}
