package descriptor

import (
	"testing"

	"github.com/lz4mt/lz4mt/internal/result"
)

func validDescriptor() StreamDescriptor {
	return StreamDescriptor{
		Flg: Flg{VersionNumber: 1, BlockIndependence: true},
		Bd:  Bd{BlockMaximumSize: BlockIdx4MB},
	}
}

func TestValidateOK(t *testing.T) {
	if got := validDescriptor().Validate(); got != result.OK {
		t.Fatalf("Validate() = %v, want OK", got)
	}
}

func TestValidateOrderPrefersVersion(t *testing.T) {
	sd := validDescriptor()
	sd.Flg.VersionNumber = 0
	sd.Flg.PresetDictionary = true // would also fail, version check must win
	if got := sd.Validate(); got != result.InvalidVersion {
		t.Fatalf("Validate() = %v, want InvalidVersion", got)
	}
}

func TestDataBlockSize(t *testing.T) {
	d := NewDataBlockSize(1024, false)
	if d.Size() != 1024 || d.Incompressible() || d.EOS() {
		t.Fatalf("unexpected fields: size=%d incompressible=%v eos=%v", d.Size(), d.Incompressible(), d.EOS())
	}

	d = NewDataBlockSize(2048, true)
	if d.Size() != 2048 || !d.Incompressible() {
		t.Fatalf("incompressible flag lost: size=%d incompressible=%v", d.Size(), d.Incompressible())
	}

	if !DataBlockSize(0).EOS() {
		t.Fatal("zero value should report EOS")
	}
}
