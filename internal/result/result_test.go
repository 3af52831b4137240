package result

import "testing"

func TestLatchPromotionFromOK(t *testing.T) {
	var l Latch
	if got := l.Set(BlockChecksumMismatch); got != BlockChecksumMismatch {
		t.Fatalf("Set from OK: got %v", got)
	}
}

func TestLatchPromotionFromError(t *testing.T) {
	var l Latch
	l.Set(Error)
	if got := l.Set(DecompressFail); got != DecompressFail {
		t.Fatalf("Set from Error: got %v", got)
	}
}

func TestLatchStickiness(t *testing.T) {
	var l Latch
	l.Set(StreamChecksumMismatch)
	if got := l.Set(BlockChecksumMismatch); got != StreamChecksumMismatch {
		t.Fatalf("first specific code should win, got %v", got)
	}
	if l.Code() != StreamChecksumMismatch {
		t.Fatalf("latch not sticky: %v", l.Code())
	}
}

func TestLatchErr(t *testing.T) {
	var l Latch
	if err := l.Err(); err != nil {
		t.Fatalf("expected nil error for OK latch, got %v", err)
	}
	l.Set(InvalidMagicNumber)
	if err := l.Err(); err == nil {
		t.Fatal("expected non-nil error after Set")
	}
}

func TestCodeString(t *testing.T) {
	if OK.String() != "OK" {
		t.Fatalf("OK.String() = %q", OK.String())
	}
	if Code(255).String() != "???" {
		t.Fatalf("unknown code should render as ???")
	}
}
