package mem_test

import (
	"testing"

	"github.com/pyembed/py-runtime/enginetest"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/mem"
)

func TestBufferLifecycle(t *testing.T) {
	ip := enginetest.New()

	buf, err := mem.NewBuffer(ip.Mem(), 16)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if buf.Ptr() == 0 {
		t.Fatal("expected non-null pointer")
	}
	if buf.Size() != 16 {
		t.Fatalf("size = %d, want 16", buf.Size())
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 1 {
		t.Fatalf("tracked live allocs = %d, want 1", got)
	}

	buf.Free()
	if buf.Ptr() != 0 {
		t.Fatal("pointer not cleared after Free")
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("tracked live allocs after Free = %d, want 0", got)
	}

	// Idempotent.
	buf.Free()
	if got := ip.FreeCount(enginetest.DomainTracked); got != 1 {
		t.Fatalf("tracked frees = %d, want 1", got)
	}
}

func TestRawBufferResizePreservesPrefix(t *testing.T) {
	ip := enginetest.New()

	buf, err := mem.NewRawBuffer(ip.RawMem(), 16)
	if err != nil {
		t.Fatalf("NewRawBuffer: %v", err)
	}
	payload := []byte("0123456789abcdef")
	if err := ip.Memory().Write(uint32(buf.Ptr()), payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := buf.Resize(32); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if buf.Size() != 32 {
		t.Fatalf("size after Resize = %d, want 32", buf.Size())
	}
	got, err := ip.Memory().Read(uint32(buf.Ptr()), 16)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("prefix after Resize = %q, want %q", got, payload)
	}

	buf.Free()
	if got := ip.LiveAllocs(enginetest.DomainRaw); got != 0 {
		t.Fatalf("raw live allocs = %d, want 0", got)
	}
	if got := ip.AllocCount(enginetest.DomainTracked); got != 0 {
		t.Fatalf("tracked domain touched: %d allocs", got)
	}
}

func TestBufferAllocFailure(t *testing.T) {
	ip := enginetest.New()
	ip.FailNextAlloc(enginetest.DomainTracked)

	if _, err := mem.NewBuffer(ip.Mem(), 64); !errors.IsKind(err, errors.KindAllocation) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("tracked live allocs = %d, want 0", got)
	}
}

func TestBufferResizeFailure(t *testing.T) {
	ip := enginetest.New()

	buf, err := mem.NewBuffer(ip.Mem(), 8)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	ip.FailNextAlloc(enginetest.DomainTracked)
	if err := buf.Resize(128); !errors.IsKind(err, errors.KindAllocation) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	// The old block is invalid after a failed resize.
	if buf.Ptr() != 0 {
		t.Fatal("pointer not cleared after failed Resize")
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("tracked live allocs = %d, want 0", got)
	}
}

func TestTrackedDomainRequiresRunning(t *testing.T) {
	ip := enginetest.New()
	if err := ip.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if _, err := mem.NewBuffer(ip.Mem(), 8); !errors.IsKind(err, errors.KindNotRunning) {
		t.Fatalf("expected not-running error, got %v", err)
	}

	// The raw domain survives finalization.
	buf, err := mem.NewRawBuffer(ip.RawMem(), 8)
	if err != nil {
		t.Fatalf("NewRawBuffer after Finalize: %v", err)
	}
	buf.Free()
}
