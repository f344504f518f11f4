package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/enginetest"
)

func TestNarrowViewFromString(t *testing.T) {
	ip := enginetest.New()

	v, err := codec.NarrowFromString(ip, "argv0")
	if err != nil {
		t.Fatalf("NarrowFromString: %v", err)
	}
	if v.Ptr() == 0 {
		t.Fatal("expected non-null pointer")
	}
	got, err := codec.ReadNarrow(ip.Memory(), v.Ptr())
	if err != nil {
		t.Fatalf("ReadNarrow: %v", err)
	}
	if got != "argv0" {
		t.Fatalf("view content = %q, want %q", got, "argv0")
	}

	v.Close()
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("tracked live allocs after Close = %d, want 0", got)
	}
	v.Close() // idempotent
	if got := ip.FreeCount(enginetest.DomainTracked); got != 1 {
		t.Fatalf("tracked frees = %d, want 1", got)
	}
}

func TestNarrowViewFromPtrDoesNotOwn(t *testing.T) {
	ip := enginetest.New()

	owned, err := codec.NarrowFromString(ip, "shared")
	if err != nil {
		t.Fatalf("NarrowFromString: %v", err)
	}
	defer owned.Close()

	borrowed := codec.NarrowFromPtr(owned.Ptr())
	borrowed.Close()
	if got := ip.FreeCount(enginetest.DomainTracked); got != 0 {
		t.Fatalf("borrowed view freed the allocation: %d frees", got)
	}
}

func TestWideViewFromRunes(t *testing.T) {
	ip := enginetest.New()

	text := []rune("/opt/py/lib")
	v, err := codec.WideFromRunes(ip, text)
	if err != nil {
		t.Fatalf("WideFromRunes: %v", err)
	}
	got, err := codec.ReadWide(ip.Memory(), v.Ptr())
	if err != nil {
		t.Fatalf("ReadWide: %v", err)
	}
	if diff := cmp.Diff(text, got); diff != "" {
		t.Fatalf("view content mismatch (-want +got):\n%s", diff)
	}

	v.Close()
	if got := ip.LiveAllocs(enginetest.DomainRaw); got != 0 {
		t.Fatalf("raw live allocs after Close = %d, want 0", got)
	}
}

func TestWideViewFromString(t *testing.T) {
	ip := enginetest.New()

	v, err := codec.WideFromString(ip, "wide text")
	if err != nil {
		t.Fatalf("WideFromString: %v", err)
	}
	defer v.Close()

	got, err := codec.ReadWide(ip.Memory(), v.Ptr())
	if err != nil {
		t.Fatalf("ReadWide: %v", err)
	}
	if string(got) != "wide text" {
		t.Fatalf("view content = %q, want %q", string(got), "wide text")
	}
}
