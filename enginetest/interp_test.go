package enginetest

import (
	"testing"

	"github.com/pyembed/py-runtime/object"
)

func TestArenaDomainAccounting(t *testing.T) {
	ip := New()

	p1, err := ip.Mem().Alloc(16)
	if err != nil {
		t.Fatalf("tracked Alloc: %v", err)
	}
	p2, err := ip.RawMem().Alloc(8)
	if err != nil {
		t.Fatalf("raw Alloc: %v", err)
	}
	if p1 == 0 || p2 == 0 || p1 == p2 {
		t.Fatalf("bad pointers %#x, %#x", p1, p2)
	}

	if got := ip.LiveAllocs(DomainTracked); got != 1 {
		t.Fatalf("tracked live = %d, want 1", got)
	}
	if got := ip.LiveAllocs(DomainRaw); got != 1 {
		t.Fatalf("raw live = %d, want 1", got)
	}

	ip.Mem().Free(p1)
	ip.RawMem().Free(p2)
	if got := ip.LiveAllocs(DomainTracked) + ip.LiveAllocs(DomainRaw); got != 0 {
		t.Fatalf("live after free = %d, want 0", got)
	}
}

func TestArenaReallocCopies(t *testing.T) {
	ip := New()

	ptr, err := ip.RawMem().Alloc(4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := ip.Memory().Write(uint32(ptr), []byte("abcd")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	next, err := ip.RawMem().Realloc(ptr, 32)
	if err != nil {
		t.Fatalf("Realloc: %v", err)
	}
	got, err := ip.Memory().Read(uint32(next), 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "abcd" {
		t.Fatalf("payload after realloc = %q, want %q", got, "abcd")
	}
	if got := ip.LiveAllocs(DomainRaw); got != 1 {
		t.Fatalf("raw live = %d, want 1", got)
	}
	ip.RawMem().Free(next)
}

func TestDestroyReleasesContainedReferences(t *testing.T) {
	ip := New()

	item, err := ip.StrFromUTF8("inner")
	if err != nil {
		t.Fatalf("StrFromUTF8: %v", err)
	}
	list, err := ip.ListNew(0)
	if err != nil {
		t.Fatalf("ListNew: %v", err)
	}
	if err := ip.ListAppend(list, item); err != nil {
		t.Fatalf("ListAppend: %v", err)
	}
	ip.DecRef(item)

	if got := ip.LiveObjects(); got != 2 {
		t.Fatalf("live objects = %d, want 2", got)
	}
	ip.DecRef(list)
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects after list destroy = %d, want 0", got)
	}
}

func TestFreeListReusesSlots(t *testing.T) {
	ip := New()

	a, _ := ip.IntFromInt64(1)
	ip.DecRef(a)
	b, _ := ip.IntFromInt64(2)
	if a != b {
		t.Fatalf("slot not reused: %d then %d", a, b)
	}
	ip.DecRef(b)
}

func TestDictUnhashableKey(t *testing.T) {
	ip := New()

	d, _ := ip.DictNew()
	key, _ := ip.ListNew(0)
	val, _ := ip.IntFromInt64(1)

	if err := ip.DictSet(d, key, val); err == nil {
		t.Fatal("expected error for unhashable key")
	}

	ip.DecRef(val)
	ip.DecRef(key)
	ip.DecRef(d)
}

func TestRunSimpleLogsAndGuards(t *testing.T) {
	ip := New()

	if err := ip.RunSimple("x = 1"); err != nil {
		t.Fatalf("RunSimple: %v", err)
	}
	if got := ip.Executed(); len(got) != 1 || got[0] != "x = 1" {
		t.Fatalf("executed = %q", got)
	}

	if err := ip.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := ip.RunSimple("y = 2"); err == nil {
		t.Fatal("expected error after Finalize")
	}
}

func TestBoolIsIntSubtype(t *testing.T) {
	ip := New()

	b := ip.create(entry{kind: object.KindBool, ival: 1})
	if !ip.Is(b, object.KindInt) {
		t.Error("bool should satisfy Is(int)")
	}
	if ip.IsExact(b, object.KindInt) {
		t.Error("bool must not satisfy IsExact(int)")
	}
	if !ip.IsNumber(b) {
		t.Error("bool should satisfy IsNumber")
	}
	ip.DecRef(b)
}
