package object_test

import (
	"testing"

	"github.com/pyembed/py-runtime/enginetest"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/object"
)

func TestAdoptReleaseIsNeutral(t *testing.T) {
	ip := enginetest.New()

	ref, err := ip.StrFromUTF8("transient")
	if err != nil {
		t.Fatalf("StrFromUTF8: %v", err)
	}
	h := object.Wrap(ip, ref, true)
	if h.RefCount() != 1 {
		t.Fatalf("refcount = %d, want 1", h.RefCount())
	}
	h.Release()

	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}

func TestShareWrapIncrements(t *testing.T) {
	ip := enginetest.New()

	ref, err := ip.StrFromUTF8("shared")
	if err != nil {
		t.Fatalf("StrFromUTF8: %v", err)
	}
	h := object.Wrap(ip, ref, false)
	if got := ip.RefCount(ref); got != 2 {
		t.Fatalf("refcount after share = %d, want 2", got)
	}

	h.Release()
	if got := ip.RefCount(ref); got != 1 {
		t.Fatalf("refcount after Release = %d, want 1", got)
	}
	ip.DecRef(ref)
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}

func TestCloneCounts(t *testing.T) {
	ip := enginetest.New()

	h, err := object.NewStr(ip, "cloneme")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	c := h.Clone()
	if got := h.RefCount(); got != 2 {
		t.Fatalf("refcount after Clone = %d, want 2", got)
	}

	c.Release()
	if got := h.RefCount(); got != 1 {
		t.Fatalf("refcount after clone Release = %d, want 1", got)
	}
	h.Release()
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}

func TestReleaseNullNeverDecrements(t *testing.T) {
	ip := enginetest.New()

	var h object.Handle
	before := ip.DecRefCalls()
	h.Release()
	h.Release()
	if got := ip.DecRefCalls(); got != before {
		t.Fatalf("DecRef calls = %d, want %d", got, before)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	ip := enginetest.New()

	h, err := object.NewStr(ip, "once")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	before := ip.DecRefCalls()
	h.Release()
	h.Release()
	h.Release()
	if got := ip.DecRefCalls(); got != before+1 {
		t.Fatalf("DecRef calls = %d, want %d", got, before+1)
	}
}

func TestHelloStr(t *testing.T) {
	ip := enginetest.New()

	h, err := object.NewStr(ip, "hello")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	defer h.Release()

	if !h.IsStr() {
		t.Error("IsStr = false, want true")
	}
	if h.IsInt() {
		t.Error("IsInt = true, want false")
	}
	got, err := h.UTF8()
	if err != nil {
		t.Fatalf("UTF8: %v", err)
	}
	if got != "hello" {
		t.Fatalf("UTF8 = %q, want %q", got, "hello")
	}
	if n, err := h.Len(); err != nil || n != 5 {
		t.Fatalf("Len = %d, %v; want 5", n, err)
	}
}

func TestGetAttrMissing(t *testing.T) {
	ip := enginetest.New()

	mod := object.Wrap(ip, ip.NewModule("bare"), true)
	defer mod.Release()

	before := mod.RefCount()
	_, err := mod.GetAttr("no_such_attr")
	if !errors.IsKind(err, errors.KindLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if got := mod.RefCount(); got != before {
		t.Fatalf("owner refcount changed on failed lookup: %d, want %d", got, before)
	}
}

func TestGetAttrOwned(t *testing.T) {
	ip := enginetest.New()

	mod := object.Wrap(ip, ip.NewModule("m"), true)
	defer mod.Release()
	val, err := object.NewStr(ip, "attrval")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	ip.SetAttr(mod.Ref(), "name", val.Ref())

	got, err := mod.GetAttr("name")
	if err != nil {
		t.Fatalf("GetAttr: %v", err)
	}
	if got.RefCount() != 3 { // val + module attr + lookup result
		t.Fatalf("refcount = %d, want 3", got.RefCount())
	}
	got.Release()
	val.Release()
}

func TestIsNone(t *testing.T) {
	ip := enginetest.New()

	none := object.NewNone(ip)
	defer none.Release()
	if !none.IsNone() {
		t.Error("none handle: IsNone = false, want true")
	}

	var null object.Handle
	if null.IsNone() {
		t.Error("null handle: IsNone = true, want false")
	}
	if !null.IsNull() {
		t.Error("null handle: IsNull = false, want true")
	}
	if none.IsNull() {
		t.Error("none handle: IsNull = true, want false")
	}
}

func TestSetReplacesReference(t *testing.T) {
	ip := enginetest.New()

	a, err := object.NewStr(ip, "a")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	b, err := object.NewStr(ip, "b")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}

	h := a.Clone()
	h.Set(b.Handle)
	if !h.Equal(b.Handle) {
		t.Fatal("handle does not reference b after Set")
	}
	if got := a.RefCount(); got != 1 {
		t.Fatalf("a refcount = %d, want 1", got)
	}
	if got := b.RefCount(); got != 2 {
		t.Fatalf("b refcount = %d, want 2", got)
	}

	h.Release()
	a.Release()
	b.Release()
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}
