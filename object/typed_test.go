package object_test

import (
	"testing"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/enginetest"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/object"
)

// intVal extracts an int64 through a properly released typed narrowing.
func intVal(t *testing.T, h object.Handle) int64 {
	t.Helper()
	i := object.AsInt(h)
	defer i.Release()
	v, err := i.Int64()
	if err != nil {
		t.Fatalf("Int64: %v", err)
	}
	return v
}

func TestIntConversions(t *testing.T) {
	ip := enginetest.New()

	i, err := object.NewInt(ip, -42)
	if err != nil {
		t.Fatalf("NewInt: %v", err)
	}
	defer i.Release()

	if v, err := i.Int64(); err != nil || v != -42 {
		t.Fatalf("Int64 = %d, %v; want -42", v, err)
	}
	if _, err := i.Uint64(); !errors.IsKind(err, errors.KindOverflow) {
		t.Fatalf("Uint64 of negative: expected overflow error, got %v", err)
	}

	big, err := object.NewIntUint(ip, 1<<63+5)
	if err != nil {
		t.Fatalf("NewIntUint: %v", err)
	}
	defer big.Release()
	if _, err := big.Int64(); !errors.IsKind(err, errors.KindOverflow) {
		t.Fatalf("Int64 of 2^63+5: expected overflow error, got %v", err)
	}
	if v, err := big.Uint64(); err != nil || v != 1<<63+5 {
		t.Fatalf("Uint64 = %d, %v; want %d", v, err, uint64(1<<63+5))
	}
}

func TestIntFromString(t *testing.T) {
	ip := enginetest.New()

	i, err := object.NewIntString(ip, "ff", 16)
	if err != nil {
		t.Fatalf("NewIntString: %v", err)
	}
	defer i.Release()
	if v, err := i.Int64(); err != nil || v != 255 {
		t.Fatalf("Int64 = %d, %v; want 255", v, err)
	}

	if _, err := object.NewIntString(ip, "not a number", 10); !errors.IsKind(err, errors.KindConversion) {
		t.Fatalf("expected conversion error, got %v", err)
	}
}

func TestFloatConversions(t *testing.T) {
	ip := enginetest.New()

	f, err := object.NewFloat(ip, 2.5)
	if err != nil {
		t.Fatalf("NewFloat: %v", err)
	}
	defer f.Release()
	if v, err := f.Float64(); err != nil || v != 2.5 {
		t.Fatalf("Float64 = %g, %v; want 2.5", v, err)
	}

	s, err := object.NewStr(ip, "3.25")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	defer s.Release()
	g, err := object.FloatFromStr(ip, s)
	if err != nil {
		t.Fatalf("FloatFromStr: %v", err)
	}
	defer g.Release()
	if v, err := g.Float64(); err != nil || v != 3.25 {
		t.Fatalf("Float64 = %g, %v; want 3.25", v, err)
	}
}

func TestTupleProtocol(t *testing.T) {
	ip := enginetest.New()

	a, _ := object.NewInt(ip, 1)
	b, _ := object.NewStr(ip, "two")

	tup, err := object.PackTuple(ip, a.Handle, b.Handle)
	if err != nil {
		t.Fatalf("PackTuple: %v", err)
	}
	a.Release()
	b.Release()

	if n, err := tup.Size(); err != nil || n != 2 {
		t.Fatalf("Size = %d, %v; want 2", n, err)
	}
	item, err := tup.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !item.IsStr() {
		t.Error("item 1: IsStr = false, want true")
	}
	item.Release()

	if _, err := tup.Get(7); !errors.IsKind(err, errors.KindLookup) {
		t.Fatalf("Get out of range: expected lookup error, got %v", err)
	}

	tup.Release()
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}

func TestListProtocol(t *testing.T) {
	ip := enginetest.New()

	three, _ := object.NewInt(ip, 3)
	one, _ := object.NewInt(ip, 1)
	two, _ := object.NewInt(ip, 2)

	l, err := object.ListOf(ip, three.Handle, one.Handle, two.Handle)
	if err != nil {
		t.Fatalf("ListOf: %v", err)
	}
	three.Release()
	one.Release()
	two.Release()

	if err := l.Sort(); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	first, err := l.Get(0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v := intVal(t, first); v != 1 {
		t.Fatalf("sorted head = %d, want 1", v)
	}

	if err := l.Reverse(); err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	head, err := l.Get(0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v := intVal(t, head); v != 3 {
		t.Fatalf("reversed head = %d, want 3", v)
	}

	sub, err := l.Slice(0, 2)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if n, _ := sub.Size(); n != 2 {
		t.Fatalf("slice size = %d, want 2", n)
	}

	tup, err := l.ToTuple()
	if err != nil {
		t.Fatalf("ToTuple: %v", err)
	}
	if n, _ := tup.Size(); n != 3 {
		t.Fatalf("tuple size = %d, want 3", n)
	}

	first.Release()
	head.Release()
	sub.Release()
	tup.Release()
	l.Release()
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}

func TestDictProtocol(t *testing.T) {
	ip := enginetest.New()

	d, err := object.NewDict(ip)
	if err != nil {
		t.Fatalf("NewDict: %v", err)
	}
	key, _ := object.NewStr(ip, "k")
	val, _ := object.NewInt(ip, 10)

	if err := d.Set(key.Handle, val.Handle); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ok, err := d.Contains(key.Handle); err != nil || !ok {
		t.Fatalf("Contains = %v, %v; want true", ok, err)
	}
	got, err := d.Get(key.Handle)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Equal(val.Handle) {
		t.Error("Get returned a different object")
	}
	got.Release()

	other, _ := object.NewStr(ip, "missing")
	if _, err := d.Get(other.Handle); !errors.IsKind(err, errors.KindLookup) {
		t.Fatalf("Get missing key: expected lookup error, got %v", err)
	}
	other.Release()

	keys, err := d.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if n, _ := keys.Size(); n != 1 {
		t.Fatalf("keys size = %d, want 1", n)
	}
	keys.Release()

	if err := d.Del(key.Handle); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if n, _ := d.Size(); n != 0 {
		t.Fatalf("size after Del = %d, want 0", n)
	}

	key.Release()
	val.Release()
	d.Release()
	if got := ip.LiveObjects(); got != 0 {
		t.Fatalf("live objects = %d, want 0", got)
	}
}

func TestCallableArityForms(t *testing.T) {
	ip := enginetest.New()

	// Echoes its argument count as an int.
	h := object.Wrap(ip, ip.NewFunc(
		func(in *enginetest.Interp, args []pyruntime.Ref, kwargs pyruntime.Ref) (pyruntime.Ref, error) {
			return in.IntFromInt64(int64(len(args)))
		}), true)
	defer h.Release()
	fn := object.AsCallable(h)
	defer fn.Release()

	if !fn.IsCallable() {
		t.Fatal("IsCallable = false, want true")
	}

	r0, err := fn.Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if v := intVal(t, r0); v != 0 {
		t.Fatalf("Call arity = %d, want 0", v)
	}

	arg, _ := object.NewStr(ip, "x")
	r1, err := fn.Call1(arg.Handle)
	if err != nil {
		t.Fatalf("Call1: %v", err)
	}
	if v := intVal(t, r1); v != 1 {
		t.Fatalf("Call1 arity = %d, want 1", v)
	}

	args, err := object.PackTuple(ip, arg.Handle, arg.Handle)
	if err != nil {
		t.Fatalf("PackTuple: %v", err)
	}
	r2, err := fn.CallArgs(args)
	if err != nil {
		t.Fatalf("CallArgs: %v", err)
	}
	if v := intVal(t, r2); v != 2 {
		t.Fatalf("CallArgs arity = %d, want 2", v)
	}

	kwargs, err := object.NewDict(ip)
	if err != nil {
		t.Fatalf("NewDict: %v", err)
	}
	r3, err := fn.CallKw(args, kwargs)
	if err != nil {
		t.Fatalf("CallKw: %v", err)
	}
	if v := intVal(t, r3); v != 2 {
		t.Fatalf("CallKw arity = %d, want 2", v)
	}

	for _, h := range []object.Handle{r0, r1, r2, r3} {
		h.Release()
	}
	arg.Release()
	args.Release()
	kwargs.Release()
}

func TestCallNotCallable(t *testing.T) {
	ip := enginetest.New()

	s, _ := object.NewStr(ip, "nope")
	defer s.Release()

	c := object.AsCallable(s.Handle)
	defer c.Release()
	if _, err := c.Call(); !errors.IsKind(err, errors.KindPending) {
		t.Fatalf("expected pending error, got %v", err)
	}
}

func TestImportModule(t *testing.T) {
	ip := enginetest.New()

	modRef := ip.NewModule("mymod")
	file, _ := object.NewStr(ip, "/lib/mymod.py")
	ip.SetAttr(modRef, "__file__", file.Ref())
	file.Release()
	ip.DecRef(modRef) // registry keeps its own reference

	m, err := object.ImportModule(ip, "mymod")
	if err != nil {
		t.Fatalf("ImportModule: %v", err)
	}
	defer m.Release()

	fname, err := m.Filename()
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	defer fname.Release()
	if s, err := fname.UTF8(); err != nil || s != "/lib/mymod.py" {
		t.Fatalf("Filename = %q, %v; want %q", s, err, "/lib/mymod.py")
	}

	if _, err := object.ImportModule(ip, "ghost"); !errors.IsKind(err, errors.KindPending) {
		t.Fatalf("missing module: expected pending error, got %v", err)
	}
}

func TestStrWideCopy(t *testing.T) {
	ip := enginetest.New()

	s, err := object.NewStr(ip, "wïde")
	if err != nil {
		t.Fatalf("NewStr: %v", err)
	}
	defer s.Release()

	buf, err := s.Wide(ip.Mem())
	if err != nil {
		t.Fatalf("Wide: %v", err)
	}
	if buf.Size() != 5*4 {
		t.Fatalf("size = %d, want 20", buf.Size())
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 1 {
		t.Fatalf("tracked live allocs = %d, want 1", got)
	}
	buf.Free()
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("tracked live allocs after Free = %d, want 0", got)
	}
}
