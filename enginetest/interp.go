package enginetest

import (
	"unicode/utf8"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/object"
)

// Func is a host-side callable installed into the fake object graph. args
// are borrowed for the duration of the call; kwargs is the keyword dict ref
// or null. The returned reference must be new (owned by the caller).
type Func func(ip *Interp, args []pyruntime.Ref, kwargs pyruntime.Ref) (pyruntime.Ref, error)

type pair struct {
	key pyruntime.Ref
	val pyruntime.Ref
}

type entry struct {
	kind     object.Kind
	refcnt   int64
	valid    bool
	str      string
	ival     int64
	uval     uint64
	unsigned bool
	fval     float64
	items    []pyruntime.Ref
	pairs    []pair
	attrs    map[string]pyruntime.Ref
	fn       Func
	modName  string
}

// Interp is a pure-Go stand-in for the embedded interpreter. The zero value
// is not usable; call New.
type Interp struct {
	entries  []entry
	freeList []pyruntime.Ref
	arena    *arena
	none     pyruntime.Ref
	modules  map[string]pyruntime.Ref

	initialized bool
	executed    []string

	incRefs int64
	decRefs int64

	// ExecHook, when set, decides the outcome of RunSimple.
	ExecHook func(code string) error

	progName   []rune
	prefix     []rune
	execPrefix []rune
	searchPath []rune

	// interned caches raw-domain copies of the info strings so repeated
	// getter calls do not inflate the allocation counters.
	interned map[string]pyruntime.Ptr
}

// New returns an initialized backend with the none singleton preallocated.
func New() *Interp {
	ip := &Interp{
		arena:       newArena(),
		modules:     make(map[string]pyruntime.Ref),
		interned:    make(map[string]pyruntime.Ptr),
		initialized: true,
		progName:    []rune("enginetest"),
		prefix:      []rune("/usr"),
		execPrefix:  []rune("/usr"),
		searchPath:  []rune("/usr/lib/enginetest"),
	}
	// The runtime holds one permanent reference to the singleton.
	ip.none = ip.create(entry{kind: object.KindNone})
	return ip
}

// create installs e with one reference and returns its ref.
func (ip *Interp) create(e entry) pyruntime.Ref {
	e.refcnt = 1
	e.valid = true
	if n := len(ip.freeList); n > 0 {
		ref := ip.freeList[n-1]
		ip.freeList = ip.freeList[:n-1]
		ip.entries[ref-1] = e
		return ref
	}
	ip.entries = append(ip.entries, e)
	return pyruntime.Ref(len(ip.entries))
}

func (ip *Interp) at(ref pyruntime.Ref) *entry {
	if ref == 0 || int(ref) > len(ip.entries) {
		panic("enginetest: dangling reference")
	}
	e := &ip.entries[ref-1]
	if !e.valid {
		panic("enginetest: use after free")
	}
	return e
}

// IncRef increments the reference count. Null is tolerated.
func (ip *Interp) IncRef(ref pyruntime.Ref) {
	if ref == 0 {
		return
	}
	ip.incRefs++
	ip.at(ref).refcnt++
}

// DecRef decrements the reference count, destroying the object at zero.
// Null is tolerated.
func (ip *Interp) DecRef(ref pyruntime.Ref) {
	if ref == 0 {
		return
	}
	ip.decRefs++
	e := ip.at(ref)
	e.refcnt--
	if e.refcnt > 0 {
		return
	}
	if ref == ip.none {
		panic("enginetest: none singleton over-released")
	}
	// Destroy: drop the object's own references, then recycle the slot.
	items := e.items
	pairs := e.pairs
	attrs := e.attrs
	*e = entry{}
	ip.freeList = append(ip.freeList, ref)
	for _, it := range items {
		ip.DecRef(it)
	}
	for _, p := range pairs {
		ip.DecRef(p.key)
		ip.DecRef(p.val)
	}
	for _, v := range attrs {
		ip.DecRef(v)
	}
}

// RefCount returns the object's live reference count.
func (ip *Interp) RefCount(ref pyruntime.Ref) int64 {
	return ip.at(ref).refcnt
}

// Is reports the dynamic type, allowing subtypes. As in the real runtime,
// bool is a subtype of int.
func (ip *Interp) Is(ref pyruntime.Ref, k object.Kind) bool {
	kind := ip.at(ref).kind
	if kind == k {
		return true
	}
	return k == object.KindInt && kind == object.KindBool
}

// IsExact reports the dynamic type, rejecting subtypes.
func (ip *Interp) IsExact(ref pyruntime.Ref, k object.Kind) bool {
	return ip.at(ref).kind == k
}

// IsCallable reports whether the object can be called.
func (ip *Interp) IsCallable(ref pyruntime.Ref) bool {
	e := ip.at(ref)
	return e.fn != nil || e.kind == object.KindFunction || e.kind == object.KindMethod
}

// IsNumber reports whether the object provides the numeric protocols.
func (ip *Interp) IsNumber(ref pyruntime.Ref) bool {
	switch ip.at(ref).kind {
	case object.KindBool, object.KindInt, object.KindFloat, object.KindComplex:
		return true
	}
	return false
}

// NoneRef returns the none singleton. Borrowed.
func (ip *Interp) NoneRef() pyruntime.Ref { return ip.none }

// GetAttr returns a new reference to a named attribute.
func (ip *Interp) GetAttr(obj pyruntime.Ref, name string) (pyruntime.Ref, error) {
	ref, ok := ip.at(obj).attrs[name]
	if !ok {
		return 0, errors.LookupFailed(errors.PhaseLookup, "attribute", name)
	}
	ip.IncRef(ref)
	return ref, nil
}

// Length implements the length protocol.
func (ip *Interp) Length(ref pyruntime.Ref) (int64, error) {
	e := ip.at(ref)
	switch e.kind {
	case object.KindStr:
		return int64(utf8.RuneCountInString(e.str)), nil
	case object.KindTuple, object.KindList:
		return int64(len(e.items)), nil
	case object.KindDict:
		return int64(len(e.pairs)), nil
	}
	return 0, errors.Pending(errors.PhaseRuntime, "len")
}

var kindNames = map[object.Kind]string{
	object.KindNone:      "NoneType",
	object.KindBool:      "bool",
	object.KindInt:       "int",
	object.KindFloat:     "float",
	object.KindComplex:   "complex",
	object.KindStr:       "str",
	object.KindBytes:     "bytes",
	object.KindByteArray: "bytearray",
	object.KindTuple:     "tuple",
	object.KindList:      "list",
	object.KindDict:      "dict",
	object.KindSet:       "set",
	object.KindFrozenSet: "frozenset",
	object.KindModule:    "module",
	object.KindFunction:  "function",
	object.KindMethod:    "method",
	object.KindCode:      "code",
	object.KindCapsule:   "capsule",
}

// TypeName returns the object's type name.
func (ip *Interp) TypeName(ref pyruntime.Ref) string {
	return kindNames[ip.at(ref).kind]
}

// TypeDoc returns the documentation string of the object's type.
func (ip *Interp) TypeDoc(ref pyruntime.Ref) string {
	return "built-in type " + kindNames[ip.at(ref).kind]
}

// Test instrumentation.

// IncRefCalls returns the number of increment calls made so far.
func (ip *Interp) IncRefCalls() int64 { return ip.incRefs }

// DecRefCalls returns the number of decrement calls made so far.
func (ip *Interp) DecRefCalls() int64 { return ip.decRefs }

// LiveObjects returns the number of live objects, excluding the none
// singleton.
func (ip *Interp) LiveObjects() int {
	n := 0
	for i := range ip.entries {
		if ip.entries[i].valid {
			n++
		}
	}
	return n - 1 // none
}

// LiveAllocs returns the number of outstanding allocations in a domain.
func (ip *Interp) LiveAllocs(d Domain) int {
	n := 0
	for _, info := range ip.arena.live {
		if info.domain == d {
			n++
		}
	}
	return n
}

// AllocCount returns the total number of allocations made in a domain.
func (ip *Interp) AllocCount(d Domain) int { return ip.arena.allocs[d] }

// FreeCount returns the total number of frees made in a domain.
func (ip *Interp) FreeCount(d Domain) int { return ip.arena.frees[d] }

// FailNextAlloc makes the next allocation in a domain report exhaustion.
func (ip *Interp) FailNextAlloc(d Domain) { ip.arena.failNext[d] = true }

// Test graph construction helpers.

// NewFunc installs a host callable and returns a new reference to it.
func (ip *Interp) NewFunc(fn Func) pyruntime.Ref {
	return ip.create(entry{kind: object.KindFunction, fn: fn})
}

// NewModule installs an empty module and registers it for import. The
// returned reference is owned by the caller; the import registry holds its
// own.
func (ip *Interp) NewModule(name string) pyruntime.Ref {
	ref := ip.create(entry{kind: object.KindModule, modName: name, attrs: make(map[string]pyruntime.Ref)})
	ip.IncRef(ref)
	ip.modules[name] = ref
	return ref
}

// SetAttr installs an attribute on an object, sharing the value.
func (ip *Interp) SetAttr(obj pyruntime.Ref, name string, v pyruntime.Ref) {
	e := ip.at(obj)
	if e.attrs == nil {
		e.attrs = make(map[string]pyruntime.Ref)
	}
	if old, ok := e.attrs[name]; ok {
		ip.DecRef(old)
	}
	ip.IncRef(v)
	e.attrs[name] = v
}

// Executed returns the source strings run through RunSimple.
func (ip *Interp) Executed() []string { return ip.executed }
