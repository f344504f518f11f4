package enginetest

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/object"
)

// Factories. Each returns a new reference.

func (ip *Interp) StrFromUTF8(s string) (pyruntime.Ref, error) {
	if !utf8.ValidString(s) {
		return 0, errors.InvalidInput(errors.PhaseRuntime, "invalid UTF-8 in string literal")
	}
	return ip.create(entry{kind: object.KindStr, str: s}), nil
}

func (ip *Interp) StrFromWide(text []rune) (pyruntime.Ref, error) {
	for _, r := range text {
		if utf16.IsSurrogate(r) || r > utf8.MaxRune || r < 0 {
			return 0, errors.EncodingFailed(errors.PhaseDecode, r)
		}
	}
	return ip.create(entry{kind: object.KindStr, str: string(text)}), nil
}

func (ip *Interp) IntFromInt64(v int64) (pyruntime.Ref, error) {
	return ip.create(entry{kind: object.KindInt, ival: v}), nil
}

func (ip *Interp) IntFromUint64(v uint64) (pyruntime.Ref, error) {
	if v > math.MaxInt64 {
		return ip.create(entry{kind: object.KindInt, uval: v, unsigned: true}), nil
	}
	return ip.create(entry{kind: object.KindInt, ival: int64(v)}), nil
}

func (ip *Interp) IntFromString(s string, base int) (pyruntime.Ref, error) {
	t := strings.TrimSpace(s)
	if v, err := strconv.ParseInt(t, base, 64); err == nil {
		return ip.create(entry{kind: object.KindInt, ival: v}), nil
	}
	if v, err := strconv.ParseUint(t, base, 64); err == nil {
		return ip.create(entry{kind: object.KindInt, uval: v, unsigned: true}), nil
	}
	return 0, errors.ConversionFailed(errors.PhaseConvert, "int",
		fmt.Sprintf("invalid literal %q for base %d", s, base))
}

func (ip *Interp) FloatFromFloat64(v float64) (pyruntime.Ref, error) {
	return ip.create(entry{kind: object.KindFloat, fval: v}), nil
}

func (ip *Interp) FloatFromStr(s pyruntime.Ref) (pyruntime.Ref, error) {
	e := ip.at(s)
	if e.kind != object.KindStr {
		return 0, errors.ConversionFailed(errors.PhaseConvert, "float", "argument is not a str")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.str), 64)
	if err != nil {
		return 0, errors.ConversionFailed(errors.PhaseConvert, "float",
			fmt.Sprintf("invalid literal %q", e.str))
	}
	return ip.create(entry{kind: object.KindFloat, fval: v}), nil
}

func (ip *Interp) TupleNew(n int) (pyruntime.Ref, error) {
	if n < 0 {
		return 0, errors.InvalidInput(errors.PhaseRuntime, "negative tuple size")
	}
	return ip.create(entry{kind: object.KindTuple, items: make([]pyruntime.Ref, n)}), nil
}

func (ip *Interp) ListNew(n int) (pyruntime.Ref, error) {
	if n < 0 {
		return 0, errors.InvalidInput(errors.PhaseRuntime, "negative list size")
	}
	return ip.create(entry{kind: object.KindList, items: make([]pyruntime.Ref, n)}), nil
}

func (ip *Interp) DictNew() (pyruntime.Ref, error) {
	return ip.create(entry{kind: object.KindDict}), nil
}

// Scalar extraction.

func (ip *Interp) StrUTF8(ref pyruntime.Ref) (string, error) {
	e := ip.at(ref)
	if e.kind != object.KindStr {
		return "", errors.ConversionFailed(errors.PhaseConvert, "string", "object is not a str")
	}
	return e.str, nil
}

func (ip *Interp) StrWide(ref pyruntime.Ref) (pyruntime.Ptr, uint32, error) {
	e := ip.at(ref)
	if e.kind != object.KindStr {
		return 0, 0, errors.ConversionFailed(errors.PhaseConvert, "wide string", "object is not a str")
	}
	text := []rune(e.str)
	size := uint32((len(text) + 1) * 4)
	ptr, err := ip.Mem().Alloc(size)
	if err != nil {
		return 0, 0, err
	}
	m := ip.Memory()
	off := uint32(ptr)
	for _, r := range text {
		if err := m.WriteU32(off, uint32(r)); err != nil {
			ip.Mem().Free(ptr)
			return 0, 0, err
		}
		off += 4
	}
	if err := m.WriteU32(off, 0); err != nil {
		ip.Mem().Free(ptr)
		return 0, 0, err
	}
	return ptr, size, nil
}

func (ip *Interp) IntAsInt64(ref pyruntime.Ref) (int64, error) {
	e := ip.at(ref)
	switch e.kind {
	case object.KindBool, object.KindInt:
		if e.unsigned {
			return 0, errors.Overflow(errors.PhaseConvert, "int64")
		}
		return e.ival, nil
	}
	return 0, errors.ConversionFailed(errors.PhaseConvert, "int64", "object is not an integer")
}

func (ip *Interp) IntAsUint64(ref pyruntime.Ref) (uint64, error) {
	e := ip.at(ref)
	switch e.kind {
	case object.KindBool, object.KindInt:
		if e.unsigned {
			return e.uval, nil
		}
		if e.ival < 0 {
			return 0, errors.Overflow(errors.PhaseConvert, "uint64")
		}
		return uint64(e.ival), nil
	}
	return 0, errors.ConversionFailed(errors.PhaseConvert, "uint64", "object is not an integer")
}

func (ip *Interp) FloatAsFloat64(ref pyruntime.Ref) (float64, error) {
	e := ip.at(ref)
	switch e.kind {
	case object.KindFloat:
		return e.fval, nil
	case object.KindBool, object.KindInt:
		if e.unsigned {
			return float64(e.uval), nil
		}
		return float64(e.ival), nil
	}
	return 0, errors.ConversionFailed(errors.PhaseConvert, "float64", "object is not numeric")
}

// Sequence protocol.

func (ip *Interp) seq(ref pyruntime.Ref, k object.Kind, op string) (*entry, error) {
	e := ip.at(ref)
	if e.kind != k {
		return nil, errors.ConversionFailed(errors.PhaseRuntime, kindNames[k],
			op+" on "+kindNames[e.kind])
	}
	return e, nil
}

func (ip *Interp) TupleSize(t pyruntime.Ref) (int, error) {
	e, err := ip.seq(t, object.KindTuple, "size")
	if err != nil {
		return 0, err
	}
	return len(e.items), nil
}

func (ip *Interp) TupleGet(t pyruntime.Ref, i int) (pyruntime.Ref, error) {
	e, err := ip.seq(t, object.KindTuple, "item access")
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(e.items) {
		return 0, errors.LookupFailed(errors.PhaseLookup, "index", strconv.Itoa(i))
	}
	return e.items[i], nil // borrowed
}

func (ip *Interp) TupleSet(t pyruntime.Ref, i int, v pyruntime.Ref) error {
	e, err := ip.seq(t, object.KindTuple, "item assignment")
	if err != nil {
		return err
	}
	if i < 0 || i >= len(e.items) {
		return errors.LookupFailed(errors.PhaseLookup, "index", strconv.Itoa(i))
	}
	old := e.items[i]
	e.items[i] = v // steals v
	ip.DecRef(old)
	return nil
}

func (ip *Interp) ListSize(l pyruntime.Ref) (int, error) {
	e, err := ip.seq(l, object.KindList, "size")
	if err != nil {
		return 0, err
	}
	return len(e.items), nil
}

func (ip *Interp) ListGet(l pyruntime.Ref, i int) (pyruntime.Ref, error) {
	e, err := ip.seq(l, object.KindList, "item access")
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(e.items) {
		return 0, errors.LookupFailed(errors.PhaseLookup, "index", strconv.Itoa(i))
	}
	return e.items[i], nil // borrowed
}

func (ip *Interp) ListSet(l pyruntime.Ref, i int, v pyruntime.Ref) error {
	e, err := ip.seq(l, object.KindList, "item assignment")
	if err != nil {
		return err
	}
	if i < 0 || i >= len(e.items) {
		return errors.LookupFailed(errors.PhaseLookup, "index", strconv.Itoa(i))
	}
	old := e.items[i]
	e.items[i] = v // steals v
	ip.DecRef(old)
	return nil
}

func (ip *Interp) ListAppend(l, v pyruntime.Ref) error {
	e, err := ip.seq(l, object.KindList, "append")
	if err != nil {
		return err
	}
	ip.IncRef(v)
	e.items = append(e.items, v)
	return nil
}

func (ip *Interp) ListInsert(l pyruntime.Ref, i int, v pyruntime.Ref) error {
	e, err := ip.seq(l, object.KindList, "insert")
	if err != nil {
		return err
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.items) {
		i = len(e.items)
	}
	ip.IncRef(v)
	e.items = append(e.items, 0)
	copy(e.items[i+1:], e.items[i:])
	e.items[i] = v
	return nil
}

func (ip *Interp) ListSlice(l pyruntime.Ref, lo, hi int) (pyruntime.Ref, error) {
	e, err := ip.seq(l, object.KindList, "slice")
	if err != nil {
		return 0, err
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(e.items) {
		hi = len(e.items)
	}
	if hi < lo {
		hi = lo
	}
	items := make([]pyruntime.Ref, hi-lo)
	copy(items, e.items[lo:hi])
	for _, it := range items {
		ip.IncRef(it)
	}
	return ip.create(entry{kind: object.KindList, items: items}), nil
}

func (ip *Interp) ListSort(l pyruntime.Ref) error {
	e, err := ip.seq(l, object.KindList, "sort")
	if err != nil {
		return err
	}
	var sortErr error
	sort.SliceStable(e.items, func(i, j int) bool {
		less, err := ip.less(e.items[i], e.items[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return less
	})
	return sortErr
}

func (ip *Interp) less(a, b pyruntime.Ref) (bool, error) {
	ea, eb := ip.at(a), ip.at(b)
	if ea.kind == object.KindStr && eb.kind == object.KindStr {
		return ea.str < eb.str, nil
	}
	if ip.IsNumber(a) && ip.IsNumber(b) {
		fa, _ := ip.FloatAsFloat64(a)
		fb, _ := ip.FloatAsFloat64(b)
		return fa < fb, nil
	}
	return false, errors.Pending(errors.PhaseRuntime,
		fmt.Sprintf("comparison of %s and %s", kindNames[ea.kind], kindNames[eb.kind]))
}

func (ip *Interp) ListReverse(l pyruntime.Ref) error {
	e, err := ip.seq(l, object.KindList, "reverse")
	if err != nil {
		return err
	}
	for i, j := 0, len(e.items)-1; i < j; i, j = i+1, j-1 {
		e.items[i], e.items[j] = e.items[j], e.items[i]
	}
	return nil
}

func (ip *Interp) ListAsTuple(l pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.seq(l, object.KindList, "tuple conversion")
	if err != nil {
		return 0, err
	}
	items := make([]pyruntime.Ref, len(e.items))
	copy(items, e.items)
	for _, it := range items {
		ip.IncRef(it)
	}
	return ip.create(entry{kind: object.KindTuple, items: items}), nil
}

// Mapping protocol. Keys hash by value for scalars and by identity for
// other hashable kinds; lists and dicts are unhashable.

func (ip *Interp) hashKey(key pyruntime.Ref) (string, error) {
	e := ip.at(key)
	switch e.kind {
	case object.KindNone:
		return "none", nil
	case object.KindStr:
		return "s:" + e.str, nil
	case object.KindBool, object.KindInt:
		if e.unsigned {
			return "n:" + strconv.FormatUint(e.uval, 10), nil
		}
		return "n:" + strconv.FormatInt(e.ival, 10), nil
	case object.KindFloat:
		if e.fval == math.Trunc(e.fval) && !math.IsInf(e.fval, 0) {
			return "n:" + strconv.FormatInt(int64(e.fval), 10), nil
		}
		return "f:" + strconv.FormatFloat(e.fval, 'g', -1, 64), nil
	case object.KindList, object.KindDict, object.KindSet, object.KindByteArray:
		return "", errors.Pending(errors.PhaseRuntime, "hash of unhashable "+kindNames[e.kind])
	}
	return "r:" + strconv.FormatUint(uint64(key), 10), nil
}

func (ip *Interp) dict(d pyruntime.Ref, op string) (*entry, error) {
	e := ip.at(d)
	if e.kind != object.KindDict {
		return nil, errors.ConversionFailed(errors.PhaseRuntime, "dict", op+" on "+kindNames[e.kind])
	}
	return e, nil
}

func (ip *Interp) dictFind(e *entry, hk string) int {
	for i, p := range e.pairs {
		phk, err := ip.hashKey(p.key)
		if err == nil && phk == hk {
			return i
		}
	}
	return -1
}

func (ip *Interp) DictSize(d pyruntime.Ref) (int, error) {
	e, err := ip.dict(d, "size")
	if err != nil {
		return 0, err
	}
	return len(e.pairs), nil
}

func (ip *Interp) DictGet(d, key pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.dict(d, "lookup")
	if err != nil {
		return 0, err
	}
	hk, err := ip.hashKey(key)
	if err != nil {
		return 0, err
	}
	if i := ip.dictFind(e, hk); i >= 0 {
		return e.pairs[i].val, nil // borrowed
	}
	return 0, errors.LookupFailed(errors.PhaseLookup, "key", ip.describe(key))
}

func (ip *Interp) DictSet(d, key, v pyruntime.Ref) error {
	e, err := ip.dict(d, "assignment")
	if err != nil {
		return err
	}
	hk, err := ip.hashKey(key)
	if err != nil {
		return err
	}
	if i := ip.dictFind(e, hk); i >= 0 {
		old := e.pairs[i].val
		ip.IncRef(v)
		e.pairs[i].val = v
		ip.DecRef(old)
		return nil
	}
	ip.IncRef(key)
	ip.IncRef(v)
	e.pairs = append(e.pairs, pair{key: key, val: v})
	return nil
}

func (ip *Interp) DictDel(d, key pyruntime.Ref) error {
	e, err := ip.dict(d, "deletion")
	if err != nil {
		return err
	}
	hk, err := ip.hashKey(key)
	if err != nil {
		return err
	}
	i := ip.dictFind(e, hk)
	if i < 0 {
		return errors.LookupFailed(errors.PhaseLookup, "key", ip.describe(key))
	}
	p := e.pairs[i]
	e.pairs = append(e.pairs[:i], e.pairs[i+1:]...)
	ip.DecRef(p.key)
	ip.DecRef(p.val)
	return nil
}

func (ip *Interp) DictContains(d, key pyruntime.Ref) (bool, error) {
	e, err := ip.dict(d, "membership")
	if err != nil {
		return false, err
	}
	hk, err := ip.hashKey(key)
	if err != nil {
		return false, err
	}
	return ip.dictFind(e, hk) >= 0, nil
}

func (ip *Interp) DictClear(d pyruntime.Ref) error {
	e, err := ip.dict(d, "clear")
	if err != nil {
		return err
	}
	pairs := e.pairs
	e.pairs = nil
	for _, p := range pairs {
		ip.DecRef(p.key)
		ip.DecRef(p.val)
	}
	return nil
}

func (ip *Interp) DictCopy(d pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.dict(d, "copy")
	if err != nil {
		return 0, err
	}
	pairs := make([]pair, len(e.pairs))
	copy(pairs, e.pairs)
	for _, p := range pairs {
		ip.IncRef(p.key)
		ip.IncRef(p.val)
	}
	return ip.create(entry{kind: object.KindDict, pairs: pairs}), nil
}

func (ip *Interp) DictItems(d pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.dict(d, "items")
	if err != nil {
		return 0, err
	}
	items := make([]pyruntime.Ref, 0, len(e.pairs))
	for _, p := range e.pairs {
		ip.IncRef(p.key)
		ip.IncRef(p.val)
		items = append(items, ip.create(entry{
			kind:  object.KindTuple,
			items: []pyruntime.Ref{p.key, p.val},
		}))
	}
	return ip.create(entry{kind: object.KindList, items: items}), nil
}

func (ip *Interp) DictKeys(d pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.dict(d, "keys")
	if err != nil {
		return 0, err
	}
	items := make([]pyruntime.Ref, 0, len(e.pairs))
	for _, p := range e.pairs {
		ip.IncRef(p.key)
		items = append(items, p.key)
	}
	return ip.create(entry{kind: object.KindList, items: items}), nil
}

func (ip *Interp) DictValues(d pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.dict(d, "values")
	if err != nil {
		return 0, err
	}
	items := make([]pyruntime.Ref, 0, len(e.pairs))
	for _, p := range e.pairs {
		ip.IncRef(p.val)
		items = append(items, p.val)
	}
	return ip.create(entry{kind: object.KindList, items: items}), nil
}

func (ip *Interp) DictSetDefault(d, key, def pyruntime.Ref) (pyruntime.Ref, error) {
	e, err := ip.dict(d, "setdefault")
	if err != nil {
		return 0, err
	}
	hk, err := ip.hashKey(key)
	if err != nil {
		return 0, err
	}
	if i := ip.dictFind(e, hk); i >= 0 {
		return e.pairs[i].val, nil // borrowed
	}
	ip.IncRef(key)
	ip.IncRef(def)
	e.pairs = append(e.pairs, pair{key: key, val: def})
	return def, nil // borrowed
}

func (ip *Interp) describe(ref pyruntime.Ref) string {
	if ref == 0 {
		return "<null>"
	}
	e := ip.at(ref)
	switch e.kind {
	case object.KindStr:
		return e.str
	case object.KindBool, object.KindInt:
		if e.unsigned {
			return strconv.FormatUint(e.uval, 10)
		}
		return strconv.FormatInt(e.ival, 10)
	case object.KindFloat:
		return strconv.FormatFloat(e.fval, 'g', -1, 64)
	}
	return "<" + kindNames[e.kind] + ">"
}

// Call protocol.

func (ip *Interp) callable(fn pyruntime.Ref) (Func, error) {
	e := ip.at(fn)
	if e.fn == nil {
		return nil, errors.Pending(errors.PhaseCall, kindNames[e.kind]+" object call")
	}
	return e.fn, nil
}

func (ip *Interp) CallNoArgs(fn pyruntime.Ref) (pyruntime.Ref, error) {
	f, err := ip.callable(fn)
	if err != nil {
		return 0, err
	}
	return f(ip, nil, 0)
}

func (ip *Interp) CallOneArg(fn, arg pyruntime.Ref) (pyruntime.Ref, error) {
	f, err := ip.callable(fn)
	if err != nil {
		return 0, err
	}
	return f(ip, []pyruntime.Ref{arg}, 0)
}

func (ip *Interp) CallObject(fn, args pyruntime.Ref) (pyruntime.Ref, error) {
	f, err := ip.callable(fn)
	if err != nil {
		return 0, err
	}
	if args == 0 {
		return f(ip, nil, 0)
	}
	e := ip.at(args)
	if e.kind != object.KindTuple {
		return 0, errors.ConversionFailed(errors.PhaseCall, "tuple", "argument object is not a tuple")
	}
	items := make([]pyruntime.Ref, len(e.items))
	copy(items, e.items)
	return f(ip, items, 0)
}

func (ip *Interp) Call(fn, args, kwargs pyruntime.Ref) (pyruntime.Ref, error) {
	f, err := ip.callable(fn)
	if err != nil {
		return 0, err
	}
	var items []pyruntime.Ref
	if args != 0 {
		e := ip.at(args)
		if e.kind != object.KindTuple {
			return 0, errors.ConversionFailed(errors.PhaseCall, "tuple", "argument object is not a tuple")
		}
		items = make([]pyruntime.Ref, len(e.items))
		copy(items, e.items)
	}
	return f(ip, items, kwargs)
}

// Modules.

func (ip *Interp) Import(name pyruntime.Ref) (pyruntime.Ref, error) {
	modName, err := ip.StrUTF8(name)
	if err != nil {
		return 0, err
	}
	ref, ok := ip.modules[modName]
	if !ok {
		return 0, errors.Pending(errors.PhaseRuntime, fmt.Sprintf("import of %q", modName))
	}
	ip.IncRef(ref)
	return ref, nil
}

func (ip *Interp) ModuleFilename(m pyruntime.Ref) (pyruntime.Ref, error) {
	e := ip.at(m)
	if e.kind != object.KindModule {
		return 0, errors.ConversionFailed(errors.PhaseRuntime, "module", "object is not a module")
	}
	ref, ok := e.attrs["__file__"]
	if !ok {
		return 0, errors.LookupFailed(errors.PhaseLookup, "attribute", "__file__")
	}
	ip.IncRef(ref)
	return ref, nil
}
