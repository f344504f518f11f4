package enginetest

import (
	"context"
	"unicode/utf16"
	"unicode/utf8"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/errors"
)

// Converter surface. The locale is UTF-8.

// EncodeLocale converts wide text to NUL-terminated UTF-8 in the tracked
// domain.
func (ip *Interp) EncodeLocale(text []rune) (pyruntime.Ptr, uint32, error) {
	var buf []byte
	for _, r := range text {
		if utf16.IsSurrogate(r) || r > utf8.MaxRune || r < 0 {
			return 0, 0, errors.EncodingFailed(errors.PhaseEncode, r)
		}
		buf = utf8.AppendRune(buf, r)
	}
	buf = append(buf, 0)
	ptr, err := ip.Mem().Alloc(uint32(len(buf)))
	if err != nil {
		return 0, 0, err
	}
	if err := ip.Memory().Write(uint32(ptr), buf); err != nil {
		ip.Mem().Free(ptr)
		return 0, 0, err
	}
	return ptr, uint32(len(buf)), nil
}

// DecodeLocale converts narrow text to NUL-terminated wide characters in the
// raw domain.
func (ip *Interp) DecodeLocale(text string) (pyruntime.Ptr, uint32, error) {
	if !utf8.ValidString(text) {
		return 0, 0, errors.EncodingFailed(errors.PhaseDecode, utf8.RuneError)
	}
	return ip.wideAlloc([]rune(text))
}

// wideAlloc lays out text as NUL-terminated 4-byte code points in the raw
// domain.
func (ip *Interp) wideAlloc(text []rune) (pyruntime.Ptr, uint32, error) {
	size := uint32((len(text) + 1) * 4)
	ptr, err := ip.RawMem().Alloc(size)
	if err != nil {
		return 0, 0, err
	}
	m := ip.Memory()
	off := uint32(ptr)
	for _, r := range text {
		if err := m.WriteU32(off, uint32(r)); err != nil {
			ip.RawMem().Free(ptr)
			return 0, 0, err
		}
		off += 4
	}
	if err := m.WriteU32(off, 0); err != nil {
		ip.RawMem().Free(ptr)
		return 0, 0, err
	}
	return ptr, size, nil
}

// Memory exposes the arena as interpreter linear memory.
func (ip *Interp) Memory() pyruntime.Memory { return guestMemory{ip: ip} }

// Mem returns the tracked-domain allocator. It refuses allocations while the
// interpreter is finalized.
func (ip *Interp) Mem() pyruntime.Allocator { return domainAlloc{ip: ip, d: DomainTracked} }

// RawMem returns the raw-domain allocator, valid across the whole process
// lifetime.
func (ip *Interp) RawMem() pyruntime.Allocator { return domainAlloc{ip: ip, d: DomainRaw} }

// Lifecycle surface.

// Initialize brings the interpreter up. Idempotent.
func (ip *Interp) Initialize(initsigs bool) error {
	_ = initsigs
	ip.initialized = true
	return nil
}

// Finalize shuts the interpreter down. Tracked-domain allocations made
// before the shutdown stay readable but no new ones are granted.
func (ip *Interp) Finalize() error {
	ip.initialized = false
	return nil
}

// Initialized reports whether the interpreter is up.
func (ip *Interp) Initialized() bool { return ip.initialized }

// RunSimple executes source in the __main__ namespace.
func (ip *Interp) RunSimple(code string) error {
	if !ip.initialized {
		return errors.NotRunning("execute")
	}
	ip.executed = append(ip.executed, code)
	if ip.ExecHook != nil {
		return ip.ExecHook(code)
	}
	return nil
}

// Version returns the interpreter version banner.
func (ip *Interp) Version() string { return "3.12.0 (enginetest)" }

// Platform returns the platform identifier.
func (ip *Interp) Platform() string { return "wasi" }

// wideStatic returns a raw-domain wide copy of text, interned so repeated
// calls hand back the same pointer. The caller must not free it.
func (ip *Interp) wideStatic(text []rune) (pyruntime.Ptr, error) {
	if ptr, ok := ip.interned[string(text)]; ok {
		return ptr, nil
	}
	ptr, _, err := ip.wideAlloc(text)
	if err != nil {
		return 0, err
	}
	ip.interned[string(text)] = ptr
	return ptr, nil
}

// ProgramName returns the wide program name. Static, do not free.
func (ip *Interp) ProgramName() (pyruntime.Ptr, error) { return ip.wideStatic(ip.progName) }

// Prefix returns the wide installation prefix. Static, do not free.
func (ip *Interp) Prefix() (pyruntime.Ptr, error) { return ip.wideStatic(ip.prefix) }

// ExecPrefix returns the wide executable prefix. Static, do not free.
func (ip *Interp) ExecPrefix() (pyruntime.Ptr, error) { return ip.wideStatic(ip.execPrefix) }

// SearchPath returns the wide module search path. Static, do not free.
func (ip *Interp) SearchPath() (pyruntime.Ptr, error) { return ip.wideStatic(ip.searchPath) }

// SetPath replaces the module search path with the wide string at ptr.
func (ip *Interp) SetPath(ptr pyruntime.Ptr) error {
	text, err := codec.ReadWide(ip.Memory(), ptr)
	if err != nil {
		return err
	}
	ip.searchPath = text
	return nil
}

// Close releases backend resources. The fake has none.
func (ip *Interp) Close(ctx context.Context) error {
	_ = ctx
	return nil
}
