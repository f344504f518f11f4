package engine

import (
	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/errors"
)

// Locale codec. The guest owns the encoding choice; the host only shuttles
// NUL-terminated buffers.

// EncodeLocale converts wide text to its narrow locale form in the tracked
// domain. The returned size includes the NUL terminator.
func (e *Engine) EncodeLocale(text []rune) (pyruntime.Ptr, uint32, error) {
	in, err := e.writeWide(text)
	if err != nil {
		return 0, 0, err
	}
	defer e.RawMem().Free(in)

	v, err := e.call1(fnEncodeLocale, uint64(in))
	if err != nil {
		return 0, 0, err
	}
	if v == 0 {
		return 0, 0, e.pendingError(errors.PhaseEncode, "locale encode")
	}
	out := pyruntime.Ptr(v)
	s, err := codec.ReadNarrow(e.Memory(), out)
	if err != nil {
		e.Mem().Free(out)
		return 0, 0, err
	}
	return out, uint32(len(s) + 1), nil
}

// DecodeLocale converts narrow text to its wide form in the raw domain. The
// returned size includes the NUL terminator.
func (e *Engine) DecodeLocale(text string) (pyruntime.Ptr, uint32, error) {
	in, err := e.writeNarrow(text)
	if err != nil {
		return 0, 0, err
	}
	defer e.RawMem().Free(in)

	v, err := e.call1(fnDecodeLocale, uint64(in))
	if err != nil {
		return 0, 0, err
	}
	if v == 0 {
		return 0, 0, e.pendingError(errors.PhaseDecode, "locale decode")
	}
	out := pyruntime.Ptr(v)
	wide, err := codec.ReadWide(e.Memory(), out)
	if err != nil {
		e.RawMem().Free(out)
		return 0, 0, err
	}
	return out, uint32((len(wide) + 1) * 4), nil
}

// Lifecycle.

// Initialize brings the interpreter up. initsigs controls guest signal
// handler installation.
func (e *Engine) Initialize(initsigs bool) error {
	arg := uint64(0)
	if initsigs {
		arg = 1
	}
	return e.call0(fnInitialize, arg)
}

// Finalize shuts the interpreter down. Tracked-domain allocations become
// invalid.
func (e *Engine) Finalize() error {
	return e.call0(fnFinalize)
}

// Initialized reports whether the interpreter is up.
func (e *Engine) Initialized() bool {
	v, err := e.call1(fnIsInitialized)
	return err == nil && v != 0
}

// RunSimple executes source in the __main__ namespace. A non-zero guest
// status surfaces as a pending error; the indicator is left for the guest.
func (e *Engine) RunSimple(code string) error {
	ptr, err := e.writeNarrow(code)
	if err != nil {
		return err
	}
	defer e.RawMem().Free(ptr)
	return e.statusResult(fnRunSimple, errors.PhaseRuntime, "execute", uint64(ptr))
}

// Version returns the interpreter version banner.
func (e *Engine) Version() string { return e.readStaticNarrow(fnGetVersion) }

// Platform returns the platform identifier.
func (e *Engine) Platform() string { return e.readStaticNarrow(fnGetPlatform) }

// wideStatic resolves a guest-owned wide string getter. The pointer must
// not be freed by the host.
func (e *Engine) wideStatic(name, what string) (pyruntime.Ptr, error) {
	v, err := e.call1(name)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, e.pendingError(errors.PhaseRuntime, what)
	}
	return pyruntime.Ptr(v), nil
}

// ProgramName returns the wide program name. Static, do not free.
func (e *Engine) ProgramName() (pyruntime.Ptr, error) {
	return e.wideStatic(fnGetProgramName, "program name")
}

// Prefix returns the wide installation prefix. Static, do not free.
func (e *Engine) Prefix() (pyruntime.Ptr, error) {
	return e.wideStatic(fnGetPrefix, "prefix")
}

// ExecPrefix returns the wide executable prefix. Static, do not free.
func (e *Engine) ExecPrefix() (pyruntime.Ptr, error) {
	return e.wideStatic(fnGetExecPrefix, "exec prefix")
}

// SearchPath returns the wide module search path. Static, do not free.
func (e *Engine) SearchPath() (pyruntime.Ptr, error) {
	return e.wideStatic(fnGetPath, "search path")
}

// SetPath replaces the module search path with the wide string at ptr.
func (e *Engine) SetPath(ptr pyruntime.Ptr) error {
	return e.call0(fnSetPath, uint64(ptr))
}
