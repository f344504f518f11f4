package engine

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/errors"
)

// Config holds configuration for engine creation.
type Config struct {
	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// ModuleName names the instantiated guest module. Defaults to "py".
	ModuleName string

	// DisableWASI skips instantiating wasi_snapshot_preview1. Only useful
	// for guests built without a libc.
	DisableWASI bool
}

// Engine hosts one interpreter instance inside a wazero runtime. It
// implements object.API, codec.Converter and the runtime.Backend lifecycle.
//
// Guest calls are serialized by an internal mutex; the interpreter itself is
// single-threaded.
type Engine struct {
	ctx     context.Context
	runtime wazero.Runtime
	module  api.Module
	guest   api.Memory

	mu  sync.Mutex
	fns map[string]api.Function
}

// New compiles and instantiates the interpreter binary.
func New(ctx context.Context, wasmBytes []byte, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	name := "py"
	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.ModuleName != "" {
			name = cfg.ModuleName
		}
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	if cfg == nil || !cfg.DisableWASI {
		wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	}

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("compile interpreter module", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled,
		wazero.NewModuleConfig().WithName(name).WithStartFunctions("_initialize", "_start"))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("instantiate interpreter module", err)
	}

	mem := mod.Memory()
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", "memory")
	}

	e := &Engine{
		ctx:     ctx,
		runtime: rt,
		module:  mod,
		guest:   mem,
		fns:     make(map[string]api.Function, len(allExports)),
	}
	for _, ex := range allExports {
		fn := mod.ExportedFunction(ex)
		if fn == nil {
			_ = rt.Close(ctx)
			return nil, errors.NotFound(errors.PhaseLoad, "export", ex)
		}
		e.fns[ex] = fn
	}

	Logger().Debug("interpreter instantiated",
		zap.String("module", name),
		zap.Int("exports", len(e.fns)))
	return e, nil
}

// Close tears down the wazero runtime and every guest resource.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// call invokes a guest export with the engine lock held.
func (e *Engine) call(name string, params ...uint64) ([]uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res, err := e.fns[name].Call(e.ctx, params...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindPending, err, "guest trap in "+name)
	}
	return res, nil
}

// call1 invokes an export returning a single value.
func (e *Engine) call1(name string, params ...uint64) (uint64, error) {
	res, err := e.call(name, params...)
	if err != nil {
		return 0, err
	}
	return res[0], nil
}

// call0 invokes an export returning nothing.
func (e *Engine) call0(name string, params ...uint64) error {
	_, err := e.call(name, params...)
	return err
}

// errKind reads the pending error classification without clearing it.
func (e *Engine) errKind() uint64 {
	kind, err := e.call1(fnErrKind)
	if err != nil {
		return errNone
	}
	return kind
}

// pendingError classifies the guest's pending error indicator into the
// structured taxonomy. The indicator is left set.
func (e *Engine) pendingError(phase errors.Phase, op string) error {
	switch e.errKind() {
	case errAllocation:
		return errors.AllocationFailed(phase, 0)
	case errEncoding:
		return errors.Wrap(phase, errors.KindEncoding, nil, op)
	case errLookup:
		return errors.LookupFailed(phase, "name", op)
	case errConversion:
		return errors.ConversionFailed(phase, op, "rejected by interpreter")
	case errOverflow:
		return errors.Overflow(phase, op)
	}
	return errors.Pending(phase, op)
}

// errOccurred reports whether the guest error indicator is set.
func (e *Engine) errOccurred() bool {
	v, err := e.call1(fnErrOccurred)
	return err == nil && v != 0
}

// refResult interprets a ref-returning primitive: the null ref is the
// failure sentinel.
func (e *Engine) refResult(name string, phase errors.Phase, op string, params ...uint64) (pyruntime.Ref, error) {
	v, err := e.call1(name, params...)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, e.pendingError(phase, op)
	}
	return pyruntime.Ref(v), nil
}

// statusResult interprets a status-returning primitive: non-zero is failure.
func (e *Engine) statusResult(name string, phase errors.Phase, op string, params ...uint64) error {
	v, err := e.call1(name, params...)
	if err != nil {
		return err
	}
	if int32(v) != 0 {
		return e.pendingError(phase, op)
	}
	return nil
}

// Memory exposes the guest's linear memory.
func (e *Engine) Memory() pyruntime.Memory { return guestMemory{mem: e.guest} }

// Mem returns the tracked-domain allocator (pymem_*). Valid only while the
// interpreter is initialized.
func (e *Engine) Mem() pyruntime.Allocator {
	return guestAlloc{e: e, malloc: fnMemMalloc, realloc: fnMemRealloc, free: fnMemFree}
}

// RawMem returns the raw-domain allocator (pyraw_*).
func (e *Engine) RawMem() pyruntime.Allocator {
	return guestAlloc{e: e, malloc: fnRawMalloc, realloc: fnRawRealloc, free: fnRawFree}
}

// guestAlloc adapts one pair of guest allocator exports.
type guestAlloc struct {
	e       *Engine
	malloc  string
	realloc string
	free    string
}

func (a guestAlloc) Alloc(size uint32) (pyruntime.Ptr, error) {
	v, err := a.e.call1(a.malloc, uint64(size))
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	return pyruntime.Ptr(v), nil
}

func (a guestAlloc) Realloc(ptr pyruntime.Ptr, size uint32) (pyruntime.Ptr, error) {
	v, err := a.e.call1(a.realloc, uint64(ptr), uint64(size))
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	return pyruntime.Ptr(v), nil
}

func (a guestAlloc) Free(ptr pyruntime.Ptr) {
	if ptr == 0 {
		return
	}
	if err := a.e.call0(a.free, uint64(ptr)); err != nil {
		Logger().Warn("guest free failed", zap.Error(err))
	}
}

// guestMemory adapts wazero's memory to the Memory interface.
type guestMemory struct {
	mem api.Memory
}

func oob(offset, length uint32) error {
	return errors.InvalidInput(errors.PhaseRuntime,
		fmt.Sprintf("guest memory access [%#x, +%d) out of bounds", offset, length))
}

func (m guestMemory) Read(offset, length uint32) ([]byte, error) {
	buf, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, oob(offset, length)
	}
	out := make([]byte, length)
	copy(out, buf)
	return out, nil
}

func (m guestMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return oob(offset, uint32(len(data)))
	}
	return nil
}

func (m guestMemory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, oob(offset, 1)
	}
	return v, nil
}

func (m guestMemory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, oob(offset, 4)
	}
	return v, nil
}

func (m guestMemory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, oob(offset, 8)
	}
	return v, nil
}

func (m guestMemory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return oob(offset, 1)
	}
	return nil
}

func (m guestMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return oob(offset, 4)
	}
	return nil
}

func (m guestMemory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return oob(offset, 8)
	}
	return nil
}

// f64arg packs a float for the wazero call ABI.
func f64arg(v float64) uint64 { return math.Float64bits(v) }
