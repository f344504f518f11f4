package runtime

import (
	"context"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/engine"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/object"
)

// Runtime drives one embedded interpreter.
type Runtime struct {
	backend Backend
}

// Option adjusts engine construction.
type Option func(*engine.Config)

// WithMemoryLimitPages caps guest memory, in 64KB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(cfg *engine.Config) { cfg.MemoryLimitPages = pages }
}

// WithModuleName names the instantiated guest module.
func WithModuleName(name string) Option {
	return func(cfg *engine.Config) { cfg.ModuleName = name }
}

// WithoutWASI skips instantiating wasi_snapshot_preview1.
func WithoutWASI() Option {
	return func(cfg *engine.Config) { cfg.DisableWASI = true }
}

// New compiles and instantiates an interpreter wasm binary.
func New(ctx context.Context, wasm []byte, opts ...Option) (*Runtime, error) {
	var cfg engine.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	eng, err := engine.New(ctx, wasm, &cfg)
	if err != nil {
		return nil, errors.Load("create engine", err)
	}
	return &Runtime{backend: eng}, nil
}

// NewWithBackend wraps an existing backend. Used by tests to substitute an
// in-memory interpreter.
func NewWithBackend(b Backend) *Runtime {
	return &Runtime{backend: b}
}

// Start brings the interpreter up. initsigs controls guest signal handler
// installation. Starting an already started interpreter is a no-op.
func (r *Runtime) Start(initsigs bool) error {
	if r.backend.Initialized() {
		return nil
	}
	return r.backend.Initialize(initsigs)
}

// Stop shuts the interpreter down. No handle or tracked-domain buffer may
// outlive Stop.
func (r *Runtime) Stop() error {
	if !r.backend.Initialized() {
		return errors.NotRunning("stop")
	}
	return r.backend.Finalize()
}

// Initialized reports whether the interpreter is up.
func (r *Runtime) Initialized() bool {
	return r.backend.Initialized()
}

// Execute runs source in the __main__ namespace.
func (r *Runtime) Execute(code string) error {
	if !r.backend.Initialized() {
		return errors.NotRunning("execute")
	}
	return r.backend.RunSimple(code)
}

// Import resolves a module through the interpreter's import machinery.
func (r *Runtime) Import(name string) (object.Module, error) {
	if !r.backend.Initialized() {
		return object.Module{}, errors.NotRunning("import")
	}
	return object.ImportModule(r.backend, name)
}

// Version returns the interpreter version banner.
func (r *Runtime) Version() string { return r.backend.Version() }

// Platform returns the platform identifier.
func (r *Runtime) Platform() string { return r.backend.Platform() }

// readWideInfo resolves one wide informational getter into host text.
func (r *Runtime) readWideInfo(get func() (pyruntime.Ptr, error)) ([]rune, error) {
	p, err := get()
	if err != nil {
		return nil, err
	}
	return codec.ReadWide(r.backend.Memory(), p)
}

// ProgramName returns the interpreter's program name.
func (r *Runtime) ProgramName() ([]rune, error) {
	return r.readWideInfo(r.backend.ProgramName)
}

// Prefix returns the installation prefix.
func (r *Runtime) Prefix() ([]rune, error) {
	return r.readWideInfo(r.backend.Prefix)
}

// ExecPrefix returns the executable prefix.
func (r *Runtime) ExecPrefix() ([]rune, error) {
	return r.readWideInfo(r.backend.ExecPrefix)
}

// SearchPath returns the module search path.
func (r *Runtime) SearchPath() ([]rune, error) {
	return r.readWideInfo(r.backend.SearchPath)
}

// SetSearchPath replaces the module search path.
func (r *Runtime) SetSearchPath(path []rune) error {
	view, err := codec.WideFromRunes(r.backend, path)
	if err != nil {
		return err
	}
	defer view.Close()
	return r.backend.SetPath(view.Ptr())
}

// API exposes the object protocol of the running interpreter.
func (r *Runtime) API() object.API { return r.backend }

// Converter exposes the locale codec of the running interpreter.
func (r *Runtime) Converter() codec.Converter { return r.backend }

// Close releases the interpreter and all engine resources.
func (r *Runtime) Close(ctx context.Context) error {
	return r.backend.Close(ctx)
}
