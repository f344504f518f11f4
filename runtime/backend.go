package runtime

import (
	"context"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/object"
)

// Backend is the full surface the runtime needs from an interpreter
// binding. engine.Engine implements it over a wasm guest; enginetest.Interp
// implements it in process for tests.
//
// The wide informational getters return pointers to guest-owned static
// strings; callers read them through the backend's Memory and must not free
// them.
type Backend interface {
	object.API
	codec.Converter

	Initialize(initsigs bool) error
	Finalize() error
	Initialized() bool

	RunSimple(code string) error

	Version() string
	Platform() string
	ProgramName() (pyruntime.Ptr, error)
	Prefix() (pyruntime.Ptr, error)
	ExecPrefix() (pyruntime.Ptr, error)
	SearchPath() (pyruntime.Ptr, error)
	SetPath(ptr pyruntime.Ptr) error

	Close(ctx context.Context) error
}
