package runtime_test

import (
	"testing"

	"github.com/pyembed/py-runtime/enginetest"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/runtime"
)

func TestStartStop(t *testing.T) {
	ip := enginetest.New()
	rt := runtime.NewWithBackend(ip)

	if !rt.Initialized() {
		t.Fatal("backend starts initialized")
	}
	// Starting an initialized interpreter is a no-op.
	if err := rt.Start(false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := rt.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if rt.Initialized() {
		t.Fatal("still initialized after Stop")
	}
	if err := rt.Stop(); !errors.IsKind(err, errors.KindNotRunning) {
		t.Fatalf("second Stop: expected not-running error, got %v", err)
	}

	if err := rt.Start(false); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !rt.Initialized() {
		t.Fatal("not initialized after restart")
	}
}

func TestExecute(t *testing.T) {
	ip := enginetest.New()
	rt := runtime.NewWithBackend(ip)

	if err := rt.Execute(`print("hi")`); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := ip.Executed()
	if len(got) != 1 || got[0] != `print("hi")` {
		t.Fatalf("executed = %q", got)
	}

	ip.ExecHook = func(code string) error {
		return errors.Pending(errors.PhaseRuntime, "execute")
	}
	if err := rt.Execute("raise ValueError"); !errors.IsKind(err, errors.KindPending) {
		t.Fatalf("expected pending error, got %v", err)
	}

	if err := rt.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := rt.Execute("1"); !errors.IsKind(err, errors.KindNotRunning) {
		t.Fatalf("Execute after Stop: expected not-running error, got %v", err)
	}
}

func TestImport(t *testing.T) {
	ip := enginetest.New()
	rt := runtime.NewWithBackend(ip)

	ip.DecRef(ip.NewModule("json"))

	m, err := rt.Import("json")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !m.IsModule() {
		t.Error("IsModule = false, want true")
	}
	m.Release()

	if _, err := rt.Import("missing_module"); !errors.IsKind(err, errors.KindPending) {
		t.Fatalf("expected pending error, got %v", err)
	}
}

func TestInfoGetters(t *testing.T) {
	ip := enginetest.New()
	rt := runtime.NewWithBackend(ip)

	if v := rt.Version(); v == "" {
		t.Error("empty version")
	}
	if p := rt.Platform(); p != "wasi" {
		t.Errorf("platform = %q, want %q", p, "wasi")
	}

	name, err := rt.ProgramName()
	if err != nil {
		t.Fatalf("ProgramName: %v", err)
	}
	if string(name) != "enginetest" {
		t.Errorf("program name = %q", string(name))
	}

	prefix, err := rt.Prefix()
	if err != nil {
		t.Fatalf("Prefix: %v", err)
	}
	execPrefix, err := rt.ExecPrefix()
	if err != nil {
		t.Fatalf("ExecPrefix: %v", err)
	}
	if string(prefix) == "" || string(execPrefix) == "" {
		t.Error("empty prefix information")
	}
}

func TestSearchPathRoundTrip(t *testing.T) {
	ip := enginetest.New()
	rt := runtime.NewWithBackend(ip)

	want := []rune("/opt/py/lib:/opt/py/site")
	if err := rt.SetSearchPath(want); err != nil {
		t.Fatalf("SetSearchPath: %v", err)
	}
	got, err := rt.SearchPath()
	if err != nil {
		t.Fatalf("SearchPath: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("search path = %q, want %q", string(got), string(want))
	}

	// The staging view was freed after SetPath consumed it.
	if live := ip.LiveAllocs(enginetest.DomainRaw); live != 1 { // interned getter copy
		t.Fatalf("raw live allocs = %d, want 1", live)
	}
}
