package object

import (
	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/mem"
)

// Str narrows a Handle to the interpreter's unicode operations.
type Str struct {
	Handle
}

// AsStr narrows h to Str, sharing ownership. No type check is performed;
// the caller asserts the dynamic type, typically via IsStr.
func AsStr(h Handle) Str {
	return Str{h.Clone()}
}

// NewStr creates a unicode object from UTF-8 host text.
func NewStr(api API, s string) (Str, error) {
	ref, err := api.StrFromUTF8(s)
	if err != nil {
		return Str{}, err
	}
	return Str{Wrap(api, ref, true)}, nil
}

// NewStrWide creates a unicode object from wide host text.
func NewStrWide(api API, text []rune) (Str, error) {
	ref, err := api.StrFromWide(text)
	if err != nil {
		return Str{}, err
	}
	return Str{Wrap(api, ref, true)}, nil
}

// UTF8 returns the string's narrow form as an independent host copy.
func (s Str) UTF8() (string, error) {
	return s.api.StrUTF8(s.ref)
}

// Wide copies the string into a fresh wide buffer owned by the caller.
// The copy is allocated from the tracked domain, which must be passed in so
// the buffer frees through the domain it came from.
func (s Str) Wide(tracked pyruntime.Allocator) (*mem.Buffer, error) {
	ptr, size, err := s.api.StrWide(s.ref)
	if err != nil {
		return nil, err
	}
	return mem.AdoptBuffer(tracked, ptr, size), nil
}
