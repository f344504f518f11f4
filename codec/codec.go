package codec

import (
	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/mem"
)

// Converter is the locale conversion surface of the embedded interpreter.
//
// Both converters allocate the result inside the interpreter heap and return
// its address and size in bytes, including the NUL terminator. EncodeLocale
// allocates from the tracked domain, DecodeLocale from the raw domain; the
// returned allocation is owned by the caller.
type Converter interface {
	// EncodeLocale converts wide text to NUL-terminated narrow bytes.
	EncodeLocale(text []rune) (pyruntime.Ptr, uint32, error)

	// DecodeLocale converts narrow text to NUL-terminated wide characters.
	DecodeLocale(text string) (pyruntime.Ptr, uint32, error)

	Memory() pyruntime.Memory
	Mem() pyruntime.Allocator
	RawMem() pyruntime.Allocator
}

// EncodeToNarrow converts wide text to its locale-encoded narrow form.
// The result is owned by the returned tracked-domain buffer.
func EncodeToNarrow(cv Converter, text []rune) (*mem.Buffer, error) {
	ptr, size, err := cv.EncodeLocale(text)
	if err != nil {
		return nil, err
	}
	return mem.AdoptBuffer(cv.Mem(), ptr, size), nil
}

// DecodeToWide converts narrow text to its wide-character form.
// The result is owned by the returned raw-domain buffer.
func DecodeToWide(cv Converter, text string) (*mem.RawBuffer, error) {
	ptr, size, err := cv.DecodeLocale(text)
	if err != nil {
		return nil, err
	}
	return mem.AdoptRawBuffer(cv.RawMem(), ptr, size), nil
}

// ReadNarrow reads a NUL-terminated narrow string from interpreter memory.
func ReadNarrow(m pyruntime.Memory, ptr pyruntime.Ptr) (string, error) {
	var buf []byte
	for off := uint32(ptr); ; off++ {
		b, err := m.ReadU8(off)
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

// ReadWide reads a NUL-terminated wide string from interpreter memory.
func ReadWide(m pyruntime.Memory, ptr pyruntime.Ptr) ([]rune, error) {
	var text []rune
	for off := uint32(ptr); ; off += 4 {
		c, err := m.ReadU32(off)
		if err != nil {
			return nil, err
		}
		if c == 0 {
			return text, nil
		}
		text = append(text, rune(c))
	}
}

// wideBytes lays out wide text as 4-byte little-endian code points with a
// NUL terminator.
func wideBytes(text []rune) []byte {
	out := make([]byte, 0, (len(text)+1)*4)
	for _, r := range text {
		out = append(out, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	return append(out, 0, 0, 0, 0)
}
