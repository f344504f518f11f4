package codec

import (
	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/mem"
)

// NarrowView presents text as a NUL-terminated narrow buffer inside the
// interpreter heap, converting from wide input when necessary. A view built
// from an existing narrow pointer borrows it and owns nothing; a view built
// from host text owns its buffer until Close.
type NarrowView struct {
	ptr   pyruntime.Ptr
	owned *mem.Buffer
}

// NarrowFromPtr borrows an existing narrow string in interpreter memory.
// The view must not outlive the borrowed allocation.
func NarrowFromPtr(ptr pyruntime.Ptr) *NarrowView {
	return &NarrowView{ptr: ptr}
}

// NarrowFromString copies host text into a tracked-domain buffer. Host
// strings are already narrow, so no encoding conversion occurs.
func NarrowFromString(cv Converter, s string) (*NarrowView, error) {
	data := append([]byte(s), 0)
	buf, err := mem.NewBuffer(cv.Mem(), uint32(len(data)))
	if err != nil {
		return nil, err
	}
	if err := cv.Memory().Write(uint32(buf.Ptr()), data); err != nil {
		buf.Free()
		return nil, err
	}
	return &NarrowView{ptr: buf.Ptr(), owned: buf}, nil
}

// NarrowFromRunes converts wide host text through the interpreter's locale
// encoder, owning the conversion buffer.
func NarrowFromRunes(cv Converter, text []rune) (*NarrowView, error) {
	buf, err := EncodeToNarrow(cv, text)
	if err != nil {
		return nil, err
	}
	return &NarrowView{ptr: buf.Ptr(), owned: buf}, nil
}

// Ptr returns the narrow string address, valid until Close.
func (v *NarrowView) Ptr() pyruntime.Ptr { return v.ptr }

// Close releases the conversion buffer, if the view owns one. Idempotent.
func (v *NarrowView) Close() {
	if v.owned != nil {
		v.owned.Free()
		v.owned = nil
	}
	v.ptr = 0
}

// WideView presents text as a NUL-terminated wide buffer inside the
// interpreter heap, converting from narrow input when necessary.
type WideView struct {
	ptr   pyruntime.Ptr
	owned *mem.RawBuffer
}

// WideFromPtr borrows an existing wide string in interpreter memory.
// The view must not outlive the borrowed allocation.
func WideFromPtr(ptr pyruntime.Ptr) *WideView {
	return &WideView{ptr: ptr}
}

// WideFromRunes copies wide host text into a raw-domain buffer. No encoding
// conversion occurs.
func WideFromRunes(cv Converter, text []rune) (*WideView, error) {
	data := wideBytes(text)
	buf, err := mem.NewRawBuffer(cv.RawMem(), uint32(len(data)))
	if err != nil {
		return nil, err
	}
	if err := cv.Memory().Write(uint32(buf.Ptr()), data); err != nil {
		buf.Free()
		return nil, err
	}
	return &WideView{ptr: buf.Ptr(), owned: buf}, nil
}

// WideFromString converts narrow host text through the interpreter's locale
// decoder, owning the conversion buffer.
func WideFromString(cv Converter, s string) (*WideView, error) {
	buf, err := DecodeToWide(cv, s)
	if err != nil {
		return nil, err
	}
	return &WideView{ptr: buf.Ptr(), owned: buf}, nil
}

// Ptr returns the wide string address, valid until Close.
func (v *WideView) Ptr() pyruntime.Ptr { return v.ptr }

// Close releases the conversion buffer, if the view owns one. Idempotent.
func (v *WideView) Close() {
	if v.owned != nil {
		v.owned.Free()
		v.owned = nil
	}
	v.ptr = 0
}
