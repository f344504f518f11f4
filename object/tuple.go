package object

// Tuple narrows a Handle to the interpreter's tuple operations.
type Tuple struct {
	Handle
}

// AsTuple narrows h to Tuple, sharing ownership. No type check is performed.
func AsTuple(h Handle) Tuple {
	return Tuple{h.Clone()}
}

// NewTuple creates a tuple of length n with uninitialized slots. Slots must
// be filled with Set before the tuple is handed to the interpreter.
func NewTuple(api API, n int) (Tuple, error) {
	ref, err := api.TupleNew(n)
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{Wrap(api, ref, true)}, nil
}

// PackTuple creates a tuple holding the given items, sharing each one. On
// failure no reference acquired along the way is leaked.
func PackTuple(api API, items ...Handle) (Tuple, error) {
	t, err := NewTuple(api, len(items))
	if err != nil {
		return Tuple{}, err
	}
	for i, item := range items {
		if err := t.Set(i, item); err != nil {
			t.Release()
			return Tuple{}, err
		}
	}
	return t, nil
}

// Size returns the number of items in the tuple.
func (t Tuple) Size() (int, error) {
	return t.api.TupleSize(t.ref)
}

// Get returns the item at position i as a new owned Handle. The underlying
// primitive returns a borrowed reference, so the handle shares it.
func (t Tuple) Get(i int) (Handle, error) {
	ref, err := t.api.TupleGet(t.ref, i)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(t.api, ref, false), nil
}

// Set replaces the item at position i. The underlying primitive steals one
// reference, so the tuple takes its own count and v remains owned by the
// caller.
func (t Tuple) Set(i int, v Handle) error {
	if v.ref != 0 {
		t.api.IncRef(v.ref)
	}
	if err := t.api.TupleSet(t.ref, i, v.ref); err != nil {
		if v.ref != 0 {
			t.api.DecRef(v.ref)
		}
		return err
	}
	return nil
}
