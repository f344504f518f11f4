package object

// List narrows a Handle to the interpreter's list operations.
type List struct {
	Handle
}

// AsList narrows h to List, sharing ownership. No type check is performed.
func AsList(h Handle) List {
	return List{h.Clone()}
}

// NewList creates a list of length n with uninitialized slots, or an empty
// list when n is 0.
func NewList(api API, n int) (List, error) {
	ref, err := api.ListNew(n)
	if err != nil {
		return List{}, err
	}
	return List{Wrap(api, ref, true)}, nil
}

// ListOf creates a list holding the given items, sharing each one. On
// failure no reference acquired along the way is leaked.
func ListOf(api API, items ...Handle) (List, error) {
	l, err := NewList(api, 0)
	if err != nil {
		return List{}, err
	}
	for _, item := range items {
		if err := l.Append(item); err != nil {
			l.Release()
			return List{}, err
		}
	}
	return l, nil
}

// Size returns the number of items in the list.
func (l List) Size() (int, error) {
	return l.api.ListSize(l.ref)
}

// Get returns the item at position i as a new owned Handle. The underlying
// primitive returns a borrowed reference, so the handle shares it.
func (l List) Get(i int) (Handle, error) {
	ref, err := l.api.ListGet(l.ref, i)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(l.api, ref, false), nil
}

// Set replaces the item at position i. The underlying primitive steals one
// reference, so the list takes its own count and v remains owned by the
// caller.
func (l List) Set(i int, v Handle) error {
	if v.ref != 0 {
		l.api.IncRef(v.ref)
	}
	if err := l.api.ListSet(l.ref, i, v.ref); err != nil {
		if v.ref != 0 {
			l.api.DecRef(v.ref)
		}
		return err
	}
	return nil
}

// Append adds an item at the end of the list, sharing it.
func (l List) Append(v Handle) error {
	return l.api.ListAppend(l.ref, v.ref)
}

// Insert places an item in front of position i, sharing it.
func (l List) Insert(i int, v Handle) error {
	return l.api.ListInsert(l.ref, i, v.ref)
}

// Slice returns a new list holding the items between lo and hi.
func (l List) Slice(lo, hi int) (List, error) {
	ref, err := l.api.ListSlice(l.ref, lo, hi)
	if err != nil {
		return List{}, err
	}
	return List{Wrap(l.api, ref, true)}, nil
}

// Sort orders the items in place.
func (l List) Sort() error {
	return l.api.ListSort(l.ref)
}

// Reverse reverses the items in place.
func (l List) Reverse() error {
	return l.api.ListReverse(l.ref)
}

// ToTuple returns a new tuple holding the list's items.
func (l List) ToTuple() (Tuple, error) {
	ref, err := l.api.ListAsTuple(l.ref)
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{Wrap(l.api, ref, true)}, nil
}
