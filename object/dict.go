package object

// Dict narrows a Handle to the interpreter's dictionary operations.
type Dict struct {
	Handle
}

// AsDict narrows h to Dict, sharing ownership. No type check is performed.
func AsDict(h Handle) Dict {
	return Dict{h.Clone()}
}

// NewDict creates an empty dictionary.
func NewDict(api API) (Dict, error) {
	ref, err := api.DictNew()
	if err != nil {
		return Dict{}, err
	}
	return Dict{Wrap(api, ref, true)}, nil
}

// Size returns the number of items in the dictionary.
func (d Dict) Size() (int, error) {
	return d.api.DictSize(d.ref)
}

// Get returns the value for key as a new owned Handle. A missing key is a
// lookup error. The underlying primitive returns a borrowed reference, so
// the handle shares it.
func (d Dict) Get(key Handle) (Handle, error) {
	ref, err := d.api.DictGet(d.ref, key.ref)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(d.api, ref, false), nil
}

// Set replaces or inserts the value for key, sharing both.
func (d Dict) Set(key, value Handle) error {
	return d.api.DictSet(d.ref, key.ref, value.ref)
}

// Del removes the item with the given key.
func (d Dict) Del(key Handle) error {
	return d.api.DictDel(d.ref, key.ref)
}

// Contains reports whether the dictionary holds the given key.
func (d Dict) Contains(key Handle) (bool, error) {
	return d.api.DictContains(d.ref, key.ref)
}

// Clear empties the dictionary of all key-value pairs.
func (d Dict) Clear() error {
	return d.api.DictClear(d.ref)
}

// Copy returns a new dictionary with the same key-value pairs.
func (d Dict) Copy() (Dict, error) {
	ref, err := d.api.DictCopy(d.ref)
	if err != nil {
		return Dict{}, err
	}
	return Dict{Wrap(d.api, ref, true)}, nil
}

// SetDefault returns the value for key, inserting def first when the key is
// absent. The underlying primitive returns a borrowed reference, so the
// handle shares it.
func (d Dict) SetDefault(key, def Handle) (Handle, error) {
	ref, err := d.api.DictSetDefault(d.ref, key.ref, def.ref)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(d.api, ref, false), nil
}

// Items returns a new list of the dictionary's key-value pairs.
func (d Dict) Items() (List, error) {
	ref, err := d.api.DictItems(d.ref)
	if err != nil {
		return List{}, err
	}
	return List{Wrap(d.api, ref, true)}, nil
}

// Keys returns a new list of the dictionary's keys.
func (d Dict) Keys() (List, error) {
	ref, err := d.api.DictKeys(d.ref)
	if err != nil {
		return List{}, err
	}
	return List{Wrap(d.api, ref, true)}, nil
}

// Values returns a new list of the dictionary's values.
func (d Dict) Values() (List, error) {
	ref, err := d.api.DictValues(d.ref)
	if err != nil {
		return List{}, err
	}
	return List{Wrap(d.api, ref, true)}, nil
}
