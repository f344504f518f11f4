package object

// Int narrows a Handle to the interpreter's integer operations.
type Int struct {
	Handle
}

// AsInt narrows h to Int, sharing ownership. No type check is performed.
func AsInt(h Handle) Int {
	return Int{h.Clone()}
}

// NewInt creates an integer object from a host int64.
func NewInt(api API, v int64) (Int, error) {
	ref, err := api.IntFromInt64(v)
	if err != nil {
		return Int{}, err
	}
	return Int{Wrap(api, ref, true)}, nil
}

// NewIntUint creates an integer object from a host uint64.
func NewIntUint(api API, v uint64) (Int, error) {
	ref, err := api.IntFromUint64(v)
	if err != nil {
		return Int{}, err
	}
	return Int{Wrap(api, ref, true)}, nil
}

// NewIntString creates an integer object from text interpreted in the given
// radix. If base is not 0, it must be between 2 and 36 inclusive; base 0
// selects the radix from the text's prefix.
func NewIntString(api API, s string, base int) (Int, error) {
	ref, err := api.IntFromString(s, base)
	if err != nil {
		return Int{}, err
	}
	return Int{Wrap(api, ref, true)}, nil
}

// Int64 returns the integer's value. Values outside the int64 range fail
// with an overflow error.
func (i Int) Int64() (int64, error) {
	return i.api.IntAsInt64(i.ref)
}

// Uint64 returns the integer's value. Negative values and values outside the
// uint64 range fail with an overflow error.
func (i Int) Uint64() (uint64, error) {
	return i.api.IntAsUint64(i.ref)
}

// Float narrows a Handle to the interpreter's float operations.
type Float struct {
	Handle
}

// AsFloat narrows h to Float, sharing ownership. No type check is performed.
func AsFloat(h Handle) Float {
	return Float{h.Clone()}
}

// NewFloat creates a float object from a host float64.
func NewFloat(api API, v float64) (Float, error) {
	ref, err := api.FloatFromFloat64(v)
	if err != nil {
		return Float{}, err
	}
	return Float{Wrap(api, ref, true)}, nil
}

// FloatFromStr creates a float object by parsing a str object.
func FloatFromStr(api API, s Str) (Float, error) {
	ref, err := api.FloatFromStr(s.Ref())
	if err != nil {
		return Float{}, err
	}
	return Float{Wrap(api, ref, true)}, nil
}

// Float64 returns the float's value. Integer objects convert; anything else
// fails with a conversion error.
func (f Float) Float64() (float64, error) {
	return f.api.FloatAsFloat64(f.ref)
}
