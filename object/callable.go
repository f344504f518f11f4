package object

// Callable narrows a Handle to the interpreter's call operations.
type Callable struct {
	Handle
}

// AsCallable narrows h to Callable, sharing ownership. No type check is
// performed; callers assert with IsCallable first.
func AsCallable(h Handle) Callable {
	return Callable{h.Clone()}
}

// Call invokes the callable without arguments, adopting the result.
func (c Callable) Call() (Handle, error) {
	ref, err := c.api.CallNoArgs(c.ref)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(c.api, ref, true), nil
}

// Call1 invokes the callable with exactly one positional argument, adopting
// the result.
func (c Callable) Call1(arg Handle) (Handle, error) {
	ref, err := c.api.CallOneArg(c.ref, arg.ref)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(c.api, ref, true), nil
}

// CallArgs invokes the callable with a positional argument tuple, adopting
// the result. A null tuple means no arguments.
func (c Callable) CallArgs(args Tuple) (Handle, error) {
	ref, err := c.api.CallObject(c.ref, args.ref)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(c.api, ref, true), nil
}

// CallKw invokes the callable with positional and keyword arguments,
// adopting the result. Pass an empty tuple when no positional arguments are
// needed; a null dict means no keyword arguments.
func (c Callable) CallKw(args Tuple, kwargs Dict) (Handle, error) {
	ref, err := c.api.Call(c.ref, args.ref, kwargs.ref)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(c.api, ref, true), nil
}
