package object

// Module narrows a Handle to the interpreter's module operations.
type Module struct {
	Handle
}

// AsModule narrows h to Module, sharing ownership. No type check is
// performed.
func AsModule(h Handle) Module {
	return Module{h.Clone()}
}

// ImportModule resolves a module by name through the interpreter's import
// machinery, adopting the result. The name string it builds along the way is
// released whether or not the import succeeds.
func ImportModule(api API, name string) (Module, error) {
	nameStr, err := NewStr(api, name)
	if err != nil {
		return Module{}, err
	}
	defer nameStr.Release()

	ref, err := api.Import(nameStr.Ref())
	if err != nil {
		return Module{}, err
	}
	return Module{Wrap(api, ref, true)}, nil
}

// Filename returns the name of the file the module was loaded from, via its
// __file__ attribute, adopting the result.
func (m Module) Filename() (Str, error) {
	ref, err := m.api.ModuleFilename(m.ref)
	if err != nil {
		return Str{}, err
	}
	return Str{Wrap(m.api, ref, true)}, nil
}
