package emitter

import "github.com/golangsnmp/asngen/internal/module"

// Registry is the run-scoped record of processed modules and declared type
// names. Modules are searched in processing order.
type Registry struct {
	modules  []*module.Module
	declared map[string]string // type name -> declaring module
}

// NewRegistry returns an empty registry for one run.
func NewRegistry() *Registry {
	return &Registry{declared: make(map[string]string)}
}

// Declared reports whether name has been declared in this run, and by
// which module.
func (r *Registry) Declared(name string) (string, bool) {
	mod, ok := r.declared[name]
	return mod, ok
}

// Find searches the modules already processed in this run, in processing
// order, for a top-level definition named name.
func (r *Registry) Find(name string) (*module.Definition, *module.Module) {
	for _, mod := range r.modules {
		if def := mod.Lookup(name); def != nil {
			return def, mod
		}
	}
	return nil, nil
}

// Modules returns the modules processed so far, in processing order.
func (r *Registry) Modules() []*module.Module {
	return r.modules
}

// Len returns the number of declared type names.
func (r *Registry) Len() int {
	return len(r.declared)
}

func (r *Registry) declare(name, mod string) {
	r.declared[name] = mod
}

func (r *Registry) add(mod *module.Module) {
	r.modules = append(r.modules, mod)
}
