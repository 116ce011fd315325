package ir

import (
	"log/slog"
	"sort"
)

// TypeRef is a reference to a type by its C name. Extractors record
// references as they scan; the registry binds them to descriptors in a
// second phase once every declaration has been seen, so the unknown
// placeholder is reserved for names genuinely absent from the input.
type TypeRef struct {
	Name   string
	target TypeDescriptor
}

// Ref returns an unresolved reference to the named C type.
func Ref(name string) *TypeRef {
	return &TypeRef{Name: name}
}

// Resolved returns a pre-bound reference. Used by tests and by the
// registry for primitives, which never need a second phase.
func Resolved(d TypeDescriptor) *TypeRef {
	return &TypeRef{Name: d.CName(), target: d}
}

// Def returns the referenced descriptor. Before resolution, or when the
// name is not registered, it returns an unknown placeholder.
func (r *TypeRef) Def() TypeDescriptor {
	if r.target != nil {
		return r.target
	}
	return &UnknownDescriptor{Name: r.Name}
}

// Resolve binds the reference against the registry.
func (r *TypeRef) Resolve(reg *Registry) {
	r.target = reg.Get(r.Name)
}

// Registry is the mutable mapping from C type name to descriptor.
// Insertion order is preserved; the emission layer relies on it to
// group output sections in declaration order. Not safe for concurrent
// use: generation is a single-threaded batch pipeline.
type Registry struct {
	names  []string
	byName map[string]TypeDescriptor

	helperOrder []string
	helpers     map[string]string

	unknown map[string]bool
	logger  *slog.Logger

	functions []*FunctionDescriptor
}

// NewRegistry returns a registry pre-seeded with the C primitive
// mappings. logger receives degradation diagnostics; nil uses the
// default slog logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		byName:  make(map[string]TypeDescriptor),
		helpers: make(map[string]string),
		unknown: make(map[string]bool),
		logger:  logger,
	}
	seedPrimitives(r)
	return r
}

// Register adds a descriptor under its C name. Registration is
// idempotent per name within one pass: a second registration for the
// same name is logged and ignored, keeping the first descriptor.
func (r *Registry) Register(d TypeDescriptor) {
	name := d.CName()
	if _, ok := r.byName[name]; ok {
		r.logger.Warn("duplicate type registration ignored", "type", name)
		return
	}
	r.byName[name] = d
	r.names = append(r.names, name)
}

// Get returns the descriptor registered under name, or an unknown
// placeholder. It never fails; unresolved names are tracked as
// diagnostics, logged once per distinct name.
func (r *Registry) Get(name string) TypeDescriptor {
	if d, ok := r.byName[name]; ok {
		return d
	}
	if !r.unknown[name] {
		r.unknown[name] = true
		r.logger.Warn("unresolved type reference", "type", name)
	}
	return &UnknownDescriptor{Name: name}
}

// Lookup returns the descriptor registered under name without the
// unknown fallback.
func (r *Registry) Lookup(name string) (TypeDescriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Types returns all registered descriptors in insertion order.
func (r *Registry) Types() []TypeDescriptor {
	out := make([]TypeDescriptor, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// EnsureHelper memoizes registration of an auxiliary emission-only
// helper (list wrappers, callback shims). The factory runs at most once
// per name, so each helper is emitted exactly once however many structs
// reference it.
func (r *Registry) EnsureHelper(name string, factory func() string) {
	if _, ok := r.helpers[name]; ok {
		return
	}
	r.helpers[name] = factory()
	r.helperOrder = append(r.helperOrder, name)
}

// Helpers returns the emitted helper sources in first-request order.
func (r *Registry) Helpers() []string {
	out := make([]string, 0, len(r.helperOrder))
	for _, name := range r.helperOrder {
		out = append(out, r.helpers[name])
	}
	return out
}

// AddFunction appends an exported function to the loose-function list.
// Member functions are attached to their owner descriptor instead.
func (r *Registry) AddFunction(f *FunctionDescriptor) {
	r.functions = append(r.functions, f)
}

// Functions returns the loose (module-level) functions in file order.
func (r *Registry) Functions() []*FunctionDescriptor {
	return r.functions
}

// UnknownNames reports the distinct unresolved names seen so far.
func (r *Registry) UnknownNames() []string {
	out := make([]string, 0, len(r.unknown))
	for name := range r.unknown {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve runs the second resolution phase: every descriptor holding
// references by name binds them against the now-complete registry.
// Must be called after all extractors and before emission.
func (r *Registry) Resolve() {
	for _, name := range r.names {
		if res, ok := r.byName[name].(resolver); ok {
			res.resolve(r)
		}
	}
	for _, f := range r.functions {
		f.resolve(r)
	}
}

// Logger returns the registry's diagnostic logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}
