package carbono

// Binding is what scope_lookup returns: a structured type instead of a raw
// string with an ad-hoc trailing-'*' convention (spec.md §4.2's "twist",
// generalized per the §9 DESIGN NOTES: "store, per symbol, a structured
// type ... PROP_ACCESS and method-dispatch logic then consult one
// predicate").
type Binding struct {
	// Base is the type string as written at the declaration site, with
	// array brackets stripped (use ArrayDepth for those).
	Base string
	// ArrayDepth is the array nesting depth of the declared type (0 for
	// a scalar).
	ArrayDepth int
	// IsStruct is true when Base names a registered struct.
	IsStruct bool
	// IsReference is true when the C-level representation of this
	// binding is a pointer: every struct-typed variable (spec.md §4.3
	// rule 1), plus any parameter named `eu` or `self` regardless of its
	// syntactic type (spec.md §4.3 rule 4, the implicit receiver).
	IsReference bool
	// IsModule marks a binding introduced by an EXTERN_BLOCK namespace
	// (the "Module binding" in the GLOSSARY): Base holds the namespace
	// alias rather than a real SL type.
	IsModule bool
}

// IsPointer implements the single predicate the §9 DESIGN NOTES call for:
// PROP_ACCESS and method dispatch consult this instead of re-deriving
// pointer-ness from string suffixes and registry lookups at each call site.
func (b Binding) IsPointer() bool {
	return b.IsReference || (b.IsStruct && b.ArrayDepth == 0)
}

// TypeString reconstructs the declared-type spelling of a binding (the
// array-bracket prefix plus Base), for diagnostics and for re-deriving the C
// type via cType.
func (b Binding) TypeString() string {
	s := b.Base
	for i := 0; i < b.ArrayDepth; i++ {
		s = "[" + s + "]"
	}
	return s
}

func newBinding(declaredType string, reg *TypeRegistry, forceReference bool) Binding {
	depth := getArrayDepth(declaredType)
	base := getBaseType(declaredType)
	isStruct := reg.IsStructType(base)
	return Binding{
		Base:        base,
		ArrayDepth:  depth,
		IsStruct:    isStruct,
		IsReference: forceReference || (isStruct && depth == 0),
	}
}

// scopeFrame is one lexical block or function-body mapping of name to
// Binding (spec.md §3.4: "Scope frame").
type scopeFrame map[string]Binding

// ScopeStack is the lexically scoped name->Binding map (spec.md §3.4,
// §4.2). Frames follow strict LIFO discipline: every scope_enter during
// lowering is matched by a scope_exit before the enclosing node returns
// (spec.md §8, "Scope discipline").
type ScopeStack struct {
	frames []scopeFrame
}

// NewScopeStack returns an empty stack. Lowering always enters at least one
// frame before binding anything (spec.md §4.2 invariant: "at least one
// frame exists during lowering").
func NewScopeStack() *ScopeStack {
	return &ScopeStack{}
}

// Enter pushes a new, empty frame.
func (s *ScopeStack) Enter() {
	s.frames = append(s.frames, scopeFrame{})
}

// Exit pops the top frame. It panics if called with no frame open: every
// Exit in this codebase is paired with a prior Enter by construction, so
// an empty stack here means a real engine bug, not a malformed program.
func (s *ScopeStack) Exit() {
	if len(s.frames) == 0 {
		panic("carbono: ScopeStack.Exit called with no open frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of open frames, used by tests asserting the
// scope-discipline invariant (spec.md §8).
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Bind writes into the top frame. A duplicate name in the same frame
// overwrites the previous binding (spec.md §4.2: "duplicate names in one
// frame overwrite").
func (s *ScopeStack) Bind(name string, b Binding) {
	s.frames[len(s.frames)-1][name] = b
}

// Lookup searches top-to-bottom (innermost first); shadowing is explicit.
func (s *ScopeStack) Lookup(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// TypeRegistry maps struct-name -> field-map (spec.md §3.4: "Type
// registry"). Unlike ScopeStack, it survives the entire compilation: it is
// populated once during the struct-declaration pass and never popped.
type TypeRegistry struct {
	structs map[string]map[string]string
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{structs: map[string]map[string]string{}}
}

// RegisterStruct creates an empty field-map for name if it doesn't already
// have one.
func (r *TypeRegistry) RegisterStruct(name string) {
	if _, ok := r.structs[name]; !ok {
		r.structs[name] = map[string]string{}
	}
}

// RegisterField records a field's type, creating the struct on demand
// (spec.md §4.2).
func (r *TypeRegistry) RegisterField(structName, field, fieldType string) {
	r.RegisterStruct(structName)
	r.structs[structName][field] = fieldType
}

// IsStructType reports whether s is a key of the registry.
func (r *TypeRegistry) IsStructType(s string) bool {
	_, ok := r.structs[s]
	return ok
}

// LookupFieldType returns the declared type of a struct field, or false
// when the struct or field isn't registered.
func (r *TypeRegistry) LookupFieldType(structName, field string) (string, bool) {
	fields, ok := r.structs[structName]
	if !ok {
		return "", false
	}
	t, ok := fields[field]
	return t, ok
}

// Fields returns the registered field-name -> field-type map of a struct
// (nil when the struct isn't registered). Map iteration does not follow
// declaration order; the StructDef node holds that order.
func (r *TypeRegistry) Fields(structName string) map[string]string {
	return r.structs[structName]
}
