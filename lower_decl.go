package carbono

import "fmt"

// lowerStructDef registers a struct in the type registry and emits its C
// typedef (spec.md §4.3 pre-pass 1, §4.2 "the struct pass").
func (l *Lowerer) lowerStructDef(n *StructDef) {
	l.types.RegisterStruct(n.Name)
	for _, f := range n.Fields {
		l.types.RegisterField(n.Name, f.Name, f.Type)
	}

	l.out.writel(fmt.Sprintf("typedef struct %s {", n.Name))
	l.out.indent()
	for _, f := range n.Fields {
		l.out.writeil(fmt.Sprintf("%s %s;", cType(f.Type, l.types), f.Name))
	}
	l.out.unindent()
	l.out.writel(fmt.Sprintf("} %s;", n.Name))
	l.out.writel("")
}

// lowerExternBlock emits the generated `<NS>_Module` struct (one handle
// plus one function-pointer field per ExternFunc), binds the namespace
// alias in scope as a MODULE binding, and queues the dlopen/dlsym loads
// that populate it into the entry point's prelude (SPEC_FULL.md's "extern
// block module namespace struct").
func (l *Lowerer) lowerExternBlock(n *ExternBlock) {
	structName := sanitizeCIdent(n.Name) + "_Module"
	globalName := "g_" + n.Name

	l.out.writel(fmt.Sprintf("typedef struct %s {", structName))
	l.out.indent()
	l.out.writeil("void *handle;")
	for _, f := range n.Funcs {
		l.out.writeil(fmt.Sprintf("%s (*%s)(%s);", cType(f.ReturnType, l.types), f.Name, paramListC(f.Params, l.types)))
	}
	l.out.unindent()
	l.out.writel(fmt.Sprintf("} %s;", structName))
	l.out.writel(fmt.Sprintf("static %s %s;", structName, globalName))
	l.out.writel("")

	l.scope.Bind(n.Name, Binding{Base: n.Name, IsModule: true})

	l.externPrelude = append(l.externPrelude,
		fmt.Sprintf("%s.handle = dlopen(%q, RTLD_NOW | RTLD_GLOBAL);", globalName, n.LibName))
	for _, f := range n.Funcs {
		sym := f.Alias
		if sym == "" {
			sym = f.Name
		}
		l.externPrelude = append(l.externPrelude, fmt.Sprintf(
			"%s.%s = (%s (*)(%s))dlsym(%s.handle, %q);",
			globalName, f.Name, cType(f.ReturnType, l.types), paramListC(f.Params, l.types), globalName, sym,
		))
	}
}

// lowerFuncProto emits a forward declaration so mutually-recursive and
// forward-referencing calls always compile regardless of source order
// (spec.md §4.3 pre-pass 3).
func (l *Lowerer) lowerFuncProto(n *FuncDef) {
	if n.Body == nil {
		return
	}
	l.out.writel(fmt.Sprintf("static %s %s(%s);", cType(n.ReturnType, l.types), n.Name, paramListC(n.Params, l.types)))
}

// lowerFuncBody emits a function's signature and body. Every parameter is
// bound in a fresh frame before the body lowers; a parameter named `eu` or
// `self` is forced to IsReference regardless of its declared type (spec.md
// §4.3 rule 4).
func (l *Lowerer) lowerFuncBody(n *FuncDef) {
	l.out.writel(fmt.Sprintf("static %s %s(%s) {", cType(n.ReturnType, l.types), n.Name, paramListC(n.Params, l.types)))
	l.out.indent()

	l.scope.Enter()
	for _, p := range n.Params {
		forceRef := p.Name == "eu" || p.Name == "self"
		l.scope.Bind(p.Name, newBinding(p.Type, l.types, forceRef))
	}
	for _, stmt := range n.Body.Items {
		l.lowerStmt(stmt)
	}
	l.scope.Exit()

	l.out.unindent()
	l.out.writel("}")
	l.out.writel("")
}

// paramListC renders a parameter list for a C signature. A struct-typed
// parameter not named eu/self still gets a pointer C type (every
// struct-typed binding is a reference, spec.md §4.3 rule 1); eu/self are
// forced to a pointer type here too so the declared signature matches the
// pointer the caller actually always passes.
func paramListC(params []Param, reg *TypeRegistry) string {
	if len(params) == 0 {
		return "void"
	}
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		t := cType(p.Type, reg)
		if (p.Name == "eu" || p.Name == "self") && !reg.IsStructType(getBaseType(p.Type)) && t[len(t)-1] != '*' {
			t += "*"
		}
		out += fmt.Sprintf("%s %s", t, p.Name)
	}
	return out
}
