package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcdocval/mcdoc/internal/debug"
	"github.com/mcdocval/mcdoc/token"
)

// SchemaError is a resolution-time error: a missing import, a duplicate
// name, a cycle that had to be broken, or an unresolvable dispatch
// target, per spec §7.
type SchemaError struct {
	Message string
	Pos     *token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s at %s", e.Message, e.Pos)
	}
	return e.Message
}

// Resolve merges a set of parsed Units into a single read-only Schema
// Index: it fully qualifies names, splices spreads, and indexes
// dispatchers, per spec §4.3. Resolve never returns nil; resolution
// problems are recorded on Index.Errors rather than aborting, matching
// the parser's and validator's error-accumulating contract (spec §7).
func Resolve(units []*Unit) *Index {
	idx := newIndex()

	// Each Unit's own parse errors ride along on the Index so a caller
	// inspecting one object sees everything wrong with the schema bundle.
	for _, u := range units {
		idx.Errors = append(idx.Errors, u.Errors...)
	}

	registerDecls(idx, units)
	registerAliases(idx, units)
	registerDispatches(idx, units)
	splicer := &spreadSplicer{idx: idx, resolved: map[string][]*Field{}, visiting: map[string]bool{}, inlined: map[*Expr]bool{}}
	splicer.spliceAll(units)

	debug.Logf(debug.Resolver(), "resolver", "%d units merged into %d declarations, %d dispatch registries, %d errors",
		len(units), len(idx.decls), len(idx.dispatch), len(idx.Errors))
	return idx
}

func registerDecls(idx *Index, units []*Unit) {
	for _, u := range units {
		for _, s := range u.Structs {
			addDecl(idx, &Decl{Kind: DeclStruct, Name: qualify(u.ModulePath, s.Name), ModulePath: u.ModulePath, Struct: s}, s.Pos)
		}
		for _, e := range u.Enums {
			addDecl(idx, &Decl{Kind: DeclEnum, Name: qualify(u.ModulePath, e.Name), ModulePath: u.ModulePath, Enum: e}, e.Pos)
		}
		for _, t := range u.Types {
			addDecl(idx, &Decl{Kind: DeclAlias, Name: qualify(u.ModulePath, t.Name), ModulePath: u.ModulePath, Alias: t.Type}, t.Pos)
		}
	}
}

func qualify(modulePath, name string) string {
	if modulePath == "" {
		return name
	}
	return modulePath + "::" + name
}

func addDecl(idx *Index, d *Decl, pos *token.Pos) {
	if _, dup := idx.decls[d.Name]; dup {
		idx.Errors = append(idx.Errors, &SchemaError{Message: fmt.Sprintf("duplicate declaration %q", d.Name), Pos: pos})
		return
	}
	idx.decls[d.Name] = d
	local := localName(d.Name)
	idx.byLocal[local] = append(idx.byLocal[local], d.Name)
}

func localName(qualified string) string {
	i := strings.LastIndex(qualified, "::")
	if i < 0 {
		return qualified
	}
	return qualified[i+2:]
}

func registerAliases(idx *Index, units []*Unit) {
	for _, u := range units {
		if len(u.Imports) == 0 {
			continue
		}
		table := idx.aliases[u.ModulePath]
		if table == nil {
			table = map[string]string{}
			idx.aliases[u.ModulePath] = table
		}
		for _, imp := range u.Imports {
			if len(imp.Path) == 0 {
				continue
			}
			qualified := strings.Join(imp.Path, "::")
			if _, ok := idx.decls[qualified]; !ok {
				idx.Errors = append(idx.Errors, &SchemaError{Message: fmt.Sprintf("unresolved import %q", qualified), Pos: imp.Pos})
			}
			name := imp.Alias
			if name == "" {
				name = imp.Path[len(imp.Path)-1]
			}
			table[name] = qualified
		}
	}
}

func registerDispatches(idx *Index, units []*Unit) {
	for _, u := range units {
		for _, d := range u.Dispatches {
			table := idx.dispatch[d.Registry]
			if table == nil {
				table = map[string]*dispatchEntry{}
				idx.dispatch[d.Registry] = table
			}
			entry := &dispatchEntry{Type: d.TargetType}
			if d.TargetType.Kind == KindDispatcherRef {
				entry = &dispatchEntry{RedirectRegistry: d.TargetType.DispatchRegistry, RedirectDiscriminant: d.TargetType.DispatchKey}
			}
			for _, target := range d.Targets {
				key := target
				if strings.HasPrefix(key, "%") {
					key = unknownDiscriminant
				}
				if _, dup := table[key]; dup {
					idx.Errors = append(idx.Errors, &SchemaError{
						Message: fmt.Sprintf("duplicate dispatch target %q for %q", target, d.Registry),
						Pos:     d.Pos,
					})
					continue
				}
				table[key] = entry
			}
		}
	}
}

// spreadSplicer fills in ResolvedFields for every struct shape in the
// schema — named top-level declarations as well as inline struct literals
// reachable from type aliases and dispatch targets — inlining spread
// fields at the position they appear, per spec §4.3 step 3. Named structs
// are memoized by qualified name in resolved/visiting so a spread cycle
// among them is detected and broken exactly once (§4.3 step 2, §9); inline
// struct literals can't spread each other (spread targets are always
// NamedRefs) so they need no cycle bookkeeping of their own.
type spreadSplicer struct {
	idx      *Index
	resolved map[string][]*Field
	visiting map[string]bool
	inlined  map[*Expr]bool
}

func (s *spreadSplicer) spliceAll(units []*Unit) {
	var names []string
	for name, d := range s.idx.decls {
		if d.Kind == DeclStruct {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		s.resolveNamed(name)
	}
	for name, fields := range s.resolved {
		s.idx.decls[name].Struct.ResolvedFields = fields
	}

	for _, d := range s.idx.decls {
		switch d.Kind {
		case DeclStruct:
			for _, f := range d.Struct.ResolvedFields {
				s.walk(f.Type, d.ModulePath)
			}
		case DeclAlias:
			s.walk(d.Alias, d.ModulePath)
		}
	}
	for _, u := range units {
		for _, disp := range u.Dispatches {
			s.walk(disp.TargetType, u.ModulePath)
		}
	}
}

// walk descends into a type expression tree to splice any inline struct
// literal it contains, then continues into that struct's field types.
func (s *spreadSplicer) walk(e *Expr, fromModule string) {
	if e == nil {
		return
	}
	switch e.Kind {
	case KindStruct:
		if !s.inlined[e] {
			s.inlined[e] = true
			e.ResolvedFields = s.spliceFieldList(e.Fields, fromModule, fmt.Sprintf("<inline %p>", e))
		}
		for _, f := range e.ResolvedFields {
			s.walk(f.Type, fromModule)
		}
	case KindArray:
		s.walk(e.Elem, fromModule)
	case KindUnion:
		for _, alt := range e.Alternatives {
			s.walk(alt, fromModule)
		}
	case KindNamed:
		if e.ResolvedName == "" {
			if qname, ok := s.idx.ResolveRef(fromModule, e.Name); ok {
				e.ResolvedName = qname
			} else {
				s.idx.Errors = append(s.idx.Errors, &SchemaError{Message: fmt.Sprintf("unresolved type reference %q", e.Name), Pos: e.Pos})
			}
		}
		for _, arg := range e.TypeArgs {
			s.walk(arg, fromModule)
		}
	}
}

func (s *spreadSplicer) resolveNamed(name string) []*Field {
	if fields, ok := s.resolved[name]; ok {
		return fields
	}
	d, ok := s.idx.decls[name]
	if !ok || d.Kind != DeclStruct {
		return nil
	}
	if s.visiting[name] {
		s.idx.Errors = append(s.idx.Errors, &SchemaError{Message: fmt.Sprintf("spread cycle involving %q", name), Pos: d.Struct.Pos})
		s.idx.lazy[name] = true
		s.resolved[name] = d.Struct.Fields
		return d.Struct.Fields
	}
	s.visiting[name] = true
	fields := s.spliceFieldList(d.Struct.Fields, d.ModulePath, name)
	delete(s.visiting, name)
	s.resolved[name] = fields
	return fields
}

// spliceFieldList inlines spreads in fields, which belong to the struct
// identified by errCtx (a qualified name or a descriptive placeholder for
// inline literals) in module fromModule.
func (s *spreadSplicer) spliceFieldList(fields []*Field, fromModule, errCtx string) []*Field {
	var out []*Field
	seen := map[string]bool{}
	for _, f := range fields {
		if !f.Spread {
			if f.Name != "" {
				if seen[f.Name] {
					s.idx.Errors = append(s.idx.Errors, &SchemaError{Message: fmt.Sprintf("duplicate field %q in %q", f.Name, errCtx), Pos: f.Pos})
					continue
				}
				seen[f.Name] = true
			}
			out = append(out, f)
			continue
		}
		if f.Type.Kind != KindNamed {
			s.idx.Errors = append(s.idx.Errors, &SchemaError{Message: fmt.Sprintf("unsupported spread target in %q", errCtx), Pos: f.Pos})
			continue
		}
		qname, ok := s.idx.ResolveRef(fromModule, f.Type.Name)
		if !ok {
			s.idx.Errors = append(s.idx.Errors, &SchemaError{Message: fmt.Sprintf("unresolved spread target %q in %q", f.Type.Name, errCtx), Pos: f.Pos})
			continue
		}
		for _, tf := range s.resolveNamed(qname) {
			if tf.Name != "" {
				if seen[tf.Name] {
					s.idx.Errors = append(s.idx.Errors, &SchemaError{Message: fmt.Sprintf("duplicate field %q in %q (via spread of %q)", tf.Name, errCtx, qname), Pos: f.Pos})
					continue
				}
				seen[tf.Name] = true
			}
			out = append(out, tf)
		}
	}
	return out
}
