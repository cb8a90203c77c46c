package schema

import (
	"strings"
	"sync"
)

// DeclKind discriminates a resolved top-level declaration.
type DeclKind int

const (
	DeclStruct DeclKind = iota
	DeclEnum
	DeclAlias
)

// Decl is one resolved top-level declaration, addressable by its fully
// qualified name.
type Decl struct {
	Kind       DeclKind
	Name       string // fully qualified, e.g. "minecraft::item::ItemStack"
	ModulePath string
	Struct     *Struct
	Enum       *Enum
	Alias      *Expr
}

// dispatchEntry is one (registry, discriminant) -> target entry. A
// redirect entry (Type == nil) points at another dispatch slot, resolved
// by LookupDispatch following at most one level, per spec §4.3 and §9.
type dispatchEntry struct {
	Type                 *Expr
	RedirectRegistry     string
	RedirectDiscriminant string
}

// unknownDiscriminant is the table key %unknown resolves to, matching any
// discriminant value with no specific entry.
const unknownDiscriminant = "%unknown"

// Index is the Resolver's output: a read-only, validator-ready view over a
// set of Schema Units. It is built once and never mutated afterward, per
// spec §3 and §5; the guarding mutex exists for the same reason the
// teacher repo's schema registries carry one even though writes happen
// only during construction — so a caller holding the Index across
// goroutines never needs to reason about a race.
type Index struct {
	mu sync.RWMutex

	decls    map[string]*Decl
	byLocal  map[string][]string // local (unqualified) name -> qualified names sharing it
	aliases  map[string]map[string]string // module path -> alias/local-import-name -> qualified name
	dispatch map[string]map[string]*dispatchEntry
	lazy     map[string]bool // qualified names whose spread splicing hit a cycle

	Errors []error
}

func newIndex() *Index {
	return &Index{
		decls:    map[string]*Decl{},
		byLocal:  map[string][]string{},
		aliases:  map[string]map[string]string{},
		dispatch: map[string]map[string]*dispatchEntry{},
		lazy:     map[string]bool{},
	}
}

// Lookup finds a declaration by fully qualified name.
func (idx *Index) Lookup(qualifiedName string) (*Decl, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	d, ok := idx.decls[qualifiedName]
	return d, ok
}

// IsLazy reports whether the declaration's spread splicing was cut short
// by a cycle, per spec §4.3 step 2 and §9.
func (idx *Index) IsLazy(qualifiedName string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lazy[qualifiedName]
}

// ResolveRef resolves a NamedRef's text to a fully qualified declaration
// name, relative to the module it appears in. It tries, in order: the name
// as already fully qualified, the name qualified by fromModule, the
// fromModule's use-import aliases, per spec §4.3 step 1, and finally the
// first registered declaration anywhere whose unqualified name matches.
func (idx *Index) ResolveRef(fromModule, name string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if _, ok := idx.decls[name]; ok {
		return name, true
	}
	local := fromModule + "::" + name
	if _, ok := idx.decls[local]; ok {
		return local, true
	}
	if table, ok := idx.aliases[fromModule]; ok {
		if q, ok := table[name]; ok {
			if _, ok := idx.decls[q]; ok {
				return q, true
			}
		}
	}
	if qs, ok := idx.byLocal[name]; ok && len(qs) > 0 {
		return qs[0], true
	}
	return "", false
}

// LookupDispatch resolves (registry, discriminant) to a target type
// expression, following at most one level of redirection and falling back
// to a %unknown catch-all target, per spec §4.3 step 4 and §9.
func (idx *Index) LookupDispatch(registry, discriminant string) (*Expr, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	entry, ok := idx.lookupDispatchEntry(registry, discriminant)
	if !ok {
		return nil, false
	}
	if entry.Type != nil {
		return entry.Type, true
	}
	redirect, ok := idx.lookupDispatchEntry(entry.RedirectRegistry, entry.RedirectDiscriminant)
	if !ok || redirect.Type == nil {
		return nil, false
	}
	return redirect.Type, true
}

func (idx *Index) lookupDispatchEntry(registry, discriminant string) (*dispatchEntry, bool) {
	table, ok := idx.dispatch[registry]
	if !ok {
		return nil, false
	}
	if e, ok := table[discriminant]; ok {
		return e, true
	}
	if e, ok := table[unknownDiscriminant]; ok {
		return e, true
	}
	return nil, false
}

// LookupByResourceType resolves a caller-supplied resource-type label
// against the "minecraft:resource" dispatcher. It tries an exact match
// first, then falls back to the part after the label's final colon, per
// spec §4.3 step 5.
func (idx *Index) LookupByResourceType(s string) (*Expr, bool) {
	const resourceRegistry = "minecraft:resource"
	if t, ok := idx.LookupDispatch(resourceRegistry, s); ok {
		return t, true
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return idx.LookupDispatch(resourceRegistry, s[i+1:])
	}
	return nil, false
}
