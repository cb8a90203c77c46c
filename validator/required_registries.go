package validator

import (
	"sort"

	"github.com/mcdocval/mcdoc/schema"
)

// RequiredRegistries walks value against the schema registered for
// resourceType and returns the sorted, deduplicated set of registry names
// any #[id] annotation it encounters would check membership against. It
// skips every structural check (required fields, type mismatches, array
// constraints) and keeps walking past a node even where Validate would
// have stopped, so a caller gets a best-effort survey rather than only the
// registries reachable before the first error. It never touches the
// Registry Store: no Dependency or ValidationError is produced, only
// registry names. Mirrors get_required_registries from the scan this
// validator was grounded on, but schema-driven rather than a heuristic
// string-shape scan — the resolved schema already says exactly which
// strings carry an #[id], so there is no need to guess from JSON shape
// alone.
func (v *Validator) RequiredRegistries(value any, resourceType string) []string {
	typ, ok := v.idx.LookupByResourceType(resourceType)
	if !ok {
		return nil
	}
	s := &registryScanner{idx: v.idx, version: v.version, seen: map[string]bool{}}
	s.scanNode(value, typ, 0)
	names := make([]string, 0, len(s.seen))
	for name := range s.seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type registryScanner struct {
	idx     *schema.Index
	version string
	seen    map[string]bool
}

func (s *registryScanner) scanNode(value any, typ *schema.Expr, depth int) {
	if typ == nil || depth > maxDepth {
		return
	}
	s.collectID(typ.Annotations)
	switch typ.Kind {
	case schema.KindArray:
		arr, ok := value.([]any)
		if !ok {
			return
		}
		for _, elem := range arr {
			s.scanNode(elem, typ.Elem, depth+1)
		}
	case schema.KindStruct:
		s.scanFields(value, typ.ResolvedFields, depth)
	case schema.KindUnion:
		for _, alt := range typ.Alternatives {
			if annotationsVisible(alt.Annotations, s.version) {
				s.scanNode(value, alt, depth+1)
			}
		}
	case schema.KindNamed:
		if typ.ResolvedName == "" {
			return
		}
		d, ok := s.idx.Lookup(typ.ResolvedName)
		if !ok {
			return
		}
		switch d.Kind {
		case schema.DeclStruct:
			s.scanFields(value, d.Struct.ResolvedFields, depth+1)
		case schema.DeclAlias:
			s.scanNode(value, d.Alias, depth+1)
		}
	case schema.KindDispatcherRef:
		obj, ok := value.(map[string]any)
		if !ok {
			return
		}
		discriminantField := typ.DispatchKey
		if discriminantField == "" {
			discriminantField = "type"
		}
		disc, ok := obj[discriminantField].(string)
		if !ok {
			return
		}
		if target, ok := s.idx.LookupDispatch(typ.DispatchRegistry, disc); ok {
			s.scanNode(value, target, depth+1)
		}
	}
}

// collectID records the registry name of every #[id] annotation in anns.
// typ.Annotations (type-position) is handled once, generically, at the top
// of scanNode; f.Annotations (field-position) is handled per field below —
// the two placements are both legal MCDOC syntax and must both be scanned,
// the same way fieldVisible consults both Field.Annotations and
// Field.Type.Annotations for since/until.
func (s *registryScanner) collectID(anns []schema.Annotation) {
	for _, a := range anns {
		if a.Name == "id" {
			if name, _ := idRegistry(a); name != "" {
				s.seen[name] = true
			}
		}
	}
}

func (s *registryScanner) scanFields(value any, fields []*schema.Field, depth int) {
	obj, ok := value.(map[string]any)
	if !ok {
		return
	}
	for _, f := range fields {
		if f.Spread {
			s.scanSpread(obj, f, depth, map[string]bool{})
			continue
		}
		if f.Name == "" || !fieldVisible(f, s.version) {
			continue
		}
		raw, present := obj[f.Name]
		if !present {
			continue
		}
		s.collectID(f.Annotations)
		s.scanNode(raw, f.Type, depth+1)
	}
}

func (s *registryScanner) scanSpread(obj map[string]any, f *schema.Field, depth int, chased map[string]bool) {
	if f.Type == nil || f.Type.Kind != schema.KindNamed || f.Type.ResolvedName == "" {
		return
	}
	if chased[f.Type.ResolvedName] {
		return
	}
	chased[f.Type.ResolvedName] = true
	d, ok := s.idx.Lookup(f.Type.ResolvedName)
	if !ok || d.Kind != schema.DeclStruct {
		return
	}
	for _, tf := range d.Struct.ResolvedFields {
		if tf.Spread {
			s.scanSpread(obj, tf, depth, chased)
			continue
		}
		if tf.Name == "" || !fieldVisible(tf, s.version) {
			continue
		}
		raw, present := obj[tf.Name]
		if !present {
			continue
		}
		s.collectID(tf.Annotations)
		s.scanNode(raw, tf.Type, depth+1)
	}
}
