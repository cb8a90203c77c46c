package validator

import (
	"fmt"
	"math"

	"github.com/mcdocval/mcdoc/internal/debug"
	"github.com/mcdocval/mcdoc/registry"
	"github.com/mcdocval/mcdoc/schema"
)

// maxDepth bounds the recursion a single Validate call may perform, per
// spec §5: a schema with a genuine unbroken type cycle must fail with a
// ConstraintViolation rather than overflow the Go call stack.
const maxDepth = 128

// Validator validates decoded JSON values against a resolved schema Index
// and checks extracted identifiers against a Registry Store, per spec §4.5.
type Validator struct {
	idx     *schema.Index
	store   *registry.Store
	version string
}

// New builds a Validator over a resolved Index and Registry Store, using
// defaultVersion when a Validate call doesn't specify one.
func New(idx *schema.Index, store *registry.Store, defaultVersion string) *Validator {
	return &Validator{idx: idx, store: store, version: defaultVersion}
}

// Validate checks value against the schema registered for resourceType
// under the "minecraft:resource" dispatcher, at the given game version (the
// Validator's default version if version is empty), per spec §4.5 step 1
// and §6.
func (v *Validator) Validate(value any, resourceType, version string) ValidationResult {
	ver := version
	if ver == "" {
		ver = v.version
	}
	typ, ok := v.idx.LookupByResourceType(resourceType)
	if !ok {
		return ValidationResult{
			IsValid: false,
			Errors: []ValidationError{{
				Kind:    KindUnknownDispatchKey,
				Path:    "",
				Message: fmt.Sprintf("no schema registered for resource type %q", resourceType),
			}},
		}
	}
	ctx := &validateCtx{idx: v.idx, store: v.store, version: ver}
	ctx.validateNode(value, typ, path{}, 0)
	debug.Logf(debug.Validator(), "validator", "resourceType=%q version=%q: %d errors, %d dependencies",
		resourceType, ver, len(ctx.errs), len(ctx.deps))
	return ValidationResult{IsValid: len(ctx.errs) == 0, Errors: ctx.errs, Dependencies: ctx.deps}
}

// validateCtx accumulates errors and dependencies across one Validate call,
// the way the parser's and resolver's error lists accumulate across a
// parse or resolve pass rather than short-circuiting on first failure.
type validateCtx struct {
	idx     *schema.Index
	store   *registry.Store
	version string
	errs    []ValidationError
	deps    []Dependency
}

func (c *validateCtx) addErr(kind ErrorKind, p path, msg string) {
	c.errs = append(c.errs, ValidationError{Kind: kind, Path: p.String(), Message: msg})
}

func (c *validateCtx) validateNode(value any, typ *schema.Expr, p path, depth int) {
	if depth > maxDepth {
		c.addErr(KindConstraintViolation, p, fmt.Sprintf("maximum schema recursion depth (%d) exceeded", maxDepth))
		return
	}
	switch typ.Kind {
	case schema.KindPrimitive:
		c.validatePrimitive(value, typ, p)
	case schema.KindArray:
		c.validateArray(value, typ, p, depth)
	case schema.KindStruct:
		c.validateStructExpr(value, typ, p, depth)
	case schema.KindUnion:
		c.validateUnion(value, typ, p, depth)
	case schema.KindEnum:
		c.validateEnum(value, typ.EnumDecl, p)
	case schema.KindDispatcherRef:
		c.validateDispatcherRef(value, typ, p, depth)
	case schema.KindNamed:
		c.validateNamed(value, typ, p, depth)
	case schema.KindPercent, schema.KindPlaceholder:
		// Unresolved placeholder type: anything goes, per spec §4.3's
		// treatment of unresolved generics and %unknown as inert.
	default:
		c.addErr(KindSchemaError, p, fmt.Sprintf("unsupported type kind %s", typ.Kind))
	}
	// A type expression's own annotations (as opposed to its enclosing
	// field's) are checked wherever that expression is actually validated —
	// this is what makes `ingredients: #[id="item"] string[]`-style
	// per-element annotations work the same as a field-position `#[id]`.
	if len(typ.Annotations) != 0 {
		c.applyFieldAnnotations(typ.Annotations, value, p)
	}
}

func (c *validateCtx) validatePrimitive(value any, typ *schema.Expr, p path) {
	switch typ.Primitive {
	case "string":
		if _, ok := value.(string); !ok {
			c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected string, got %s", jsonKind(value)))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected boolean, got %s", jsonKind(value)))
		}
	case "any":
		// always valid
	case "byte", "short", "int", "long":
		c.validateIntFamily(value, typ.Primitive, p)
	case "float", "double":
		if _, ok := value.(float64); !ok {
			c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected %s, got %s", typ.Primitive, jsonKind(value)))
		}
	default:
		c.addErr(KindSchemaError, p, fmt.Sprintf("unknown primitive type %q", typ.Primitive))
	}
}

var intFamilyRange = map[string][2]int64{
	"byte":  {-128, 127},
	"short": {-32768, 32767},
	"int":   {math.MinInt32, math.MaxInt32},
	"long":  {math.MinInt64, math.MaxInt64},
}

func (c *validateCtx) validateIntFamily(value any, family string, p path) {
	f, ok := value.(float64)
	if !ok {
		c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected %s, got %s", family, jsonKind(value)))
		return
	}
	if f != math.Trunc(f) {
		c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected integral %s, got a non-integral number", family))
		return
	}
	n := int64(f)
	bounds := intFamilyRange[family]
	if n < bounds[0] || n > bounds[1] {
		c.addErr(KindConstraintViolation, p, fmt.Sprintf("%s value %d out of range [%d, %d]", family, n, bounds[0], bounds[1]))
	}
}

func (c *validateCtx) validateArray(value any, typ *schema.Expr, p path, depth int) {
	arr, ok := value.([]any)
	if !ok {
		c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected array, got %s", jsonKind(value)))
		return
	}
	for i, elem := range arr {
		c.validateNode(elem, typ.Elem, p.index(i), depth+1)
	}
	if con := typ.Constraint; con != nil {
		n := len(arr)
		switch {
		case con.Exact != nil && n != *con.Exact:
			c.addErr(KindConstraintViolation, p, fmt.Sprintf("expected exactly %d elements, got %d", *con.Exact, n))
		case con.Min != nil && n < *con.Min:
			c.addErr(KindConstraintViolation, p, fmt.Sprintf("expected at least %d elements, got %d", *con.Min, n))
		case con.Max != nil && n > *con.Max:
			c.addErr(KindConstraintViolation, p, fmt.Sprintf("expected at most %d elements, got %d", *con.Max, n))
		}
	}
}

func (c *validateCtx) validateStructExpr(value any, typ *schema.Expr, p path, depth int) {
	c.validateFields(value, typ.ResolvedFields, p, depth)
}

func (c *validateCtx) validateStructDecl(value any, s *schema.Struct, p path, depth int) {
	c.validateFields(value, s.ResolvedFields, p, depth)
}

// validateFields validates value as an object against a resolved field
// list, handling required/optional/unknown fields, version-gated
// visibility, and any unspliced Spread fields left behind by a resolver
// cycle break, per spec §4.5 steps 3-4 and §9.
func (c *validateCtx) validateFields(value any, fields []*schema.Field, p path, depth int) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected object, got %s", jsonKind(value)))
		return
	}
	schemaNames := map[string]bool{}
	c.validateFieldList(obj, fields, p, depth, schemaNames, map[string]bool{})
	for key := range obj {
		if !schemaNames[key] {
			c.addErr(KindUnknownField, p.field(key), fmt.Sprintf("unknown field %q", key))
		}
	}
}

func (c *validateCtx) validateFieldList(obj map[string]any, fields []*schema.Field, p path, depth int, schemaNames, spreadSeen map[string]bool) {
	for _, f := range fields {
		if f.Spread {
			c.mergeSpreadIndirect(obj, f, p, depth, schemaNames, spreadSeen)
			continue
		}
		if f.Name == "" || !fieldVisible(f, c.version) {
			continue
		}
		schemaNames[f.Name] = true
		raw, present := obj[f.Name]
		if !present {
			if !f.Optional {
				c.addErr(KindMissingField, p.field(f.Name), fmt.Sprintf("missing required field %q", f.Name))
			}
			continue
		}
		c.validateNode(raw, f.Type, p.field(f.Name), depth+1)
		c.applyFieldAnnotations(f.Annotations, raw, p.field(f.Name))
	}
}

// mergeSpreadIndirect resolves a Spread field that the resolver left
// unspliced because it sat on a broken spread cycle (Index.IsLazy), by
// following the reference at validate time instead. spreadSeen stops the
// same qualified name being chased twice within one validateFields call, so
// a genuine A<->B spread cycle terminates instead of looping forever.
func (c *validateCtx) mergeSpreadIndirect(obj map[string]any, f *schema.Field, p path, depth int, schemaNames, spreadSeen map[string]bool) {
	if f.Type == nil || f.Type.Kind != schema.KindNamed {
		return
	}
	qname := f.Type.ResolvedName
	if qname == "" {
		return // already reported as a SchemaError by Resolve
	}
	if spreadSeen[qname] {
		return
	}
	spreadSeen[qname] = true
	d, ok := c.idx.Lookup(qname)
	if !ok || d.Kind != schema.DeclStruct {
		return
	}
	c.validateFieldList(obj, d.Struct.ResolvedFields, p, depth+1, schemaNames, spreadSeen)
}

// validateUnion tries each alternative independently and accepts the first
// that validates clean. If none does, it reports one TypeMismatch carrying
// the closest alternative's failure report — the alternative with the
// fewest errors — and keeps that alternative's extracted dependencies, per
// spec §4.5 step 5 and §7.
func (c *validateCtx) validateUnion(value any, typ *schema.Expr, p path, depth int) {
	var best *validateCtx
	for _, alt := range typ.Alternatives {
		if !annotationsVisible(alt.Annotations, c.version) {
			continue
		}
		sub := &validateCtx{idx: c.idx, store: c.store, version: c.version}
		sub.validateNode(value, alt, p, depth+1)
		if len(sub.errs) == 0 {
			c.deps = append(c.deps, sub.deps...)
			return
		}
		if best == nil || len(sub.errs) < len(best.errs) {
			best = sub
		}
	}
	if best == nil {
		c.addErr(KindTypeMismatch, p, "value matches no union alternative visible at this version")
		return
	}
	c.addErr(KindTypeMismatch, p, fmt.Sprintf("value matches no union alternative; closest failure: %s", summarizeErrors(best.errs)))
	c.deps = append(c.deps, best.deps...)
}

func summarizeErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return "(no detail)"
	}
	out := string(errs[0].Kind) + ": " + errs[0].Message
	for _, e := range errs[1:] {
		out += "; " + string(e.Kind) + ": " + e.Message
	}
	return out
}

func (c *validateCtx) validateEnum(value any, e *schema.Enum, p path) {
	if e == nil {
		c.addErr(KindSchemaError, p, "enum has no backing declaration")
		return
	}
	switch e.BaseType {
	case "string":
		s, ok := value.(string)
		if !ok {
			c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected %s enum value, got %s", e.BaseType, jsonKind(value)))
			return
		}
		for _, v := range e.Variants {
			if v.Value.IsString && v.Value.Str == s {
				return
			}
		}
	default:
		f, ok := value.(float64)
		if !ok {
			c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected %s enum value, got %s", e.BaseType, jsonKind(value)))
			return
		}
		for _, v := range e.Variants {
			if v.Value.IsInt && float64(v.Value.Int) == f {
				return
			}
			if v.Value.IsFloat && v.Value.Float == f {
				return
			}
		}
	}
	c.addErr(KindConstraintViolation, p, fmt.Sprintf("value is not a legal variant of enum %q", e.Name))
}

func (c *validateCtx) validateDispatcherRef(value any, typ *schema.Expr, p path, depth int) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.addErr(KindTypeMismatch, p, fmt.Sprintf("expected object for dispatched type, got %s", jsonKind(value)))
		return
	}
	discriminantField := typ.DispatchKey
	if discriminantField == "" {
		discriminantField = "type"
	}
	raw, present := obj[discriminantField]
	if !present {
		c.addErr(KindMissingField, p.field(discriminantField), fmt.Sprintf("missing discriminant field %q", discriminantField))
		return
	}
	disc, ok := raw.(string)
	if !ok {
		c.addErr(KindTypeMismatch, p.field(discriminantField), fmt.Sprintf("discriminant field %q must be a string", discriminantField))
		return
	}
	target, ok := c.idx.LookupDispatch(typ.DispatchRegistry, disc)
	if !ok {
		c.addErr(KindUnknownDispatchKey, p, fmt.Sprintf("no dispatch entry for %s[%s]", typ.DispatchRegistry, disc))
		return
	}
	c.validateNode(value, target, p, depth+1)
}

func (c *validateCtx) validateNamed(value any, typ *schema.Expr, p path, depth int) {
	qname := typ.ResolvedName
	if qname == "" {
		c.addErr(KindSchemaError, p, fmt.Sprintf("unresolved type reference %q", typ.Name))
		return
	}
	d, ok := c.idx.Lookup(qname)
	if !ok {
		c.addErr(KindSchemaError, p, fmt.Sprintf("unresolved type reference %q", typ.Name))
		return
	}
	switch d.Kind {
	case schema.DeclStruct:
		c.validateStructDecl(value, d.Struct, p, depth)
	case schema.DeclEnum:
		c.validateEnum(value, d.Enum, p)
	case schema.DeclAlias:
		c.validateNode(value, d.Alias, p, depth+1)
	default:
		c.addErr(KindSchemaError, p, fmt.Sprintf("declaration %q has no validatable body", qname))
	}
}
