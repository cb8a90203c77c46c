package validator

import (
	"regexp"
	"strings"

	"github.com/mcdocval/mcdoc/registry"
	"github.com/mcdocval/mcdoc/schema"
)

// uuidPattern matches the canonical dashed UUID string form.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// sinceUntil extracts the since/until bounds from an annotation list, if
// present.
func sinceUntil(anns []schema.Annotation) (since, until string, has bool) {
	for _, a := range anns {
		switch a.Name {
		case "since":
			since, has = a.Value, true
		case "until":
			until, has = a.Value, true
		}
	}
	return since, until, has
}

// annotationsVisible reports whether a since/until-gated node is visible at
// version v, per spec §4.5's version-gating rule. Nodes without since/until
// annotations are always visible.
func annotationsVisible(anns []schema.Annotation, v string) bool {
	since, until, has := sinceUntil(anns)
	if !has {
		return true
	}
	return versionInRange(v, since, until)
}

// fieldVisible reports whether a struct field is visible at version v. The
// since/until gate may be written before the field name (Field.Annotations)
// or on the field's type expression itself (e.g. `cooking_time:
// #[since="1.19"] int`); both are honored.
func fieldVisible(f *schema.Field, v string) bool {
	if !annotationsVisible(f.Annotations, v) {
		return false
	}
	if f.Type != nil && !annotationsVisible(f.Type.Annotations, v) {
		return false
	}
	return true
}

// idRegistry returns the registry name an #[id=...] / #[id(registry=...)]
// annotation names, and whether tag values ("#foo") are accepted, per spec
// §3's annotation grammar.
func idRegistry(a schema.Annotation) (registryName string, allowTags bool) {
	if a.Value != "" {
		return a.Value, false
	}
	if a.Args != nil {
		if v, ok := a.Args["registry"]; ok {
			registryName = v.Str
		}
		if v, ok := a.Args["tags"]; ok {
			allowTags = v.Str == "allowed"
		}
	}
	return registryName, allowTags
}

// applyFieldAnnotations runs the #[id], #[uuid] and #[match_regex] checks
// against an already type-checked field value, emitting dependencies and/or
// errors at p, per spec §4.5 step 6.
func (c *validateCtx) applyFieldAnnotations(anns []schema.Annotation, value any, p path) {
	for _, a := range anns {
		switch a.Name {
		case "id":
			c.checkID(a, value, p)
		case "uuid":
			c.checkUUID(value, p)
		case "match_regex":
			c.checkMatchRegex(a, value, p)
		}
	}
}

func (c *validateCtx) checkID(a schema.Annotation, value any, p path) {
	s, ok := value.(string)
	if !ok {
		return // already reported as TypeMismatch
	}
	registryName, allowTags := idRegistry(a)
	if registryName == "" {
		return
	}
	isTag := strings.HasPrefix(s, "#")
	if isTag && !allowTags {
		c.addErr(KindInvalidResourceId, p, "tag reference "+s+" not allowed here")
		return
	}
	bare := s
	if isTag {
		bare = s[1:]
	}
	normalized, ok := normalizeResourceId(bare)
	if !ok {
		c.addErr(KindInvalidResourceId, p, "malformed resource identifier "+s)
		return
	}
	// The dependency is recorded regardless of membership outcome: a miss
	// still tells downstream tooling what was referenced, per spec §7's
	// "dependencies are still reported" rule.
	c.deps = append(c.deps, Dependency{Registry: registryName, Value: normalized, Path: p.String(), IsTag: isTag})
	if isTag {
		// A tag reference is accepted once recognized, with no membership
		// check against the registry: the tag itself isn't a registry entry.
		return
	}
	switch c.store.Lookup(registryName, normalized) {
	case registry.NotFound:
		c.addErr(KindUnknownRegistryValue, p, "unknown value "+s+" in registry "+registryName)
	case registry.RegistryUnknown:
		c.addErr(KindUnknownRegistryValue, p, "unknown value "+s+": registry "+registryName+" is not loaded")
	}
}

func (c *validateCtx) checkUUID(value any, p path) {
	switch v := value.(type) {
	case string:
		if !uuidPattern.MatchString(v) {
			c.addErr(KindConstraintViolation, p, "value is not a well-formed UUID string")
		}
	case []any:
		if len(v) != 4 {
			c.addErr(KindConstraintViolation, p, "UUID int-array must have exactly 4 elements")
			return
		}
		for _, e := range v {
			if f, ok := e.(float64); !ok || f != float64(int32(f)) {
				c.addErr(KindConstraintViolation, p, "UUID int-array elements must be 32-bit integers")
				return
			}
		}
	default:
		c.addErr(KindConstraintViolation, p, "value is not a UUID string or 4-element int array")
	}
}

func (c *validateCtx) checkMatchRegex(a schema.Annotation, value any, p path) {
	s, ok := value.(string)
	if !ok {
		return
	}
	pattern := a.Value
	if pattern == "" && a.Args != nil {
		pattern = a.Args["pattern"].Str
	}
	if pattern == "" {
		return
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		c.addErr(KindSchemaError, p, "invalid match_regex pattern: "+err.Error())
		return
	}
	if !re.MatchString(s) {
		c.addErr(KindConstraintViolation, p, "value does not match required pattern "+pattern)
	}
}
