// Package mcdoc is the public facade over the MCDOC pipeline: it wires the
// lexer, parser, resolver, registry store, validator and datapack analyzer
// together behind the two-call contract described in spec §6 — one `New`
// at startup, then repeated `Validate`/`AnalyzeDatapack` calls against the
// resulting immutable schema.
package mcdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mcdocval/mcdoc/analyzer"
	"github.com/mcdocval/mcdoc/registry"
	"github.com/mcdocval/mcdoc/schema"
	"github.com/mcdocval/mcdoc/validator"
)

// Instance is one initialized validator: a resolved Schema Index, a
// Registry Store for one game version, and the default version label used
// when a call site doesn't override it. It is immutable after New returns,
// per spec §3's Schema Index lifecycle and §5's concurrency model.
type Instance struct {
	idx      *schema.Index
	store    *registry.Store
	version  string
	v        *validator.Validator
	analyzer *analyzer.Analyzer
}

// New builds an Instance from the init contract in spec §6:
//   - files: logical filename -> MCDOC source text. A filename of the form
//     "a/b/c.mcdoc" establishes module path "a::b::c".
//   - registries: registry name -> plain sequence, object-of-sequences, or
//     vanilla {"entries":..., "tags":...} shape (see registry.New).
//   - version: the active game version label.
//
// New itself only fails on structurally invalid input (non-UTF-8 MCDOC
// source, or a registries value New can't make sense of); MCDOC files that
// fail to parse or resolve still produce an Instance, with those problems
// surfaced as SchemaErrors on validations that depend on them, per spec §7.
func New(files map[string]string, registries map[string]any, version string) (*Instance, error) {
	var units []*schema.Unit
	for name, src := range files {
		if !utf8.ValidString(src) {
			return nil, fmt.Errorf("mcdoc file %q is not valid UTF-8", name)
		}
		units = append(units, schema.Parse([]byte(src), modulePathOf(name)))
	}
	idx := schema.Resolve(units)

	store, err := registry.New(version, registries)
	if err != nil {
		return nil, fmt.Errorf("building registry store: %w", err)
	}

	v := validator.New(idx, store, version)
	return &Instance{idx: idx, store: store, version: version, v: v, analyzer: analyzer.New(v)}, nil
}

// modulePathOf derives "a::b::c" from a logical filename "a/b/c.mcdoc",
// per spec §6. The extension is stripped; any extension is accepted so a
// caller isn't forced to use ".mcdoc" literally.
func modulePathOf(filename string) string {
	name := filename
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	segs := strings.Split(name, "/")
	return strings.Join(segs, "::")
}

// Validate checks value against the schema registered for resourceType, at
// version (or the Instance's default version when version is ""), per
// spec §6.
func (in *Instance) Validate(value any, resourceType, version string) validator.ValidationResult {
	return in.v.Validate(value, resourceType, version)
}

// AnalyzeDatapack validates every file in files, inferring each one's
// resource type from its path, per spec §4.6 and §6.
func (in *Instance) AnalyzeDatapack(files map[string][]byte, version string) analyzer.DatapackResult {
	return in.analyzer.AnalyzeDatapack(files, version)
}

// RequiredRegistries surveys value for the registries an #[id] annotation
// would check, without performing full structural validation; see
// validator.Validator.RequiredRegistries.
func (in *Instance) RequiredRegistries(value any, resourceType string) []string {
	return in.v.RequiredRegistries(value, resourceType)
}

// SchemaErrors returns the accumulated resolution-time problems in the
// Instance's Schema Index: missing imports, duplicate declarations, broken
// spread cycles, unresolvable dispatch targets. A non-empty result doesn't
// mean New failed — it means some validations may surface SchemaErrors for
// the affected types, per spec §7.
func (in *Instance) SchemaErrors() []error {
	return in.idx.Errors
}

// Version returns the Instance's default game version label.
func (in *Instance) Version() string {
	return in.version
}
