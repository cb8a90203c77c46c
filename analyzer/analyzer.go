// Package analyzer implements the Datapack Analyzer: given a map of
// datapack file paths to bytes, it infers each file's resource type from
// its path, decodes it as JSON, and hands it to a Validator, aggregating
// the results across the whole datapack, per spec §4.6.
package analyzer

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/mcdocval/mcdoc/internal/debug"
	"github.com/mcdocval/mcdoc/validator"
)

// Analyzer wraps a Validator with the path-inference and aggregation logic
// spec §4.6 describes.
type Analyzer struct {
	v *validator.Validator
}

// New builds an Analyzer over an already-constructed Validator.
func New(v *validator.Validator) *Analyzer {
	return &Analyzer{v: v}
}

// DatapackResult aggregates one AnalyzeDatapack call across every file in
// the input map, per spec §6's serialization shape plus the SPEC_FULL
// supplements (AnalysisTime, DependenciesByRegistry).
type DatapackResult struct {
	IsValid         bool
	FilesProcessed  int
	FilesFailed     int
	Errors          []validator.ValidationError
	Dependencies    []validator.Dependency
	ErrorsByFile    map[string][]validator.ValidationError
	AnalysisTime    time.Duration
	DependenciesByRegistry map[string][]string
}

// AnalyzeDatapack validates every file in files, in the map's iteration
// order stabilized by sorting paths first so results are reproducible,
// per spec §4.6's "input iteration order" requirement applied to a Go map
// (which has no native order). version overrides the Validator's default
// version for this call only; an empty version leaves that default in
// place.
func (a *Analyzer) AnalyzeDatapack(files map[string][]byte, version string) DatapackResult {
	start := time.Now()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	result := DatapackResult{
		IsValid:      true,
		ErrorsByFile: map[string][]validator.ValidationError{},
	}
	registryValues := map[string]map[string]bool{}

	for _, path := range paths {
		result.FilesProcessed++
		fileErrs, fileDeps := a.analyzeFile(path, files[path], version)
		if len(fileErrs) > 0 {
			result.IsValid = false
			result.FilesFailed++
			result.ErrorsByFile[path] = fileErrs
			result.Errors = append(result.Errors, fileErrs...)
		}
		for _, d := range fileDeps {
			d.SourceFile = path
			result.Dependencies = append(result.Dependencies, d)
			set := registryValues[d.Registry]
			if set == nil {
				set = map[string]bool{}
				registryValues[d.Registry] = set
			}
			set[d.Value] = true
		}
	}

	result.DependenciesByRegistry = map[string][]string{}
	for registryName, set := range registryValues {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		result.DependenciesByRegistry[registryName] = values
	}

	result.AnalysisTime = time.Since(start)
	debug.Logf(debug.Analyzer(), "analyzer", "processed %d files, %d failed, %d dependencies in %s",
		result.FilesProcessed, result.FilesFailed, len(result.Dependencies), result.AnalysisTime)
	return result
}

func (a *Analyzer) analyzeFile(path string, raw []byte, version string) ([]validator.ValidationError, []validator.Dependency) {
	resourceType, ok := inferResourceType(path)
	if !ok {
		return []validator.ValidationError{{
			Kind:    validator.KindSchemaError,
			Path:    "",
			Message: "could not infer a resource type from path " + path,
		}}, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return []validator.ValidationError{{
			Kind:    validator.KindSchemaError,
			Path:    "",
			Message: "invalid JSON: " + err.Error(),
			Line:    0,
			Column:  0,
			HasLine: true,
		}}, nil
	}

	res := a.v.Validate(value, resourceType, version)
	return res.Errors, res.Dependencies
}

// inferResourceType applies spec §4.6 step 1: a path of the shape
// "data/<namespace>/<category>/..." maps to "minecraft:<category>". The
// namespace segment itself plays no role beyond locating category; MCDOC
// dispatchers are keyed on category alone.
func inferResourceType(path string) (string, bool) {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s != "data" {
			continue
		}
		if i+2 >= len(segs) {
			return "", false
		}
		category := segs[i+2]
		if category == "" {
			return "", false
		}
		return "minecraft:" + category, true
	}
	return "", false
}
