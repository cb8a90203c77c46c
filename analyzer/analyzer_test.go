package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/mcdocval/mcdoc/registry"
	"github.com/mcdocval/mcdoc/schema"
	"github.com/mcdocval/mcdoc/validator"
)

func buildValidator(t *testing.T) *validator.Validator {
	t.Helper()
	src := `
struct Recipe {
    #[id="item"]
    result: string,
}
dispatch minecraft:resource[recipe] to Recipe
`
	u := schema.Parse([]byte(src), "")
	idx := schema.Resolve([]*schema.Unit{u})
	if len(idx.Errors) != 0 {
		t.Fatalf("unexpected resolve errors: %v", idx.Errors)
	}
	store, err := registry.New("1.20", map[string]any{"item": []string{"minecraft:stick"}})
	if err != nil {
		t.Fatal(err)
	}
	return validator.New(idx, store, "1.20")
}

func TestAnalyzeDatapackAggregatesAcrossFiles(t *testing.T) {
	a := New(buildValidator(t))
	files := map[string][]byte{
		"data/minecraft/recipe/stick_handle.json": []byte(`{"result":"minecraft:stick"}`),
		"data/minecraft/recipe/broken.json":       []byte(`{"result":"minecraft:bogus"}`),
		"data/minecraft/recipe/not_json.json":     []byte(`{not json`),
		"pack.mcmeta":                             []byte(`{"pack":{}}`),
	}
	res := a.AnalyzeDatapack(files, "")
	if res.IsValid {
		t.Fatal("expected overall invalid result")
	}
	if res.FilesProcessed != len(files) {
		t.Fatalf("expected %d files processed, got %d", len(files), res.FilesProcessed)
	}
	if res.FilesFailed != 3 {
		t.Fatalf("expected 3 failed files, got %d: %v", res.FilesFailed, res.ErrorsByFile)
	}
	if _, ok := res.ErrorsByFile["pack.mcmeta"]; !ok {
		t.Fatal("expected pack.mcmeta (no data/ prefix) to fail resource-type inference")
	}
	if _, ok := res.ErrorsByFile["data/minecraft/recipe/not_json.json"]; !ok {
		t.Fatal("expected not_json.json to fail JSON decoding")
	}
	found := false
	for _, d := range res.Dependencies {
		if d.SourceFile == "data/minecraft/recipe/stick_handle.json" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a dependency tagged with its source file")
	}
	if vals := res.DependenciesByRegistry["item"]; len(vals) == 0 {
		t.Fatalf("expected item registry dependencies, got %v", res.DependenciesByRegistry)
	}
}

func TestInferResourceType(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"data/minecraft/recipe/stick.json", "minecraft:recipe", true},
		{"data/mymod/loot_table/chests/simple.json", "minecraft:loot_table", true},
		{"pack.mcmeta", "", false},
		{"data/minecraft/", "", false},
	}
	for _, c := range cases {
		got, ok := inferResourceType(c.path)
		if ok != c.ok || got != c.want {
			t.Errorf("inferResourceType(%q) = (%q, %v), want (%q, %v)", c.path, got, ok, c.want, c.ok)
		}
	}
}

func TestApplyOverlays(t *testing.T) {
	base := map[string][]byte{
		"data/minecraft/recipe/stick.json": []byte(`{"result":"minecraft:stick","count":1}`),
	}
	overlay := map[string][]byte{
		"data/minecraft/recipe/stick.json": []byte(`[{"op":"replace","path":"/count","value":4}]`),
	}
	out, err := ApplyOverlays(base, overlay)
	if err != nil {
		t.Fatal(err)
	}
	var patched map[string]any
	if err := json.Unmarshal(out["data/minecraft/recipe/stick.json"], &patched); err != nil {
		t.Fatal(err)
	}
	if patched["count"] != float64(4) || patched["result"] != "minecraft:stick" {
		t.Fatalf("unexpected patched result: %v", patched)
	}
}
