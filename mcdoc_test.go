package mcdoc

import "testing"

func TestNewValidateEndToEnd(t *testing.T) {
	files := map[string]string{
		"recipe.mcdoc": `
struct Recipe {
    #[id="recipe_serializer"]
    type: string,
    #[id="item"]
    result: string,
    ingredients: #[id="item"] string[],
}
dispatch minecraft:resource[recipe] to Recipe
`,
	}
	registries := map[string]any{
		"recipe_serializer": []string{"minecraft:crafting_shaped"},
		"item":              []string{"minecraft:diamond_sword", "minecraft:diamond", "minecraft:stick"},
	}
	in, err := New(files, registries, "1.20")
	if err != nil {
		t.Fatal(err)
	}
	if len(in.SchemaErrors()) != 0 {
		t.Fatalf("unexpected schema errors: %v", in.SchemaErrors())
	}

	var value any = map[string]any{
		"type":   "minecraft:crafting_shaped",
		"result": "minecraft:diamond_sword",
		"ingredients": []any{
			"minecraft:diamond",
			"minecraft:stick",
		},
	}
	res := in.Validate(value, "recipe", "")
	if !res.IsValid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if len(res.Dependencies) != 4 {
		t.Fatalf("expected 4 dependencies, got %v", res.Dependencies)
	}
}

func TestNewRejectsNonUTF8(t *testing.T) {
	files := map[string]string{"bad.mcdoc": string([]byte{0xff, 0xfe, 0xfd})}
	if _, err := New(files, map[string]any{}, "1.20"); err == nil {
		t.Fatal("expected an error for non-UTF-8 MCDOC source")
	}
}

func TestModulePathOf(t *testing.T) {
	cases := map[string]string{
		"recipe.mcdoc":          "recipe",
		"a/b/c.mcdoc":           "a::b::c",
		"minecraft/item.mcdoc":  "minecraft::item",
	}
	for in, want := range cases {
		if got := modulePathOf(in); got != want {
			t.Errorf("modulePathOf(%q) = %q, want %q", in, got, want)
		}
	}
}
