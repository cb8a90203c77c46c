package registry

import "testing"

func TestStorePlainSequence(t *testing.T) {
	s, err := New("1.20", map[string]any{
		"item": []any{"minecraft:diamond", "minecraft:stick", "minecraft:diamond"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Lookup("item", "minecraft:diamond") != Found {
		t.Error("expected diamond to be found")
	}
	if s.Lookup("item", "minecraft:bedrock") != NotFound {
		t.Error("expected bedrock to be not found")
	}
	if s.Lookup("block", "minecraft:stone") != RegistryUnknown {
		t.Error("expected unknown registry")
	}
}

func TestStoreObjectOfSequences(t *testing.T) {
	s, err := New("1.20", map[string]any{
		"item": map[string]any{
			"tools":   []any{"minecraft:diamond_pickaxe"},
			"weapons": []any{"minecraft:diamond_sword"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains("item", "minecraft:diamond_pickaxe") {
		t.Error("expected nested category entry to be flattened in")
	}
	if !s.Contains("item", "minecraft:diamond_sword") {
		t.Error("expected nested category entry to be flattened in")
	}
}

func TestStoreVanillaShape(t *testing.T) {
	s, err := New("1.20", map[string]any{
		"item": map[string]any{
			"entries": map[string]any{
				"minecraft:diamond_sword": map[string]any{},
				"minecraft:stick":         map[string]any{},
			},
			"tags": map[string]any{
				"minecraft:swords": []any{"minecraft:diamond_sword"},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains("item", "minecraft:stick") {
		t.Error("expected stick in entries")
	}
	if s.Lookup("item", "#minecraft:swords") != Found {
		t.Error("expected swords tag to resolve")
	}
	if s.Lookup("item", "#minecraft:nonexistent") != NotFound {
		t.Error("expected unknown tag to be not found")
	}
}

func TestStoreHasRegistry(t *testing.T) {
	s, err := New("1.20", map[string]any{"item": []any{}})
	if err != nil {
		t.Fatal(err)
	}
	if !s.HasRegistry("item") {
		t.Error("expected item to be a known registry even with no entries")
	}
	if s.HasRegistry("block") {
		t.Error("expected block to be unknown")
	}
}
