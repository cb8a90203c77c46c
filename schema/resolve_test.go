package schema

import "testing"

func parseOne(t *testing.T, src, modulePath string) *Unit {
	t.Helper()
	u := Parse([]byte(src), modulePath)
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected parse errors in %q: %v", modulePath, u.Errors)
	}
	return u
}

func TestResolveSpread(t *testing.T) {
	u := parseOne(t, `
	struct Base { a: string }
	struct Ext { ...Base, b: int }
	`, "test")
	idx := Resolve([]*Unit{u})
	if len(idx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", idx.Errors)
	}
	d, ok := idx.Lookup("test::Ext")
	if !ok {
		t.Fatal("Ext not found")
	}
	if len(d.Struct.ResolvedFields) != 2 {
		t.Fatalf("got fields %+v", d.Struct.ResolvedFields)
	}
	if d.Struct.ResolvedFields[0].Name != "a" || d.Struct.ResolvedFields[1].Name != "b" {
		t.Errorf("got %+v", d.Struct.ResolvedFields)
	}
}

func TestResolveMissingSpreadTarget(t *testing.T) {
	u := parseOne(t, `struct Ext { ...Missing, b: int }`, "test")
	idx := Resolve([]*Unit{u})
	if len(idx.Errors) == 0 {
		t.Fatal("expected a SchemaError for missing spread target")
	}
}

func TestResolveDuplicateFieldAfterSplice(t *testing.T) {
	u := parseOne(t, `
	struct Base { a: string }
	struct Ext { ...Base, a: int }
	`, "test")
	idx := Resolve([]*Unit{u})
	if len(idx.Errors) == 0 {
		t.Fatal("expected a SchemaError for duplicate field")
	}
	d, _ := idx.Lookup("test::Ext")
	if len(d.Struct.ResolvedFields) != 1 {
		t.Fatalf("want first field to win, got %+v", d.Struct.ResolvedFields)
	}
}

func TestResolveSpreadCycleDoesNotHang(t *testing.T) {
	u := parseOne(t, `
	struct A { ...B }
	struct B { ...A }
	`, "test")
	idx := Resolve([]*Unit{u})
	if len(idx.Errors) == 0 {
		t.Fatal("expected a cycle SchemaError")
	}
	if !idx.IsLazy("test::A") && !idx.IsLazy("test::B") {
		t.Error("expected one of the cycle participants to be marked lazy")
	}
}

func TestResolveDuplicateDeclaration(t *testing.T) {
	a := parseOne(t, `struct Foo { a: string }`, "test")
	b := parseOne(t, `struct Foo { b: int }`, "test")
	idx := Resolve([]*Unit{a, b})
	if len(idx.Errors) == 0 {
		t.Fatal("expected a duplicate-declaration SchemaError")
	}
	d, ok := idx.Lookup("test::Foo")
	if !ok || len(d.Struct.ResolvedFields) != 1 || d.Struct.ResolvedFields[0].Name != "a" {
		t.Errorf("expected the first declaration to win, got %+v", d)
	}
}

func TestResolveDispatch(t *testing.T) {
	u := parseOne(t, `
	dispatch minecraft:resource[recipe] to struct {
		result: string,
	}
	`, "test")
	idx := Resolve([]*Unit{u})
	if len(idx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", idx.Errors)
	}
	target, ok := idx.LookupByResourceType("minecraft:recipe")
	if !ok {
		t.Fatal("expected to find recipe dispatch")
	}
	if target.Kind != KindStruct {
		t.Errorf("got %+v", target)
	}
	if _, ok := idx.LookupByResourceType("recipe"); !ok {
		t.Error("expected bare resource type to resolve by exact match")
	}
}

func TestResolveDispatchRedirect(t *testing.T) {
	u := parseOne(t, `
	dispatch minecraft:block_entity[skull] to struct {
		custom_name: string,
	}
	dispatch minecraft:block[player_head, player_wall_head] to minecraft:block_entity[skull]
	`, "test")
	idx := Resolve([]*Unit{u})
	if len(idx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", idx.Errors)
	}
	target, ok := idx.LookupDispatch("minecraft:block", "player_head")
	if !ok {
		t.Fatal("expected redirect to resolve")
	}
	if target.Kind != KindStruct {
		t.Errorf("got %+v", target)
	}
}

func TestResolveImportAlias(t *testing.T) {
	base := parseOne(t, `struct ItemStack { id: string }`, "minecraft::item")
	user := parseOne(t, `
	use minecraft::item::ItemStack as Stack
	struct Inventory { slot: Stack }
	`, "minecraft::inventory")
	idx := Resolve([]*Unit{base, user})
	if len(idx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", idx.Errors)
	}
	qname, ok := idx.ResolveRef("minecraft::inventory", "Stack")
	if !ok || qname != "minecraft::item::ItemStack" {
		t.Fatalf("got %q %v", qname, ok)
	}
}
