package schema

import "testing"

func TestParseSimpleStruct(t *testing.T) {
	u := Parse([]byte(`struct Foo {
		a: string,
		b?: int,
		...Base,
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	if len(u.Structs) != 1 {
		t.Fatalf("want 1 struct, got %d", len(u.Structs))
	}
	s := u.Structs[0]
	if s.Name != "Foo" {
		t.Errorf("got name %q", s.Name)
	}
	if len(s.Fields) != 3 {
		t.Fatalf("want 3 fields, got %d", len(s.Fields))
	}
	if s.Fields[0].Name != "a" || s.Fields[0].Optional {
		t.Errorf("field 0: %+v", s.Fields[0])
	}
	if s.Fields[1].Name != "b" || !s.Fields[1].Optional {
		t.Errorf("field 1: %+v", s.Fields[1])
	}
	if !s.Fields[2].Spread || s.Fields[2].Type.Name != "Base" {
		t.Errorf("field 2: %+v", s.Fields[2])
	}
}

func TestParseAnnotatedField(t *testing.T) {
	u := Parse([]byte(`struct Foo {
		#[id="item"]
		item: string,
		#[since="1.20"]
		#[until="1.21"]
		gated: int,
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	f := u.Structs[0].Fields[0]
	if len(f.Annotations) != 1 || f.Annotations[0].Name != "id" || f.Annotations[0].Value != "item" {
		t.Errorf("got %+v", f.Annotations)
	}
	g := u.Structs[0].Fields[1]
	if len(g.Annotations) != 2 {
		t.Fatalf("got %+v", g.Annotations)
	}
	if g.Annotations[0].Value != "1.20" || g.Annotations[1].Value != "1.21" {
		t.Errorf("got %+v", g.Annotations)
	}
}

func TestParseComplexAnnotation(t *testing.T) {
	u := Parse([]byte(`struct Foo {
		#[match_regex(pattern="^[a-z]+$", flags=["i"])]
		name: string,
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	ann := u.Structs[0].Fields[0].Annotations[0]
	if ann.Name != "match_regex" {
		t.Fatalf("got %q", ann.Name)
	}
	if ann.Args["pattern"].Str != "^[a-z]+$" {
		t.Errorf("got %+v", ann.Args["pattern"])
	}
	if len(ann.Args["flags"].List) != 1 || ann.Args["flags"].List[0] != "i" {
		t.Errorf("got %+v", ann.Args["flags"])
	}
}

func TestParseEnum(t *testing.T) {
	u := Parse([]byte(`enum(int) Direction {
		North = 0,
		South = 1,
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	e := u.Enums[0]
	if e.Name != "Direction" || e.BaseType != "int" {
		t.Fatalf("got %+v", e)
	}
	if len(e.Variants) != 2 || e.Variants[0].Value.Int != 0 || e.Variants[1].Value.Int != 1 {
		t.Errorf("got %+v", e.Variants)
	}
}

func TestParseEnumColonForm(t *testing.T) {
	u := Parse([]byte(`enum Color : string {
		Red = "red",
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	e := u.Enums[0]
	if e.BaseType != "string" || e.Variants[0].Value.Str != "red" {
		t.Fatalf("got %+v", e)
	}
}

func TestParseUnion(t *testing.T) {
	u := Parse([]byte(`type T = string | int | boolean`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	ty := u.Types[0].Type
	if ty.Kind != KindUnion || len(ty.Alternatives) != 3 {
		t.Fatalf("got %+v", ty)
	}
}

func TestParseArrayWithExactConstraint(t *testing.T) {
	u := Parse([]byte(`type T = int[] @ 4`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	ty := u.Types[0].Type
	if ty.Kind != KindArray || ty.Constraint == nil || ty.Constraint.Exact == nil || *ty.Constraint.Exact != 4 {
		t.Fatalf("got %+v", ty)
	}
}

func TestParseArrayWithRangeConstraint(t *testing.T) {
	u := Parse([]byte(`type T = string[] @ 1..10`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	c := u.Types[0].Type.Constraint
	if c == nil || c.Min == nil || *c.Min != 1 || c.Max == nil || *c.Max != 10 {
		t.Fatalf("got %+v", c)
	}
}

func TestParseArrayWithOpenMinConstraint(t *testing.T) {
	u := Parse([]byte(`type T = string[] @ 1..`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	c := u.Types[0].Type.Constraint
	if c == nil || c.Min == nil || *c.Min != 1 || c.Max != nil {
		t.Fatalf("got %+v", c)
	}
}

func TestParseGenericRef(t *testing.T) {
	u := Parse([]byte(`type T = Holder<ItemStack>`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	ty := u.Types[0].Type
	if ty.Kind != KindNamed || ty.Name != "Holder" || len(ty.TypeArgs) != 1 || ty.TypeArgs[0].Name != "ItemStack" {
		t.Fatalf("got %+v", ty)
	}
}

func TestParseDispatcherRef(t *testing.T) {
	u := Parse([]byte(`type T = minecraft:recipe[key]`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	ty := u.Types[0].Type
	if ty.Kind != KindDispatcherRef || ty.DispatchRegistry != "minecraft:recipe" || ty.DispatchKey != "key" {
		t.Fatalf("got %+v", ty)
	}
}

func TestParseDispatchDecl(t *testing.T) {
	u := Parse([]byte(`dispatch minecraft:recipe[crafting_shaped, crafting_shapeless] to struct {
		pattern: string[],
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	d := u.Dispatches[0]
	if d.Registry != "minecraft:recipe" {
		t.Fatalf("got registry %q", d.Registry)
	}
	if len(d.Targets) != 2 || d.Targets[0] != "crafting_shaped" || d.Targets[1] != "crafting_shapeless" {
		t.Fatalf("got targets %+v", d.Targets)
	}
	if d.TargetType.Kind != KindStruct {
		t.Fatalf("got target type %+v", d.TargetType)
	}
}

func TestParseImport(t *testing.T) {
	u := Parse([]byte(`use minecraft::item::ItemStack as Stack`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	imp := u.Imports[0]
	if len(imp.Path) != 3 || imp.Path[2] != "ItemStack" || imp.Alias != "Stack" {
		t.Fatalf("got %+v", imp)
	}
}

func TestParsePercentAndPlaceholder(t *testing.T) {
	u := Parse([]byte(`type T = %unknown
	type U = [[greedy]]`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	if u.Types[0].Type.Kind != KindPercent || u.Types[0].Type.Raw != "%unknown" {
		t.Errorf("got %+v", u.Types[0].Type)
	}
	if u.Types[1].Type.Kind != KindPlaceholder {
		t.Errorf("got %+v", u.Types[1].Type)
	}
}

func TestParseRecoversFromBrokenStruct(t *testing.T) {
	u := Parse([]byte(`struct Broken {
		a: ,
	}
	struct Ok {
		b: int,
	}`), "test")
	if len(u.Errors) == 0 {
		t.Fatalf("expected a syntax error from the broken struct")
	}
	var found bool
	for _, s := range u.Structs {
		if s.Name == "Ok" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the Ok struct to still be parsed, got %+v", u.Structs)
	}
}

func TestParseInlineStructAndEnum(t *testing.T) {
	u := Parse([]byte(`type T = struct {
		a: int,
	}
	type U = enum(string) {
		A = "a",
	}`), "test")
	if len(u.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", u.Errors)
	}
	if u.Types[0].Type.Kind != KindStruct || len(u.Types[0].Type.Fields) != 1 {
		t.Errorf("got %+v", u.Types[0].Type)
	}
	if u.Types[1].Type.Kind != KindEnum || u.Types[1].Type.EnumDecl.Variants[0].Value.Str != "a" {
		t.Errorf("got %+v", u.Types[1].Type)
	}
}
